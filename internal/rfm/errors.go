package rfm

import (
	"errors"
	"strings"
)

var (
	// ErrNoAnalysis is returned by query operations when no dataset has been
	// uploaded yet.
	ErrNoAnalysis = errors.New("no analysis available; upload a dataset first")

	// ErrEmptyDataset indicates that no row survived validation.
	ErrEmptyDataset = errors.New("dataset contains no valid transaction rows")

	// ErrUnsupportedFileType indicates an upload with an extension other than
	// .csv, .xlsx or .xls.
	ErrUnsupportedFileType = errors.New("unsupported file format, upload a CSV or Excel file")
)

// SchemaError reports every required column that could not be matched against
// the uploaded headers.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return "missing required columns: " + strings.Join(e.Missing, ", ")
}
