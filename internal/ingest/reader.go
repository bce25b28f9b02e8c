package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"github.com/meera/rfmscope/backend/internal/rfm"
)

// Table is a parsed tabular file: the header row plus all data rows, as raw
// strings.
type Table struct {
	Headers []string
	Rows    [][]string
}

// ReadTable parses uploaded file bytes according to the filename extension.
// CSV, OOXML Excel (.xlsx) and legacy BIFF Excel (.xls) inputs are accepted;
// anything else fails with ErrUnsupportedFileType.
func ReadTable(filename string, data []byte) (Table, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return readCSV(data)
	case ".xlsx":
		return readExcel(data)
	case ".xls":
		return readLegacyExcel(data)
	default:
		return Table{}, rfm.ErrUnsupportedFileType
	}
}

func readCSV(data []byte) (Table, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return Table{}, rfm.ErrEmptyDataset
	}
	return Table{Headers: records[0], Rows: records[1:]}, nil
}

func readExcel(data []byte) (Table, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return Table{}, fmt.Errorf("open workbook: %w", err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return Table{}, rfm.ErrEmptyDataset
	}

	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return Table{}, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return Table{}, rfm.ErrEmptyDataset
	}
	return Table{Headers: rows[0], Rows: rows[1:]}, nil
}

func readLegacyExcel(data []byte) (Table, error) {
	workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return Table{}, fmt.Errorf("open workbook: %w", err)
	}

	sheet := workbook.GetSheet(0)
	if sheet == nil {
		return Table{}, rfm.ErrEmptyDataset
	}

	// MaxRow is the index of the last populated row; sparse rows come back
	// nil and are kept as empty so row numbering stays stable.
	var rows [][]string
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		cells := make([]string, row.LastCol())
		for j := row.FirstCol(); j < row.LastCol(); j++ {
			cells[j] = row.Col(j)
		}
		rows = append(rows, cells)
	}
	if len(rows) == 0 {
		return Table{}, rfm.ErrEmptyDataset
	}
	return Table{Headers: rows[0], Rows: rows[1:]}, nil
}
