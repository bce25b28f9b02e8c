package ingest

import (
	"strings"

	"github.com/meera/rfmscope/backend/internal/rfm"
)

// Canonical transaction fields the engine operates on.
const (
	FieldCustomerID   = "customer_id"
	FieldCustomerName = "customer_name"
	FieldInvoiceDate  = "invoice_date"
	FieldQuantity     = "quantity"
	FieldUnitPrice    = "unit_price"
)

// requiredFields must all resolve for an upload to proceed; customer_name is
// the only optional field.
var requiredFields = []string{FieldCustomerID, FieldInvoiceDate, FieldQuantity, FieldUnitPrice}

// fieldAliases maps normalized header spellings to canonical fields.
var fieldAliases = map[string]string{
	"customerid":    FieldCustomerID,
	"customer_id":   FieldCustomerID,
	"customername":  FieldCustomerName,
	"customer_name": FieldCustomerName,
	"invoicedate":   FieldInvoiceDate,
	"invoice_date":  FieldInvoiceDate,
	"date":          FieldInvoiceDate,
	"quantity":      FieldQuantity,
	"qty":           FieldQuantity,
	"price":         FieldUnitPrice,
	"unitprice":     FieldUnitPrice,
	"unit_price":    FieldUnitPrice,
}

// ColumnMapping resolves canonical fields to the column index that carries
// them in the uploaded table.
type ColumnMapping map[string]int

// Has reports whether the optional field was matched.
func (m ColumnMapping) Has(field string) bool {
	_, ok := m[field]
	return ok
}

// MapColumns matches raw headers against the canonical schema,
// case-insensitively and across common alias spellings. It returns a
// SchemaError naming every required field without a match. Pure mapping, no
// side effects.
func MapColumns(headers []string) (ColumnMapping, error) {
	mapping := make(ColumnMapping, len(requiredFields)+1)
	for idx, header := range headers {
		normalized := normalizeHeader(header)
		field, ok := fieldAliases[normalized]
		if !ok {
			continue
		}
		if _, taken := mapping[field]; taken {
			continue
		}
		mapping[field] = idx
	}

	var missing []string
	for _, field := range requiredFields {
		if !mapping.Has(field) {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return nil, &rfm.SchemaError{Missing: missing}
	}
	return mapping, nil
}

func normalizeHeader(header string) string {
	header = strings.TrimPrefix(header, "\uFEFF")
	return strings.ToLower(strings.TrimSpace(header))
}
