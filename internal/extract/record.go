package extract

import (
	"fmt"
	"strconv"
	"strings"
)

// Field keys as printed on the forms and produced by the vision model.
const (
	KeyDocumentID  = "报销单号"
	KeyDate        = "日期"
	KeySubmitter   = "报销人"
	KeyDepartment  = "部门"
	KeyLineItems   = "项目"
	KeyTotalAmount = "总金额"

	KeyItemName   = "名称"
	KeyItemAmount = "金额"
)

// LineItem is one expense entry within a form. Amount stays untyped until
// flattening, where coercion failure is fatal for the whole record.
type LineItem struct {
	Name   string
	Amount any
}

// ExtractionRecord is the typed result of interpreting one expense-form
// image. It is only constructed from payloads the validator accepted and is
// never mutated afterwards.
type ExtractionRecord struct {
	DocumentID  string
	Date        string
	Submitter   string
	Department  string
	LineItems   []LineItem
	TotalAmount any
}

// FlatRow is one exportable table row: header fields repeated per line item.
// JSON names mirror the export column schema.
type FlatRow struct {
	DocumentID  string  `json:"document_id"`
	Date        string  `json:"date"`
	Submitter   string  `json:"submitter"`
	Department  string  `json:"department"`
	ItemName    string  `json:"item_name"`
	ItemAmount  float64 `json:"item_amount"`
	TotalAmount float64 `json:"total_amount"`
}

// ProjectRecord maps a validated candidate payload into the typed record.
// Key presence and the line-item shape are trusted because the validator
// already accepted the payload; amounts remain untyped for the flattener.
func ProjectRecord(m map[string]any) ExtractionRecord {
	rec := ExtractionRecord{
		DocumentID:  stringField(m, KeyDocumentID),
		Date:        stringField(m, KeyDate),
		Submitter:   stringField(m, KeySubmitter),
		Department:  stringField(m, KeyDepartment),
		TotalAmount: m[KeyTotalAmount],
	}

	items, _ := m[KeyLineItems].([]any)
	rec.LineItems = make([]LineItem, 0, len(items))
	for _, it := range items {
		obj, _ := it.(map[string]any)
		rec.LineItems = append(rec.LineItems, LineItem{
			Name:   stringField(obj, KeyItemName),
			Amount: obj[KeyItemAmount],
		})
	}
	return rec
}

// stringField renders a payload value as a string. The model occasionally
// returns numbers where strings are expected, document ids in particular.
func stringField(m map[string]any, key string) string {
	switch t := m[key].(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case nil:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}
