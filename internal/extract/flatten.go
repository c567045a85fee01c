package extract

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// Flatten expands one record into one row per line item, repeating the
// header fields (with the date normalized) on every row. Zero line items
// produce zero rows; no header-only row is synthesized. Any amount that
// cannot be coerced aborts the whole record: partial exports are worse than
// no export. The input record is not mutated.
func Flatten(record ExtractionRecord, logger *slog.Logger) ([]FlatRow, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if len(record.LineItems) == 0 {
		return nil, nil
	}

	total, err := coerceDecimal(record.TotalAmount)
	if err != nil {
		return nil, stageErr(StageFlatten, "total_amount", fmt.Errorf("%w: %v", ErrBadLineItem, err))
	}
	date := NormalizeDate(record.Date, logger)

	rows := make([]FlatRow, 0, len(record.LineItems))
	for i, item := range record.LineItems {
		amount, err := coerceDecimal(item.Amount)
		if err != nil {
			return nil, stageErr(StageFlatten,
				fmt.Sprintf("line item %d (%s)", i, item.Name),
				fmt.Errorf("%w: %v", ErrBadLineItem, err))
		}
		rows = append(rows, FlatRow{
			DocumentID:  record.DocumentID,
			Date:        date,
			Submitter:   record.Submitter,
			Department:  record.Department,
			ItemName:    item.Name,
			ItemAmount:  amount,
			TotalAmount: total,
		})
	}
	return rows, nil
}

// coerceDecimal converts the loosely typed amounts the model returns (JSON
// numbers, or numbers quoted as strings) into float64.
func coerceDecimal(v any) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case int:
		return float64(t), nil
	case json.Number:
		return t.Float64()
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, fmt.Errorf("cannot parse %q as number", t)
		}
		return f, nil
	case nil:
		return 0, fmt.Errorf("missing value")
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}
