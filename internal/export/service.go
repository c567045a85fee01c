package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/expenseflow/expenseflow/constants"
	"github.com/expenseflow/expenseflow/internal/extract"
)

// SheetName is the single worksheet the exporter writes.
const SheetName = "Expenses"

// Service renders flat rows into XLSX workbook bytes.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// WorkbookBytes returns an XLSX workbook for the given rows. The header row
// is always written, so zero rows still yield a valid, openable workbook.
func (s *Service) WorkbookBytes(rows []extract.FlatRow) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	for i, h := range constants.ExportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(SheetName, cell, h)
	}

	rowIdx := 2
	for _, r := range rows {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, rowIdx)
			_ = f.SetCellValue(SheetName, cell, v)
		}
		write(1, r.DocumentID)
		write(2, r.Date)
		write(3, r.Submitter)
		write(4, r.Department)
		write(5, r.ItemName)
		write(6, r.ItemAmount)
		write(7, r.TotalAmount)
		rowIdx++
	}

	// Widen the columns that carry free text.
	_ = f.SetColWidth(SheetName, "A", "A", 16) // document id
	_ = f.SetColWidth(SheetName, "B", "B", 12) // date
	_ = f.SetColWidth(SheetName, "C", "D", 14) // submitter, department
	_ = f.SetColWidth(SheetName, "E", "E", 28) // item name
	_ = f.SetColWidth(SheetName, "F", "G", 12) // amounts

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(rows),
		"bytes", buf.Len(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
