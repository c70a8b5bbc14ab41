package exporter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// ExcelWriter writes derived tables as a single workbook, one sheet per
// table.
type ExcelWriter struct{}

// NewExcelWriter creates a new Excel writer.
func NewExcelWriter() *ExcelWriter {
	return &ExcelWriter{}
}

// WriteWorkbook writes every table to its own sheet in filePath.
func (w *ExcelWriter) WriteWorkbook(filePath string, tables []Table) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, t := range tables {
		// Sheet names are capped at 31 characters by the format.
		name := t.Name
		if len(name) > 31 {
			name = name[:31]
		}

		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
				return fmt.Errorf("failed to rename sheet %s: %w", name, err)
			}
		} else {
			if _, err := f.NewSheet(name); err != nil {
				return fmt.Errorf("failed to create sheet %s: %w", name, err)
			}
		}

		if err := writeSheet(f, name, t); err != nil {
			return err
		}
	}

	if err := f.SaveAs(filePath); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", filePath, err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, t Table) error {
	header := make([]interface{}, len(t.Headers))
	for i, h := range t.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write headers on %s: %w", sheet, err)
	}

	for rowIdx, record := range t.Records {
		cells := make([]interface{}, len(record))
		for i, v := range record {
			cells[i] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, rowIdx+2)
		if err != nil {
			return fmt.Errorf("failed to compute cell for row %d: %w", rowIdx, err)
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return fmt.Errorf("failed to write row %d on %s: %w", rowIdx, sheet, err)
		}
	}
	return nil
}
