package exporter

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// WriteOptions controls CSV file generation.
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	Append    bool
	BOMPrefix bool
}

// CSVWriter writes derived tables as CSV files.
type CSVWriter struct{}

// NewCSVWriter creates a new CSV writer.
func NewCSVWriter() *CSVWriter {
	return &CSVWriter{}
}

// WriteCSV writes records to a CSV file with the given options.
func (w *CSVWriter) WriteCSV(filePath string, opts WriteOptions) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	flags := os.O_CREATE | os.O_WRONLY
	if opts.Append {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	file, err := os.OpenFile(filePath, flags, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer file.Close()

	// BOM keeps Excel happy with UTF-8 content.
	if opts.BOMPrefix && !opts.Append {
		if _, err := file.WriteString("\ufeff"); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if !opts.Append && len(opts.Headers) > 0 {
		if err := writer.Write(opts.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for i, record := range opts.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteSimpleCSV writes a headers-plus-records CSV file with a BOM prefix.
func (w *CSVWriter) WriteSimpleCSV(filePath string, headers []string, records [][]string) error {
	return w.WriteCSV(filePath, WriteOptions{
		Headers:   headers,
		Records:   records,
		BOMPrefix: true,
	})
}

// WriteTables writes one CSV file per table into dir. File names are the
// table names plus ".csv".
func (w *CSVWriter) WriteTables(dir string, tables []Table) error {
	for _, t := range tables {
		path := filepath.Join(dir, t.Name+".csv")
		if err := w.WriteSimpleCSV(path, t.Headers, t.Records); err != nil {
			return fmt.Errorf("failed to write table %s: %w", t.Name, err)
		}
	}
	return nil
}
