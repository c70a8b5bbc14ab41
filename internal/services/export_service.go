package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"ecomdash/internal/exporter"
)

// Export formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// ExportService writes dashboard snapshots to the reports directory.
type ExportService struct {
	dashboards *DashboardService
	reportsDir string
	csvWriter  *exporter.CSVWriter
	xlsxWriter *exporter.ExcelWriter
	logger     *slog.Logger
}

// ExportResult reports where an export landed.
type ExportResult struct {
	Format string `json:"format"`
	Path   string `json:"path"`
}

// NewExportService creates an export service writing under reportsDir.
func NewExportService(dashboards *DashboardService, reportsDir string, logger *slog.Logger) *ExportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExportService{
		dashboards: dashboards,
		reportsDir: reportsDir,
		csvWriter:  exporter.NewCSVWriter(),
		xlsxWriter: exporter.NewExcelWriter(),
		logger:     logger.With(slog.String("component", "export_service")),
	}
}

// Export builds the dashboard for the range and writes it in the requested
// format. CSV produces a directory of per-table files; xlsx produces a
// single workbook.
func (s *ExportService) Export(ctx context.Context, params DateRangeParams, format string) (*ExportResult, error) {
	if format != FormatCSV && format != FormatXLSX {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, format)
	}

	d, err := s.dashboards.BuildDashboard(ctx, params)
	if err != nil {
		return nil, err
	}

	report := exporter.Report{
		From:               d.From,
		To:                 d.To,
		TopCategories:      d.TopCategories,
		BottomCategories:   d.BottomCategories,
		CustomerLocations:  d.CustomerLocations,
		SellerLocations:    d.SellerLocations,
		PurchasesByHour:    d.PurchasesByHour,
		PurchasesByWeekday: d.PurchasesByWeekday,
		PurchasesByDay:     d.PurchasesByDay,
		PaymentTypes:       d.PaymentTypes,
		ReviewsByScore:     d.ReviewsByScore,
	}

	stem := fmt.Sprintf("dashboard_%s_%s", params.From, params.To)

	var path string
	switch format {
	case FormatCSV:
		path = filepath.Join(s.reportsDir, stem)
		if err := os.MkdirAll(path, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create export directory: %w", err)
		}
		if err := s.csvWriter.WriteTables(path, report.Tables()); err != nil {
			return nil, err
		}
	case FormatXLSX:
		path = filepath.Join(s.reportsDir, stem+".xlsx")
		if err := s.xlsxWriter.WriteWorkbook(path, report.Tables()); err != nil {
			return nil, err
		}
	}

	s.logger.InfoContext(ctx, "dashboard exported",
		slog.String("format", format),
		slog.String("path", path))

	return &ExportResult{Format: format, Path: path}, nil
}
