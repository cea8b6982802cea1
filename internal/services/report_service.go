package services

import (
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

type ReportServiceInterface interface {
	BuildWorkbook(sheet Sheet) (*excelize.File, error)
}

type ReportService struct {
	logger *zap.Logger
}

func NewReportService(logger *zap.Logger) ReportServiceInterface {
	return &ReportService{logger: logger.Named("report")}
}

// BuildWorkbook строит книгу из одного листа с жирной строкой заголовков.
func (s *ReportService) BuildWorkbook(sheet Sheet) (*excelize.File, error) {
	f := excelize.NewFile()
	name := sheet.Name
	if name == "" {
		name = "Report"
	}
	if err := f.SetSheetName("Sheet1", name); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(name, "A1", &sheet.Headers); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	if len(sheet.Headers) > 0 {
		style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return nil, err
		}
		last, _ := excelize.CoordinatesToCellName(len(sheet.Headers), 1)
		if err := f.SetCellStyle(name, "A1", last, style); err != nil {
			return nil, err
		}
		lastCol, _ := excelize.ColumnNumberToName(len(sheet.Headers))
		_ = f.SetColWidth(name, "A", lastCol, 20)
	}

	for i, row := range sheet.Rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	s.logger.Debug("Книга Excel сформирована", zap.String("sheet", name), zap.Int("rows", len(sheet.Rows)))
	return f, nil
}
