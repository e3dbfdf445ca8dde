package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"studyplan/internal/modules/schedule/domain"
	scheduleout "studyplan/internal/modules/schedule/port/out"
	apperrors "studyplan/internal/platform/errors"
)

const xlsxSheet = "Schedule"

type XLSXExporter struct{}

func NewXLSXExporter() scheduleout.Exporter {
	return XLSXExporter{}
}

func (XLSXExporter) Format() string { return "xlsx" }

func (XLSXExporter) Extensions() []string { return []string{".xlsx"} }

func (XLSXExporter) Export(_ context.Context, path string, doc domain.ExportDocument) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), xlsxSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := setRow(f, 1, doc.Header()); err != nil {
		return err
	}
	for i, record := range doc.Records() {
		if err := setRow(f, i+2, record); err != nil {
			return err
		}
	}
	if err := f.SetPanes(xlsxSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: create export dir: %v", apperrors.ErrStorage, err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("%w: save workbook: %v", apperrors.ErrStorage, err)
	}
	return nil
}

func setRow(f *excelize.File, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(xlsxSheet, cell, &cells); err != nil {
		return fmt.Errorf("write row %d: %w", row, err)
	}
	return nil
}
