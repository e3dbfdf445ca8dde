package out

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"studyplan/internal/modules/schedule/domain"
	scheduleout "studyplan/internal/modules/schedule/port/out"
	apperrors "studyplan/internal/platform/errors"
)

type CSVExporter struct{}

func NewCSVExporter() scheduleout.Exporter {
	return CSVExporter{}
}

func (CSVExporter) Format() string { return "csv" }

func (CSVExporter) Extensions() []string { return []string{".csv"} }

func (CSVExporter) Export(_ context.Context, path string, doc domain.ExportDocument) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: create export dir: %v", apperrors.ErrStorage, err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: create csv: %v", apperrors.ErrStorage, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: close csv: %v", apperrors.ErrStorage, cerr)
		}
	}()

	w := csv.NewWriter(file)
	if err := w.Write(doc.Header()); err != nil {
		return fmt.Errorf("%w: write csv header: %v", apperrors.ErrStorage, err)
	}
	if err := w.WriteAll(doc.Records()); err != nil {
		return fmt.Errorf("%w: write csv rows: %v", apperrors.ErrStorage, err)
	}
	return nil
}
