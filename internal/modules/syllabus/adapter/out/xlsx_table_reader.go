package out

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	syllabusout "studyplan/internal/modules/syllabus/port/out"
)

// XLSXTableReader reads the first worksheet of a workbook.
type XLSXTableReader struct{}

func NewXLSXTableReader() syllabusout.TableReader {
	return XLSXTableReader{}
}

func (XLSXTableReader) Format() string { return "xlsx" }

func (XLSXTableReader) Extensions() []string { return []string{".xlsx", ".xlsm"} }

func (XLSXTableReader) Read(_ context.Context, r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	// Raw values keep "2.5" from turning into a locale formatted "2,50".
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}
