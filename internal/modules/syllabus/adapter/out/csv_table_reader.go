package out

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"

	syllabusout "studyplan/internal/modules/syllabus/port/out"
)

type CSVTableReader struct{}

func NewCSVTableReader() syllabusout.TableReader {
	return CSVTableReader{}
}

func (CSVTableReader) Format() string { return "csv" }

func (CSVTableReader) Extensions() []string { return []string{".csv", ".tsv"} }

// Read sniffs the delimiter from the header line: spreadsheets saved with a
// comma decimal locale use ';' and tab separated exports use '\t'.
func (CSVTableReader) Read(_ context.Context, r io.Reader) ([][]string, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(4096)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("peek csv: %w", err)
	}
	if i := bytes.IndexByte(head, '\n'); i >= 0 {
		head = head[:i]
	}
	cr := csv.NewReader(br)
	cr.Comma = sniffDelimiter(head)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return records, nil
}

func sniffDelimiter(header []byte) rune {
	best, bestCount := ',', bytes.Count(header, []byte{','})
	for _, d := range []rune{';', '\t'} {
		if n := bytes.Count(header, []byte(string(d))); n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}
