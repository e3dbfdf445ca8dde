package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	apperrors "studyplan/internal/platform/errors"
)

type Columns struct {
	Discipline string
	Topic      string
	Hours      string
}

// Row is one syllabus line. Line is the 1-based position in the source table,
// header included, so errors can point at the spreadsheet row.
type Row struct {
	Line       int
	Discipline string
	Topic      string
	Hours      float64
}

type columnIndex struct {
	discipline, topic, hours int
}

func (c Columns) locate(header []string) (columnIndex, error) {
	idx := columnIndex{discipline: -1, topic: -1, hours: -1}
	for i, name := range header {
		name = normalizeHeader(name)
		switch name {
		case normalizeHeader(c.Discipline):
			if idx.discipline < 0 {
				idx.discipline = i
			}
		case normalizeHeader(c.Topic):
			if idx.topic < 0 {
				idx.topic = i
			}
		case normalizeHeader(c.Hours):
			if idx.hours < 0 {
				idx.hours = i
			}
		}
	}
	var missing []string
	if idx.discipline < 0 {
		missing = append(missing, c.Discipline)
	}
	if idx.topic < 0 {
		missing = append(missing, c.Topic)
	}
	if idx.hours < 0 {
		missing = append(missing, c.Hours)
	}
	if len(missing) > 0 {
		return idx, fmt.Errorf("%w: missing column(s) %s", apperrors.ErrInvalidInput, strings.Join(missing, ", "))
	}
	return idx, nil
}

func normalizeHeader(s string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(s, "\ufeff")))
}

// FromTable reads rows out of a raw table whose first record is the header.
// Extra columns are ignored and fully blank records are skipped. Any bad
// record fails the whole table.
func FromTable(records [][]string, cols Columns) ([]Row, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: table is empty", apperrors.ErrInvalidInput)
	}
	idx, err := cols.locate(records[0])
	if err != nil {
		return nil, err
	}
	out := make([]Row, 0, len(records)-1)
	for i, record := range records[1:] {
		line := i + 2
		if blank(record) {
			continue
		}
		discipline := strings.TrimSpace(cell(record, idx.discipline))
		topic := strings.TrimSpace(cell(record, idx.topic))
		if discipline == "" {
			return nil, fmt.Errorf("%w: row %d: %s is empty", apperrors.ErrInvalidInput, line, cols.Discipline)
		}
		if topic == "" {
			return nil, fmt.Errorf("%w: row %d: %s is empty", apperrors.ErrInvalidInput, line, cols.Topic)
		}
		hours, err := ParseHours(cell(record, idx.hours))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		out = append(out, Row{Line: line, Discipline: discipline, Topic: topic, Hours: hours})
	}
	return out, nil
}

// ParseHours accepts "2", "2.5", "2,5" and "2.5h".
func ParseHours(raw string) (float64, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.TrimSpace(strings.TrimSuffix(s, "h"))
	if s == "" {
		return 0, fmt.Errorf("%w: hours is empty", apperrors.ErrInvalidInput)
	}
	if !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: hours %q is not a number", apperrors.ErrInvalidInput, raw)
	}
	if v < 0 {
		return 0, fmt.Errorf("%w: hours %q is negative", apperrors.ErrInvalidInput, raw)
	}
	return v, nil
}

func cell(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return record[i]
}

func blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
