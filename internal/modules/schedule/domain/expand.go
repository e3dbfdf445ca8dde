package domain

import (
	"fmt"
	"math"
	"sort"
	"strings"

	apperrors "studyplan/internal/platform/errors"
)

const fractionEpsilon = 1e-9

func (r SyllabusRow) Validate() error {
	if strings.TrimSpace(r.Discipline) == "" {
		return fmt.Errorf("%w: discipline is required", apperrors.ErrInvalidInput)
	}
	if strings.TrimSpace(r.Topic) == "" {
		return fmt.Errorf("%w: topic is required", apperrors.ErrInvalidInput)
	}
	if math.IsNaN(r.Hours) || math.IsInf(r.Hours, 0) {
		return fmt.Errorf("%w: hours must be a number", apperrors.ErrInvalidInput)
	}
	if r.Hours < 0 {
		return fmt.Errorf("%w: hours must be non-negative, got %g", apperrors.ErrInvalidInput, r.Hours)
	}
	return nil
}

// Expand turns syllabus rows into ordered session descriptors. Disciplines
// are visited in alphabetical order; rows keep their input order inside a
// discipline.
func Expand(rows []SyllabusRow) ([]SessionDescriptor, error) {
	groups := map[string][]SyllabusRow{}
	disciplines := make([]string, 0)
	for i, row := range rows {
		if err := row.Validate(); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		row.Discipline = strings.TrimSpace(row.Discipline)
		row.Topic = strings.TrimSpace(row.Topic)
		if _, ok := groups[row.Discipline]; !ok {
			disciplines = append(disciplines, row.Discipline)
		}
		groups[row.Discipline] = append(groups[row.Discipline], row)
	}
	sort.Strings(disciplines)

	out := make([]SessionDescriptor, 0, len(rows)*2)
	seen := map[string]struct{}{}
	for _, discipline := range disciplines {
		for _, row := range groups[discipline] {
			for _, d := range expandRow(row) {
				id := d.ID()
				if _, dup := seen[id]; dup {
					return nil, fmt.Errorf("%w: duplicate session %q", apperrors.ErrInvalidInput, id)
				}
				seen[id] = struct{}{}
				out = append(out, d)
			}
		}
	}
	return out, nil
}

func expandRow(row SyllabusRow) []SessionDescriptor {
	whole := math.Floor(row.Hours)
	frac := row.Hours - whole
	parts := int(whole)

	out := make([]SessionDescriptor, 0, parts+2)
	for i := 1; i <= parts; i++ {
		out = append(out, SessionDescriptor{
			Discipline: row.Discipline,
			Label:      fmt.Sprintf("%s - Part %d", row.Topic, i),
			Kind:       KindStudy,
		})
	}
	if frac > fractionEpsilon {
		out = append(out, SessionDescriptor{
			Discipline: row.Discipline,
			Label:      fmt.Sprintf("%s - Final Part (%.1fh)", row.Topic, frac),
			Kind:       KindStudy,
		})
	}
	return append(out, SessionDescriptor{
		Discipline: row.Discipline,
		Label:      "Review " + row.Topic,
		Kind:       KindReview,
	})
}
