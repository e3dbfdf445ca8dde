package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	hclog "github.com/hashicorp/go-hclog"

	"studyplan/internal/modules/syllabus/domain"
	syllabusout "studyplan/internal/modules/syllabus/port/out"
	apperrors "studyplan/internal/platform/errors"
	"studyplan/internal/platform/logging"
)

type SyllabusService struct {
	columns domain.Columns
	readers map[string]syllabusout.TableReader
	log     hclog.Logger
}

func NewSyllabusService(columns domain.Columns, log hclog.Logger, readers ...syllabusout.TableReader) *SyllabusService {
	byExt := map[string]syllabusout.TableReader{}
	for _, r := range readers {
		for _, ext := range r.Extensions() {
			byExt[strings.ToLower(ext)] = r
		}
	}
	return &SyllabusService{columns: columns, readers: byExt, log: logging.OrDiscard(log)}
}

// Load parses the syllabus at path. The reader is picked by file extension.
func (s *SyllabusService) Load(ctx context.Context, path string) ([]domain.Row, string, error) {
	if strings.TrimSpace(path) == "" {
		return nil, "", fmt.Errorf("%w: syllabus path is required", apperrors.ErrInvalidInput)
	}
	ext := strings.ToLower(filepath.Ext(path))
	reader, ok := s.readers[ext]
	if !ok {
		return nil, "", fmt.Errorf("%w: unsupported syllabus format %q", apperrors.ErrInvalidInput, ext)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("%w: open syllabus: %v", apperrors.ErrInvalidInput, err)
	}
	defer f.Close()

	records, err := reader.Read(ctx, f)
	if err != nil {
		return nil, "", fmt.Errorf("%w: read %s syllabus: %v", apperrors.ErrInvalidInput, reader.Format(), err)
	}
	rows, err := domain.FromTable(records, s.columns)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	s.log.Debug("syllabus loaded", "path", path, "format", reader.Format(), "rows", len(rows))
	return rows, reader.Format(), nil
}
