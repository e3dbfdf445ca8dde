package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"studyplan/internal/modules/progress/domain"
	progressout "studyplan/internal/modules/progress/port/out"
	apperrors "studyplan/internal/platform/errors"
)

// FileProgressStore keeps the record as a JSON object of id -> true. Any
// marker value read back counts as done. Writers do not coordinate; the last
// save wins.
type FileProgressStore struct {
	path string
}

func NewFileProgressStore(path string) progressout.ProgressStore {
	return &FileProgressStore{path: path}
}

func (s *FileProgressStore) Load(_ context.Context) (domain.Record, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Empty(), nil
		}
		return nil, fmt.Errorf("%w: read progress: %v", apperrors.ErrStorage, err)
	}
	markers := map[string]json.RawMessage{}
	if err := json.Unmarshal(payload, &markers); err != nil {
		return nil, fmt.Errorf("%w: decode progress: %v", apperrors.ErrStorage, err)
	}
	record := make(domain.Record, len(markers))
	for id := range markers {
		record[id] = true
	}
	return record, nil
}

// BackupPath is where an undecodable artifact is moved before it is
// overwritten.
func (s *FileProgressStore) BackupPath() string { return s.path + ".corrupt" }

func (s *FileProgressStore) Save(_ context.Context, record domain.Record) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("%w: create progress dir: %v", apperrors.ErrStorage, err)
	}
	if err := s.backupCorrupt(); err != nil {
		return err
	}
	payload, err := json.MarshalIndent(record.Clone(), "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal progress: %v", apperrors.ErrStorage, err)
	}
	if err := os.WriteFile(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("%w: write progress: %v", apperrors.ErrStorage, err)
	}
	return nil
}

func (s *FileProgressStore) Delete(_ context.Context) error {
	if err := os.Remove(s.path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("%w: clear progress: %v", apperrors.ErrStorage, err)
	}
	return nil
}

func (s *FileProgressStore) backupCorrupt() error {
	existing, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}
	if json.Unmarshal(existing, &map[string]json.RawMessage{}) == nil {
		return nil
	}
	if err := os.Rename(s.path, s.BackupPath()); err != nil {
		return fmt.Errorf("%w: back up corrupt progress: %v", apperrors.ErrStorage, err)
	}
	return nil
}
