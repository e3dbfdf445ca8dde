package service

import (
	"context"

	hclog "github.com/hashicorp/go-hclog"

	"studyplan/internal/modules/progress/domain"
	progressout "studyplan/internal/modules/progress/port/out"
	"studyplan/internal/platform/logging"
)

// ProgressService owns no state: every call takes and returns the record.
type ProgressService struct {
	store progressout.ProgressStore
	log   hclog.Logger
}

func NewProgressService(store progressout.ProgressStore, log hclog.Logger) *ProgressService {
	return &ProgressService{store: store, log: logging.OrDiscard(log)}
}

// Load never fails. A missing, unreadable or corrupt artifact yields an
// empty record.
func (s *ProgressService) Load(ctx context.Context) domain.Record {
	record, err := s.store.Load(ctx)
	if err != nil {
		s.log.Warn("progress unreadable, starting empty", "error", err)
		return domain.Empty()
	}
	if record == nil {
		return domain.Empty()
	}
	return record.Clone()
}

func (s *ProgressService) Save(ctx context.Context, record domain.Record) error {
	if err := s.store.Save(ctx, record.Clone()); err != nil {
		s.log.Warn("progress not saved", "error", err, "done", record.Len())
		return err
	}
	return nil
}

// Toggle flips id and persists the result. The returned record is the
// in-memory truth even when saving fails.
func (s *ProgressService) Toggle(ctx context.Context, record domain.Record, id string) (domain.Record, error) {
	next := record.Toggle(id)
	s.log.Debug("progress toggled", "id", id, "done", next.Has(id))
	return next, s.Save(ctx, next)
}

func (s *ProgressService) Reset(ctx context.Context) (domain.Record, error) {
	if err := s.store.Delete(ctx); err != nil {
		s.log.Warn("progress not cleared", "error", err)
		return domain.Empty(), err
	}
	s.log.Info("progress reset")
	return domain.Empty(), nil
}
