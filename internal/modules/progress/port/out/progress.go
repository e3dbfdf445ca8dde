package out

import (
	"context"

	"studyplan/internal/modules/progress/domain"
)

type ProgressStore interface {
	Load(ctx context.Context) (domain.Record, error)
	Save(ctx context.Context, record domain.Record) error
	Delete(ctx context.Context) error
}
