package out

import (
	"context"
	"time"

	"studyplan/internal/modules/schedule/domain"
)

// PlanProjector keeps the last generated plan queryable between runs.
type PlanProjector interface {
	Replace(ctx context.Context, meta domain.PlanMeta, plan domain.Cronogram) error
	Load(ctx context.Context) (domain.PlanMeta, domain.Cronogram, error)
	ByDate(ctx context.Context, date time.Time) ([]domain.ScheduledSession, error)
}

type Exporter interface {
	Format() string
	Extensions() []string
	Export(ctx context.Context, path string, doc domain.ExportDocument) error
}
