package in

import (
	"context"

	"studyplan/internal/modules/progress/dto"
)

type Usecase interface {
	Load(ctx context.Context) map[string]bool
	Save(ctx context.Context, record map[string]bool) error
	Toggle(ctx context.Context, input dto.ToggleInput) (dto.ToggleOutput, error)
	Reset(ctx context.Context) (map[string]bool, error)
	Status(ctx context.Context, input dto.StatusInput) dto.StatusOutput
}
