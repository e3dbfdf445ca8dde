package in

import (
	"context"

	"studyplan/internal/modules/schedule/dto"
)

type Usecase interface {
	Generate(ctx context.Context, input dto.GenerateInput) (dto.PlanOutput, error)
	Current(ctx context.Context) (dto.PlanOutput, error)
	Week(ctx context.Context, input dto.WeekInput) (dto.WeekOutput, error)
	Due(ctx context.Context, input dto.DueInput) ([]dto.SessionOutput, error)
	Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error)
}
