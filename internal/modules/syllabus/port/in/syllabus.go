package in

import (
	"context"

	"studyplan/internal/modules/syllabus/dto"
)

type Usecase interface {
	Load(ctx context.Context, input dto.LoadInput) (dto.LoadOutput, error)
}
