package in

import (
	"context"

	"studyplan/internal/modules/syllabus/dto"
	syllabusin "studyplan/internal/modules/syllabus/port/in"
)

type CLIHandler struct {
	usecase syllabusin.Usecase
}

func NewCLIHandler(usecase syllabusin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Check(ctx context.Context, path string) (dto.LoadOutput, error) {
	return h.usecase.Load(ctx, dto.LoadInput{Path: path})
}
