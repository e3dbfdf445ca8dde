package in

import (
	"context"

	"studyplan/internal/modules/progress/dto"
	progressin "studyplan/internal/modules/progress/port/in"
)

type CLIHandler struct {
	usecase progressin.Usecase
}

func NewCLIHandler(usecase progressin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Load(ctx context.Context) map[string]bool {
	return h.usecase.Load(ctx)
}

func (h CLIHandler) Toggle(ctx context.Context, record map[string]bool, id string) (dto.ToggleOutput, error) {
	return h.usecase.Toggle(ctx, dto.ToggleInput{Record: record, ID: id})
}

func (h CLIHandler) Reset(ctx context.Context) (map[string]bool, error) {
	return h.usecase.Reset(ctx)
}

func (h CLIHandler) Status(ctx context.Context, ids []string, record map[string]bool) dto.StatusOutput {
	return h.usecase.Status(ctx, dto.StatusInput{IDs: ids, Record: record})
}
