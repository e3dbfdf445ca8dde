package in

import (
	"context"
	"time"

	"studyplan/internal/modules/schedule/dto"
	schedulein "studyplan/internal/modules/schedule/port/in"
)

type CLIHandler struct {
	usecase schedulein.Usecase
}

func NewCLIHandler(usecase schedulein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Generate(ctx context.Context, syllabusPath string, start time.Time, rest *time.Weekday) (dto.PlanOutput, error) {
	return h.usecase.Generate(ctx, dto.GenerateInput{SyllabusPath: syllabusPath, Start: start, Rest: rest})
}

func (h CLIHandler) Current(ctx context.Context) (dto.PlanOutput, error) {
	return h.usecase.Current(ctx)
}

func (h CLIHandler) Week(ctx context.Context, week int, done map[string]bool) (dto.WeekOutput, error) {
	return h.usecase.Week(ctx, dto.WeekInput{Week: week, Done: done})
}

func (h CLIHandler) Due(ctx context.Context, date time.Time, done map[string]bool) ([]dto.SessionOutput, error) {
	return h.usecase.Due(ctx, dto.DueInput{Date: date, Done: done})
}

func (h CLIHandler) Export(ctx context.Context, path string, done map[string]bool, withProgress bool) (dto.ExportOutput, error) {
	return h.usecase.Export(ctx, dto.ExportInput{Path: path, Done: done, WithProgress: withProgress})
}
