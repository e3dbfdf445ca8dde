package usecase

import (
	"context"

	"studyplan/internal/modules/syllabus/dto"
	syllabusin "studyplan/internal/modules/syllabus/port/in"
	"studyplan/internal/modules/syllabus/service"
)

type Interactor struct {
	svc *service.SyllabusService
}

func NewInteractor(svc *service.SyllabusService) syllabusin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Load(ctx context.Context, input dto.LoadInput) (dto.LoadOutput, error) {
	rows, format, err := i.svc.Load(ctx, input.Path)
	if err != nil {
		return dto.LoadOutput{}, err
	}
	out := dto.LoadOutput{Path: input.Path, Format: format, Rows: make([]dto.RowOutput, 0, len(rows))}
	for _, row := range rows {
		out.Rows = append(out.Rows, dto.RowOutput{Line: row.Line, Discipline: row.Discipline, Topic: row.Topic, Hours: row.Hours})
		out.TotalHours += row.Hours
	}
	return out, nil
}
