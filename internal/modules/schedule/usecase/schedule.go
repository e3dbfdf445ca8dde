package usecase

import (
	"context"
	"errors"
	"fmt"

	"studyplan/internal/modules/schedule/domain"
	"studyplan/internal/modules/schedule/dto"
	schedulein "studyplan/internal/modules/schedule/port/in"
	"studyplan/internal/modules/schedule/service"
	syllabusdto "studyplan/internal/modules/syllabus/dto"
	syllabusin "studyplan/internal/modules/syllabus/port/in"
	apperrors "studyplan/internal/platform/errors"
)

type Interactor struct {
	svc      *service.ScheduleService
	syllabus syllabusin.Usecase
}

func NewInteractor(svc *service.ScheduleService, syllabus syllabusin.Usecase) schedulein.Usecase {
	return &Interactor{svc: svc, syllabus: syllabus}
}

func (i *Interactor) Generate(ctx context.Context, input dto.GenerateInput) (dto.PlanOutput, error) {
	if i.syllabus == nil {
		return dto.PlanOutput{}, errors.New("syllabus usecase is not configured")
	}
	loaded, err := i.syllabus.Load(ctx, syllabusdto.LoadInput{Path: input.SyllabusPath})
	if err != nil {
		return dto.PlanOutput{}, err
	}
	rows := make([]domain.SyllabusRow, 0, len(loaded.Rows))
	for _, row := range loaded.Rows {
		rows = append(rows, domain.SyllabusRow{Discipline: row.Discipline, Topic: row.Topic, Hours: row.Hours})
	}
	rest := i.svc.DefaultRest()
	if input.Rest != nil {
		rest = *input.Rest
	}
	meta, plan, err := i.svc.Generate(ctx, loaded.Path, rows, input.Start, rest)
	if err != nil {
		return dto.PlanOutput{}, err
	}
	return toPlanOutput(meta, plan, i.svc.Today()), nil
}

func (i *Interactor) Current(ctx context.Context) (dto.PlanOutput, error) {
	meta, plan, err := i.svc.Current(ctx)
	if err != nil {
		return dto.PlanOutput{}, err
	}
	return toPlanOutput(meta, plan, i.svc.Today()), nil
}

func (i *Interactor) Week(ctx context.Context, input dto.WeekInput) (dto.WeekOutput, error) {
	meta, plan, err := i.svc.Current(ctx)
	if err != nil {
		return dto.WeekOutput{}, err
	}
	weeks := plan.Weeks()
	week := input.Week
	if week < 1 || week > weeks {
		return dto.WeekOutput{}, fmt.Errorf("%w: week %d is outside 1..%d", apperrors.ErrInvalidInput, week, weeks)
	}
	return dto.WeekOutput{
		Week:     week,
		Weeks:    weeks,
		Rota:     i.svc.Rota(meta.Rest),
		Sessions: toSessionOutputs(plan.Page(week), input.Done),
	}, nil
}

func (i *Interactor) Due(ctx context.Context, input dto.DueInput) ([]dto.SessionOutput, error) {
	sessions, err := i.svc.Due(ctx, input.Date)
	if err != nil {
		return nil, err
	}
	return toSessionOutputs(sessions, input.Done), nil
}

func (i *Interactor) Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error) {
	format, rows, err := i.svc.Export(ctx, input.Path, input.Done, input.WithProgress)
	if err != nil {
		return dto.ExportOutput{}, err
	}
	return dto.ExportOutput{Path: input.Path, Format: format, Rows: rows}, nil
}
