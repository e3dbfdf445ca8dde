package usecase

import (
	"context"
	"fmt"
	"strings"

	"studyplan/internal/modules/progress/domain"
	"studyplan/internal/modules/progress/dto"
	progressin "studyplan/internal/modules/progress/port/in"
	"studyplan/internal/modules/progress/service"
	apperrors "studyplan/internal/platform/errors"
)

type Interactor struct {
	svc *service.ProgressService
}

func NewInteractor(svc *service.ProgressService) progressin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Load(ctx context.Context) map[string]bool {
	return i.svc.Load(ctx)
}

func (i *Interactor) Save(ctx context.Context, record map[string]bool) error {
	return i.svc.Save(ctx, domain.Record(record))
}

func (i *Interactor) Toggle(ctx context.Context, input dto.ToggleInput) (dto.ToggleOutput, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return dto.ToggleOutput{Record: domain.Record(input.Record).Clone()}, fmt.Errorf("%w: session id is required", apperrors.ErrInvalidInput)
	}
	next, err := i.svc.Toggle(ctx, domain.Record(input.Record), id)
	return dto.ToggleOutput{Record: next, ID: id, Done: next.Has(id)}, err
}

func (i *Interactor) Reset(ctx context.Context) (map[string]bool, error) {
	return i.svc.Reset(ctx)
}

func (i *Interactor) Status(_ context.Context, input dto.StatusInput) dto.StatusOutput {
	status := domain.View(input.IDs, domain.Record(input.Record))
	return dto.StatusOutput{
		Done:     status.Done,
		Total:    status.Total,
		Percent:  status.Percent,
		Orphaned: status.Orphaned,
	}
}
