package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"studyplan/internal/modules/schedule/domain"
	"studyplan/internal/modules/schedule/dto"
	"studyplan/internal/modules/schedule/service"
	"studyplan/internal/modules/schedule/usecase"
	syllabusdto "studyplan/internal/modules/syllabus/dto"
	"studyplan/internal/platform/clock"
	apperrors "studyplan/internal/platform/errors"
)

type fakeSyllabus struct {
	rows []syllabusdto.RowOutput
	err  error
}

func (f fakeSyllabus) Load(_ context.Context, input syllabusdto.LoadInput) (syllabusdto.LoadOutput, error) {
	if f.err != nil {
		return syllabusdto.LoadOutput{}, f.err
	}
	return syllabusdto.LoadOutput{Path: input.Path, Format: "csv", Rows: f.rows}, nil
}

type fakeProjector struct {
	meta     domain.PlanMeta
	plan     domain.Cronogram
	stored   bool
	replaces int
}

func (f *fakeProjector) Replace(_ context.Context, meta domain.PlanMeta, plan domain.Cronogram) error {
	f.meta, f.plan, f.stored = meta, plan, true
	f.replaces++
	return nil
}

func (f *fakeProjector) Load(context.Context) (domain.PlanMeta, domain.Cronogram, error) {
	if !f.stored {
		return domain.PlanMeta{}, domain.Cronogram{}, apperrors.ErrNoPlan
	}
	return f.meta, f.plan, nil
}

func (f *fakeProjector) ByDate(_ context.Context, date time.Time) ([]domain.ScheduledSession, error) {
	if !f.stored {
		return nil, apperrors.ErrNoPlan
	}
	return f.plan.On(date), nil
}

type fakeExporter struct {
	docs []domain.ExportDocument
}

func (f *fakeExporter) Format() string { return "fake" }

func (f *fakeExporter) Extensions() []string { return []string{".fake"} }

func (f *fakeExporter) Export(_ context.Context, _ string, doc domain.ExportDocument) error {
	f.docs = append(f.docs, doc)
	return nil
}

var mathRows = []syllabusdto.RowOutput{
	{Line: 2, Discipline: "Math", Topic: "Algebra", Hours: 2},
	{Line: 3, Discipline: "Math", Topic: "Geometry", Hours: 1.5},
}

// Monday 2025-10-20, mid afternoon.
var now = time.Date(2025, 10, 20, 15, 4, 5, 0, time.UTC)

func newInteractor(rows []syllabusdto.RowOutput) (*usecase.Interactor, *fakeProjector, *fakeExporter) {
	projector := &fakeProjector{}
	exporter := &fakeExporter{}
	svc := service.NewScheduleService(clock.Fixed{At: now}, projector, service.Options{Title: "Exam", Rest: time.Sunday}, nil, exporter)
	return usecase.NewInteractor(svc, fakeSyllabus{rows: rows}).(*usecase.Interactor), projector, exporter
}

func TestGenerateDefaultsStartToToday(t *testing.T) {
	t.Parallel()
	uc, projector, _ := newInteractor(mathRows)

	out, err := uc.Generate(context.Background(), dto.GenerateInput{SyllabusPath: "edital.csv"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if out.Summary.Total != 6 || out.Summary.Study != 4 || out.Summary.Review != 2 || out.Summary.Weeks != 1 {
		t.Fatalf("unexpected summary %+v", out.Summary)
	}
	if !out.Start.Equal(time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC)) || out.Title != "Exam" || out.Source != "edital.csv" {
		t.Fatalf("unexpected plan header %+v", out)
	}
	if out.Sessions[5].Weekday != "Saturday" || out.Sessions[5].Label != "Review Geometry" {
		t.Fatalf("unexpected last session %+v", out.Sessions[5])
	}
	if projector.replaces != 1 {
		t.Fatalf("expected one projection, got %d", projector.replaces)
	}
	if out.CurrentWeek != 1 {
		t.Fatalf("expected current week 1, got %d", out.CurrentWeek)
	}
}

func TestGenerateRestOverride(t *testing.T) {
	t.Parallel()
	uc, _, _ := newInteractor(mathRows)
	rest := time.Wednesday

	out, err := uc.Generate(context.Background(), dto.GenerateInput{SyllabusPath: "edital.csv", Rest: &rest})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if out.Rest != time.Wednesday {
		t.Fatalf("expected wednesday rest, got %s", out.Rest)
	}
	for _, s := range out.Sessions {
		if s.Date.Weekday() == time.Wednesday {
			t.Fatalf("session on rest day: %+v", s)
		}
	}
}

func TestGenerateInvalidSyllabusKeepsPreviousPlan(t *testing.T) {
	t.Parallel()
	uc, projector, _ := newInteractor(mathRows)
	ctx := context.Background()
	if _, err := uc.Generate(ctx, dto.GenerateInput{SyllabusPath: "edital.csv"}); err != nil {
		t.Fatalf("generate: %v", err)
	}

	bad := usecase.NewInteractor(
		service.NewScheduleService(clock.Fixed{At: now}, projector, service.Options{Rest: time.Sunday}, nil),
		fakeSyllabus{rows: []syllabusdto.RowOutput{{Discipline: "Math", Topic: "Algebra", Hours: -1}}},
	)
	if _, err := bad.Generate(ctx, dto.GenerateInput{SyllabusPath: "bad.csv"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if projector.replaces != 1 || projector.meta.Source != "edital.csv" {
		t.Fatalf("invalid syllabus replaced the plan: %+v", projector.meta)
	}
}

func TestGeneratePropagatesSyllabusErrors(t *testing.T) {
	t.Parallel()
	svc := service.NewScheduleService(clock.Fixed{At: now}, &fakeProjector{}, service.Options{}, nil)
	uc := usecase.NewInteractor(svc, fakeSyllabus{err: apperrors.ErrInvalidInput})
	if _, err := uc.Generate(context.Background(), dto.GenerateInput{SyllabusPath: "x.csv"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestQueriesWithoutPlan(t *testing.T) {
	t.Parallel()
	uc, _, _ := newInteractor(mathRows)
	ctx := context.Background()
	if _, err := uc.Current(ctx); !errors.Is(err, apperrors.ErrNoPlan) {
		t.Fatalf("current: expected ErrNoPlan, got %v", err)
	}
	if _, err := uc.Week(ctx, dto.WeekInput{Week: 1}); !errors.Is(err, apperrors.ErrNoPlan) {
		t.Fatalf("week: expected ErrNoPlan, got %v", err)
	}
	if _, err := uc.Due(ctx, dto.DueInput{}); !errors.Is(err, apperrors.ErrNoPlan) {
		t.Fatalf("due: expected ErrNoPlan, got %v", err)
	}
}

func TestWeekMergesDoneFlags(t *testing.T) {
	t.Parallel()
	uc, _, _ := newInteractor(mathRows)
	ctx := context.Background()
	if _, err := uc.Generate(ctx, dto.GenerateInput{SyllabusPath: "edital.csv"}); err != nil {
		t.Fatalf("generate: %v", err)
	}

	out, err := uc.Week(ctx, dto.WeekInput{Week: 1, Done: map[string]bool{"Math::Review Algebra": true}})
	if err != nil {
		t.Fatalf("week: %v", err)
	}
	if out.Weeks != 1 || len(out.Sessions) != 6 || len(out.Rota) != 6 || out.Rota[0] != "Monday" {
		t.Fatalf("unexpected week %+v", out)
	}
	for _, s := range out.Sessions {
		if s.Done != (s.ID == "Math::Review Algebra") {
			t.Fatalf("unexpected done flag on %+v", s)
		}
	}

	for _, week := range []int{0, 2} {
		if _, err := uc.Week(ctx, dto.WeekInput{Week: week}); !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("week %d: expected ErrInvalidInput, got %v", week, err)
		}
	}
}

func TestDueDefaultsToToday(t *testing.T) {
	t.Parallel()
	uc, _, _ := newInteractor(mathRows)
	ctx := context.Background()
	if _, err := uc.Generate(ctx, dto.GenerateInput{SyllabusPath: "edital.csv"}); err != nil {
		t.Fatalf("generate: %v", err)
	}

	today, err := uc.Due(ctx, dto.DueInput{})
	if err != nil {
		t.Fatalf("due: %v", err)
	}
	if len(today) != 1 || today[0].Label != "Algebra - Part 1" {
		t.Fatalf("unexpected sessions due today %+v", today)
	}
	sunday, err := uc.Due(ctx, dto.DueInput{Date: time.Date(2025, 10, 26, 0, 0, 0, 0, time.UTC)})
	if err != nil {
		t.Fatalf("due sunday: %v", err)
	}
	if len(sunday) != 0 {
		t.Fatalf("expected nothing on the rest day, got %+v", sunday)
	}
}

func TestExportPicksExporterByExtension(t *testing.T) {
	t.Parallel()
	uc, _, exporter := newInteractor(mathRows)
	ctx := context.Background()
	if _, err := uc.Generate(ctx, dto.GenerateInput{SyllabusPath: "edital.csv"}); err != nil {
		t.Fatalf("generate: %v", err)
	}

	out, err := uc.Export(ctx, dto.ExportInput{Path: "plan.FAKE", WithProgress: true, Done: map[string]bool{"Math::Review Geometry": true}})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if out.Format != "fake" || out.Rows != 6 || len(exporter.docs) != 1 {
		t.Fatalf("unexpected export %+v", out)
	}
	doc := exporter.docs[0]
	if !doc.WithProgress || !doc.Done["Math::Review Geometry"] || doc.Meta.Title != "Exam" {
		t.Fatalf("unexpected document %+v", doc)
	}

	if _, err := uc.Export(ctx, dto.ExportInput{Path: "plan.pdf"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown format, got %v", err)
	}
}
