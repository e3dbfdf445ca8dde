package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	"studyplan/internal/modules/schedule/domain"
	scheduleout "studyplan/internal/modules/schedule/port/out"
	"studyplan/internal/platform/clock"
	apperrors "studyplan/internal/platform/errors"
	"studyplan/internal/platform/logging"
)

type Options struct {
	Title  string
	Rest   time.Weekday
	Assign domain.AssignOptions
}

type ScheduleService struct {
	clock     clock.Clock
	projector scheduleout.PlanProjector
	exporters map[string]scheduleout.Exporter
	opts      Options
	log       hclog.Logger
}

func NewScheduleService(clk clock.Clock, projector scheduleout.PlanProjector, opts Options, log hclog.Logger, exporters ...scheduleout.Exporter) *ScheduleService {
	byExt := map[string]scheduleout.Exporter{}
	for _, e := range exporters {
		for _, ext := range e.Extensions() {
			byExt[strings.ToLower(ext)] = e
		}
	}
	return &ScheduleService{clock: clk, projector: projector, exporters: byExt, opts: opts, log: logging.OrDiscard(log)}
}

func (s *ScheduleService) DefaultRest() time.Weekday { return s.opts.Rest }

func (s *ScheduleService) Today() time.Time { return clock.Today(s.clock) }

func (s *ScheduleService) Rota(rest time.Weekday) []string {
	return domain.Rota(rest, s.opts.Assign.WeekdayNames)
}

// Generate builds a fresh plan and replaces the projected one. Nothing is
// projected when the syllabus is invalid.
func (s *ScheduleService) Generate(ctx context.Context, source string, rows []domain.SyllabusRow, start time.Time, rest time.Weekday) (domain.PlanMeta, domain.Cronogram, error) {
	if start.IsZero() {
		start = clock.Today(s.clock)
	}
	plan, err := domain.Generate(rows, start, rest, s.opts.Assign)
	if err != nil {
		return domain.PlanMeta{}, domain.Cronogram{}, err
	}
	meta := domain.PlanMeta{
		Title:       s.opts.Title,
		Source:      source,
		Start:       domain.Civil(start),
		Rest:        rest,
		GeneratedAt: s.clock.Now(),
		Sessions:    plan.Len(),
	}
	if err := s.projector.Replace(ctx, meta, plan); err != nil {
		return domain.PlanMeta{}, domain.Cronogram{}, err
	}
	s.log.Info("plan generated", "source", source, "rows", len(rows), "sessions", plan.Len(), "start", meta.Start.Format(time.DateOnly), "rest", rest.String())
	return meta, plan, nil
}

func (s *ScheduleService) Current(ctx context.Context) (domain.PlanMeta, domain.Cronogram, error) {
	return s.projector.Load(ctx)
}

func (s *ScheduleService) Due(ctx context.Context, date time.Time) ([]domain.ScheduledSession, error) {
	if date.IsZero() {
		date = clock.Today(s.clock)
	}
	return s.projector.ByDate(ctx, domain.Civil(date))
}

// Export writes the current plan; the exporter is picked by file extension.
func (s *ScheduleService) Export(ctx context.Context, path string, done map[string]bool, withProgress bool) (string, int, error) {
	ext := strings.ToLower(filepath.Ext(path))
	exporter, ok := s.exporters[ext]
	if !ok {
		return "", 0, fmt.Errorf("%w: unsupported export format %q", apperrors.ErrInvalidInput, ext)
	}
	meta, plan, err := s.projector.Load(ctx)
	if err != nil {
		return "", 0, err
	}
	doc := domain.ExportDocument{Meta: meta, Plan: plan, Done: done, WithProgress: withProgress}
	if err := exporter.Export(ctx, path, doc); err != nil {
		return "", 0, err
	}
	s.log.Debug("plan exported", "path", path, "format", exporter.Format(), "rows", plan.Len())
	return exporter.Format(), plan.Len(), nil
}
