package bootstrap

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	hclog "github.com/hashicorp/go-hclog"

	progressinadapter "studyplan/internal/modules/progress/adapter/in"
	progressoutadapter "studyplan/internal/modules/progress/adapter/out"
	progressservice "studyplan/internal/modules/progress/service"
	progressusecase "studyplan/internal/modules/progress/usecase"
	scheduleinadapter "studyplan/internal/modules/schedule/adapter/in"
	scheduleoutadapter "studyplan/internal/modules/schedule/adapter/out"
	scheduledomain "studyplan/internal/modules/schedule/domain"
	scheduleservice "studyplan/internal/modules/schedule/service"
	scheduleusecase "studyplan/internal/modules/schedule/usecase"
	syllabusinadapter "studyplan/internal/modules/syllabus/adapter/in"
	syllabusoutadapter "studyplan/internal/modules/syllabus/adapter/out"
	syllabusdomain "studyplan/internal/modules/syllabus/domain"
	syllabusservice "studyplan/internal/modules/syllabus/service"
	syllabususecase "studyplan/internal/modules/syllabus/usecase"
	"studyplan/internal/platform/clock"
	"studyplan/internal/platform/config"
	"studyplan/internal/platform/logging"
	uiapp "studyplan/internal/ui/app"
)

type App struct {
	Config      config.Config
	SyllabusCLI syllabusinadapter.CLIHandler
	ScheduleCLI scheduleinadapter.CLIHandler
	ProgressCLI progressinadapter.CLIHandler

	projector *scheduleoutadapter.SQLitePlanProjector
}

func New(cfg config.Config, log hclog.Logger) (*App, error) {
	log = logging.OrDiscard(log)
	clk := clock.SystemClock{}

	syllabusSvc := syllabusservice.NewSyllabusService(
		syllabusdomain.Columns(cfg.Columns),
		log.Named("syllabus"),
		syllabusoutadapter.NewXLSXTableReader(),
		syllabusoutadapter.NewCSVTableReader(),
	)
	syllabusUC := syllabususecase.NewInteractor(syllabusSvc)

	projector, err := scheduleoutadapter.NewSQLitePlanProjector(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new plan projector: %w", err)
	}
	scheduleSvc := scheduleservice.NewScheduleService(clk, projector, scheduleOptions(cfg), log.Named("schedule"),
		scheduleoutadapter.NewXLSXExporter(),
		scheduleoutadapter.NewCSVExporter(),
		scheduleoutadapter.NewMarkdownExporter(),
	)
	scheduleUC := scheduleusecase.NewInteractor(scheduleSvc, syllabusUC)

	progressUC := progressusecase.NewInteractor(progressservice.NewProgressService(
		progressoutadapter.NewFileProgressStore(cfg.ProgressPath),
		log.Named("progress"),
	))

	return &App{
		Config:      cfg,
		SyllabusCLI: syllabusinadapter.NewCLIHandler(syllabusUC),
		ScheduleCLI: scheduleinadapter.NewCLIHandler(scheduleUC),
		ProgressCLI: progressinadapter.NewCLIHandler(progressUC),
		projector:   projector,
	}, nil
}

func scheduleOptions(cfg config.Config) scheduleservice.Options {
	notes := map[scheduledomain.Kind]string{}
	if cfg.StudyNote != "" {
		notes[scheduledomain.KindStudy] = cfg.StudyNote
	}
	if cfg.ReviewNote != "" {
		notes[scheduledomain.KindReview] = cfg.ReviewNote
	}
	return scheduleservice.Options{
		Title: cfg.Title,
		Rest:  cfg.RestDay,
		Assign: scheduledomain.AssignOptions{
			Duration:     cfg.DurationLabel,
			WeekdayNames: cfg.WeekdayNames,
			Notes:        notes,
		},
	}
}

func (a *App) Close() error {
	if a == nil || a.projector == nil {
		return nil
	}
	if err := a.projector.Close(); err != nil {
		return fmt.Errorf("close plan projector: %w", err)
	}
	return nil
}

func RunTUI(app *App, syllabusPath string) error {
	model := uiapp.NewModel(app.ScheduleCLI, app.ProgressCLI, syllabusPath)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
