package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"studyplan/internal/bootstrap"
	scheduledto "studyplan/internal/modules/schedule/dto"
	"studyplan/internal/platform/config"
	apperrors "studyplan/internal/platform/errors"
	"studyplan/internal/platform/logging"
	"studyplan/internal/platform/slug"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootOptions struct {
	dir      string
	logLevel string
	logJSON  bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "studyplan",
		Short:         "Turn a syllabus into a day by day study calendar",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.dir, "dir", ".", "workspace directory")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level: trace|debug|info|warn|error")
	root.PersistentFlags().BoolVar(&opts.logJSON, "log-json", false, "log as JSON")

	root.AddCommand(newInitCmd(opts))
	root.AddCommand(newGenerateCmd(opts))
	root.AddCommand(newWeekCmd(opts))
	root.AddCommand(newTodayCmd(opts))
	root.AddCommand(newToggleCmd(opts))
	root.AddCommand(newStatusCmd(opts))
	root.AddCommand(newResetCmd(opts))
	root.AddCommand(newExportCmd(opts))
	root.AddCommand(newSyllabusCmd(opts))
	root.AddCommand(newTUICmd(opts))
	return root
}

func loadApp(cmd *cobra.Command, opts *rootOptions) (*bootstrap.App, error) {
	cfg, err := config.New(opts.dir)
	if err != nil {
		return nil, err
	}
	log := logging.New(logging.Options{Level: opts.logLevel, JSON: opts.logJSON, Output: cmd.ErrOrStderr()})
	return bootstrap.New(cfg, log)
}

func withApp(opts *rootOptions, run func(cmd *cobra.Command, args []string, app *bootstrap.App) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		app, err := loadApp(cmd, opts)
		if err != nil {
			return err
		}
		defer app.Close()
		return run(cmd, args, app)
	}
}

func newInitCmd(opts *rootOptions) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default .studyplan/config.yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.New(opts.dir)
			if err != nil {
				return err
			}
			if _, err := os.Stat(cfg.ConfigPath); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", cfg.ConfigPath)
			}
			file := config.File{
				Title:         cfg.Title,
				RestDay:       strings.ToLower(cfg.RestDay.String()),
				DurationLabel: cfg.DurationLabel,
				Columns:       cfg.Columns,
			}
			if err := config.Write(opts.dir, file); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", cfg.ConfigPath)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config")
	return cmd
}

func newGenerateCmd(opts *rootOptions) *cobra.Command {
	var startFlag, restFlag, outPath string
	var withProgress bool
	cmd := &cobra.Command{
		Use:   "generate <syllabus>",
		Short: "Build the plan from a syllabus table (.xlsx or .csv)",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(opts, func(cmd *cobra.Command, args []string, app *bootstrap.App) error {
			start, err := parseDate(startFlag)
			if err != nil {
				return err
			}
			var rest *time.Weekday
			if restFlag != "" {
				day, err := config.ParseWeekday(restFlag)
				if err != nil {
					return fmt.Errorf("%w: --rest: %v", apperrors.ErrInvalidInput, err)
				}
				rest = &day
			}
			ctx := context.Background()
			plan, err := app.ScheduleCLI.Generate(ctx, args[0], start, rest)
			if err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), plan)
			if outPath == "" {
				return nil
			}
			var done map[string]bool
			if withProgress {
				done = app.ProgressCLI.Load(ctx)
			}
			out, err := app.ScheduleCLI.Export(ctx, outPath, done, withProgress)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %d rows to %s (%s)\n", out.Rows, out.Path, out.Format)
			return nil
		}),
	}
	cmd.Flags().StringVar(&startFlag, "start", "", "first study day yyyy-mm-dd (default today)")
	cmd.Flags().StringVar(&restFlag, "rest", "", "rest weekday (default from config, sunday)")
	cmd.Flags().StringVar(&outPath, "out", "", "also export to this file (.xlsx, .csv, .md)")
	cmd.Flags().BoolVar(&withProgress, "with-progress", false, "include the Done column in the export")
	return cmd
}

func newWeekCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "week [n]",
		Short: "Show one week (six sessions) of the plan",
		Args:  cobra.MaximumNArgs(1),
		RunE: withApp(opts, func(cmd *cobra.Command, args []string, app *bootstrap.App) error {
			ctx := context.Background()
			week := 0
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("%w: week %q is not a number", apperrors.ErrInvalidInput, args[0])
				}
				week = n
			} else {
				plan, err := app.ScheduleCLI.Current(ctx)
				if err != nil {
					return noPlanHint(err)
				}
				week = plan.CurrentWeek
			}
			out, err := app.ScheduleCLI.Week(ctx, week, app.ProgressCLI.Load(ctx))
			if err != nil {
				return noPlanHint(err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Week %d of %d (%s)\n", out.Week, out.Weeks, strings.Join(out.Rota, ", "))
			printSessions(cmd.OutOrStdout(), out.Sessions)
			return nil
		}),
	}
}

func newTodayCmd(opts *rootOptions) *cobra.Command {
	var dateFlag string
	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show the sessions due on a day",
		Args:  cobra.NoArgs,
		RunE: withApp(opts, func(cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			date, err := parseDate(dateFlag)
			if err != nil {
				return err
			}
			ctx := context.Background()
			sessions, err := app.ScheduleCLI.Due(ctx, date, app.ProgressCLI.Load(ctx))
			if err != nil {
				return noPlanHint(err)
			}
			if len(sessions) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "nothing scheduled")
				return nil
			}
			printSessions(cmd.OutOrStdout(), sessions)
			return nil
		}),
	}
	cmd.Flags().StringVar(&dateFlag, "date", "", "day yyyy-mm-dd (default today)")
	return cmd
}

func newToggleCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip completion of a session",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(opts, func(cmd *cobra.Command, args []string, app *bootstrap.App) error {
			ctx := context.Background()
			plan, err := app.ScheduleCLI.Current(ctx)
			if err != nil {
				return noPlanHint(err)
			}
			if !hasSession(plan, args[0]) {
				return fmt.Errorf("%w: no session with id %q", apperrors.ErrNotFound, args[0])
			}
			out, err := app.ProgressCLI.Toggle(ctx, app.ProgressCLI.Load(ctx), args[0])
			if err != nil {
				if !errors.Is(err, apperrors.ErrStorage) {
					return err
				}
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "warning: progress not saved: %v\n", err)
			}
			state := "not done"
			if out.Done {
				state = "done"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", out.ID, state)
			return nil
		}),
	}
}

func newStatusCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show completion of the plan",
		Args:  cobra.NoArgs,
		RunE: withApp(opts, func(cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			ctx := context.Background()
			plan, err := app.ScheduleCLI.Current(ctx)
			if err != nil {
				return noPlanHint(err)
			}
			ids := make([]string, len(plan.Sessions))
			for i, s := range plan.Sessions {
				ids[i] = s.ID
			}
			st := app.ProgressCLI.Status(ctx, ids, app.ProgressCLI.Load(ctx))
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "%s: %d/%d sessions done (%.1f%%)\n", plan.Title, st.Done, st.Total, st.Percent)
			_, _ = fmt.Fprintf(w, "plan %s..%s, %d weeks, generated %s from %s\n",
				plan.Summary.First.Format(time.DateOnly), plan.Summary.Last.Format(time.DateOnly),
				plan.Summary.Weeks, plan.GeneratedAt.Format(time.RFC3339), plan.Source)
			if len(st.Orphaned) > 0 {
				_, _ = fmt.Fprintf(w, "%d completed ids match no session (topic renamed or hours changed):\n", len(st.Orphaned))
				for _, id := range st.Orphaned {
					_, _ = fmt.Fprintf(w, "  %s\n", id)
				}
			}
			return nil
		}),
	}
}

func newResetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear all completion marks",
		Args:  cobra.NoArgs,
		RunE: withApp(opts, func(cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			if _, err := app.ProgressCLI.Reset(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "progress reset")
			return nil
		}),
	}
}

func newExportCmd(opts *rootOptions) *cobra.Command {
	var withProgress bool
	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export the plan (.xlsx, .csv, .md); defaults to <title>.xlsx",
		Args:  cobra.MaximumNArgs(1),
		RunE: withApp(opts, func(cmd *cobra.Command, args []string, app *bootstrap.App) error {
			ctx := context.Background()
			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
				path = filepath.Join(app.Config.Dir, slug.Make(app.Config.Title)+".xlsx")
			}
			var done map[string]bool
			if withProgress {
				done = app.ProgressCLI.Load(ctx)
			}
			out, err := app.ScheduleCLI.Export(ctx, path, done, withProgress)
			if err != nil {
				return noPlanHint(err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %d rows to %s (%s)\n", out.Rows, out.Path, out.Format)
			return nil
		}),
	}
	cmd.Flags().BoolVar(&withProgress, "with-progress", false, "include the Done column")
	return cmd
}

func newSyllabusCmd(opts *rootOptions) *cobra.Command {
	syllabus := &cobra.Command{Use: "syllabus", Short: "Inspect syllabus tables"}
	check := &cobra.Command{
		Use:   "check <file>",
		Short: "Validate a syllabus table without generating a plan",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(opts, func(cmd *cobra.Command, args []string, app *bootstrap.App) error {
			out, err := app.SyllabusCLI.Check(context.Background(), args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, row := range out.Rows {
				_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%g\n", row.Line, row.Discipline, row.Topic, row.Hours)
			}
			_, _ = fmt.Fprintf(w, "%s: %d rows, %g hours (%s)\n", out.Path, len(out.Rows), out.TotalHours, out.Format)
			return nil
		}),
	}
	syllabus.AddCommand(check)
	return syllabus
}

func newTUICmd(opts *rootOptions) *cobra.Command {
	var syllabusPath string
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Browse the plan week by week",
		Args:  cobra.NoArgs,
		RunE: withApp(opts, func(_ *cobra.Command, _ []string, app *bootstrap.App) error {
			return bootstrap.RunTUI(app, syllabusPath)
		}),
	}
	cmd.Flags().StringVar(&syllabusPath, "syllabus", "", "regenerate from this syllabus on start")
	return cmd
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be yyyy-mm-dd", apperrors.ErrInvalidInput, s)
	}
	return t, nil
}

func noPlanHint(err error) error {
	if errors.Is(err, apperrors.ErrNoPlan) {
		return fmt.Errorf("%w: run `studyplan generate <syllabus>` first", err)
	}
	return err
}

func hasSession(plan scheduledto.PlanOutput, id string) bool {
	for _, s := range plan.Sessions {
		if s.ID == id {
			return true
		}
	}
	return false
}

func printSummary(w io.Writer, plan scheduledto.PlanOutput) {
	s := plan.Summary
	_, _ = fmt.Fprintf(w, "%s: %d sessions (%d study, %d review) over %d weeks\n", plan.Title, s.Total, s.Study, s.Review, s.Weeks)
	if s.Total > 0 {
		_, _ = fmt.Fprintf(w, "from %s to %s, resting on %s\n", s.First.Format(time.DateOnly), s.Last.Format(time.DateOnly), plan.Rest)
	}
}

func printSessions(w io.Writer, sessions []scheduledto.SessionOutput) {
	for _, s := range sessions {
		mark := "[ ]"
		if s.Done {
			mark = "[x]"
		}
		_, _ = fmt.Fprintf(w, "%s %s %-9s %s | %s (%s, %s)\n", mark, s.Date.Format("02/01/2006"), s.Weekday, s.Discipline, s.Label, s.Kind, s.Duration)
		_, _ = fmt.Fprintf(w, "    id: %s\n", s.ID)
	}
}
