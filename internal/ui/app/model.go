package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	progressdto "studyplan/internal/modules/progress/dto"
	scheduledto "studyplan/internal/modules/schedule/dto"
	apperrors "studyplan/internal/platform/errors"
	"studyplan/internal/ui/components"
	"studyplan/internal/ui/theme"
	weekview "studyplan/internal/ui/views/week"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type schedulePort interface {
	Generate(ctx context.Context, syllabusPath string, start time.Time, rest *time.Weekday) (scheduledto.PlanOutput, error)
	Current(ctx context.Context) (scheduledto.PlanOutput, error)
	Week(ctx context.Context, week int, done map[string]bool) (scheduledto.WeekOutput, error)
	Export(ctx context.Context, path string, done map[string]bool, withProgress bool) (scheduledto.ExportOutput, error)
}

type progressPort interface {
	Load(ctx context.Context) map[string]bool
	Toggle(ctx context.Context, record map[string]bool, id string) (progressdto.ToggleOutput, error)
	Reset(ctx context.Context) (map[string]bool, error)
	Status(ctx context.Context, ids []string, record map[string]bool) progressdto.StatusOutput
}

// ─── async messages ──────────────────────────────────────────────────────────

type planLoadedMsg struct {
	plan   scheduledto.PlanOutput
	record map[string]bool
	err    error
}

type weekLoadedMsg struct {
	week scheduledto.WeekOutput
	err  error
}

type toggledMsg struct {
	out progressdto.ToggleOutput
	err error
}

type resetMsg struct {
	record map[string]bool
	err    error
}

type exportedMsg struct {
	out scheduledto.ExportOutput
	err error
}

// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	PrevWeek key.Binding
	NextWeek key.Binding
	Up       key.Binding
	Down     key.Binding
	Toggle   key.Binding
	Reset    key.Binding
	Palette  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		PrevWeek: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "previous week")),
		NextWeek: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next week")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "previous session")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "next session")),
		Toggle:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle done")),
		Reset:    key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reset progress")),
		Palette:  key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevWeek, k.NextWeek, k.Toggle, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevWeek, k.NextWeek, k.Up, k.Down},
		{k.Toggle, k.Reset},
		{k.Palette, k.Help, k.Quit},
	}
}

// paletteHints must stay in sync with executePalette.
var paletteHints = []string{
	"export <file> [--with-progress]",
	"start <yyyy-mm-dd>",
	"week <n>",
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns the plan, the completion
// record and the current week; rendering of the page is delegated to the
// week view.
type Model struct {
	schedule schedulePort
	progress progressPort
	syllabus string

	plan   scheduledto.PlanOutput
	ids    []string
	record map[string]bool
	ready  bool
	// toggles queues ids pressed while a save is in flight; the head is the
	// one being saved.
	toggles []string

	weekView weekview.Model
	keys     keyMap
	help     help.Model
	showHelp bool
	palette  components.Palette
	status   string
	warn     bool
	width    int
	height   int
}

// NewModel builds the pager. When syllabusPath is set the plan is regenerated
// from it on start, otherwise the last generated plan is shown.
func NewModel(schedule schedulePort, progress progressPort, syllabusPath string) Model {
	return Model{
		schedule: schedule,
		progress: progress,
		syllabus: syllabusPath,
		record:   map[string]bool{},
		weekView: weekview.New(),
		keys:     defaultKeys(),
		help:     help.New(),
		palette:  components.NewPalette(paletteHints...),
		status:   "loading plan",
	}
}

func (m Model) Init() tea.Cmd {
	if m.syllabus != "" {
		return m.generateCmd(m.syllabus, time.Time{}, nil)
	}
	return m.loadPlanCmd()
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// The palette intercepts all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.weekView, _ = m.weekView.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height - 3})
		return m, nil

	case planLoadedMsg:
		if msg.err != nil {
			if errors.Is(msg.err, apperrors.ErrNoPlan) {
				m.setStatus("no plan generated yet", true)
			} else {
				m.setStatus("plan: "+msg.err.Error(), true)
			}
			m.weekView.SetError(msg.err)
			return m, nil
		}
		m.plan = msg.plan
		m.record = msg.record
		m.ids = make([]string, len(msg.plan.Sessions))
		for i, s := range msg.plan.Sessions {
			m.ids[i] = s.ID
		}
		m.ready = true
		m.setStatus(fmt.Sprintf("%d sessions over %d weeks", msg.plan.Summary.Total, msg.plan.Summary.Weeks), false)
		return m, m.loadWeekCmd(max(msg.plan.CurrentWeek, 1))

	case weekLoadedMsg:
		if msg.err != nil {
			m.setStatus("week: "+msg.err.Error(), true)
			return m, nil
		}
		m.weekView.SetWeek(msg.week)
		return m, nil

	case toggledMsg:
		// The returned record is authoritative even when saving failed.
		m.record = msg.out.Record
		m.weekView.Mark(m.record)
		var next tea.Cmd
		if len(m.toggles) > 0 {
			m.toggles = m.toggles[1:]
		}
		if len(m.toggles) > 0 {
			next = m.toggleCmd(m.toggles[0])
		}
		switch {
		case msg.err != nil && msg.out.ID == "":
			m.setStatus("toggle: "+msg.err.Error(), true)
		case msg.err != nil:
			m.setStatus("progress not saved: "+msg.err.Error(), true)
		case msg.out.Done:
			m.setStatus("done: "+msg.out.ID, false)
		default:
			m.setStatus("not done: "+msg.out.ID, false)
		}
		return m, next

	case resetMsg:
		m.record = msg.record
		m.weekView.Mark(m.record)
		if msg.err != nil {
			m.setStatus("progress not cleared: "+msg.err.Error(), true)
		} else {
			m.setStatus("progress reset", false)
		}
		return m, nil

	case exportedMsg:
		if msg.err != nil {
			m.setStatus("export: "+msg.err.Error(), true)
		} else {
			m.setStatus(fmt.Sprintf("exported %d rows to %s (%s)", msg.out.Rows, msg.out.Path, msg.out.Format), false)
		}
		return m, nil

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.setStatus("ready", false)
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = true
			return m, nil
		case key.Matches(msg, m.keys.Palette):
			return m, m.palette.Open()
		}
		if !m.ready {
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.PrevWeek):
			if w := m.weekView.Week(); w > 1 {
				return m, m.loadWeekCmd(w - 1)
			}
			return m, nil
		case key.Matches(msg, m.keys.NextWeek):
			if w := m.weekView.Week(); w < m.weekView.Weeks() {
				return m, m.loadWeekCmd(w + 1)
			}
			return m, nil
		case key.Matches(msg, m.keys.Toggle):
			s, ok := m.weekView.Selected()
			if !ok {
				return m, nil
			}
			m.toggles = append(m.toggles, s.ID)
			if len(m.toggles) > 1 {
				return m, nil
			}
			return m, m.toggleCmd(s.ID)
		case key.Matches(msg, m.keys.Reset):
			if len(m.toggles) > 0 {
				m.setStatus("saving progress, try reset again", true)
				return m, nil
			}
			return m, m.resetCmd()
		}
	}

	var cmd tea.Cmd
	m.weekView, cmd = m.weekView.Update(msg)
	return m, cmd
}

func (m *Model) setStatus(s string, warn bool) {
	m.status = s
	m.warn = warn
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	header := m.renderHeader()
	statusBar := m.renderStatusBar()
	contentH := max(m.height-lipgloss.Height(header)-lipgloss.Height(statusBar), 1)

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = lipgloss.NewStyle().Height(contentH).Render(m.weekView.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

func (m Model) renderHeader() string {
	title := m.plan.Title
	if title == "" {
		title = "studyplan"
	}
	bar := theme.Title.Render(title)
	if m.ready {
		st := m.progress.Status(context.Background(), m.ids, m.record)
		bar += theme.Muted.Render(fmt.Sprintf("   %d/%d done (%.0f%%)", st.Done, st.Total, st.Percent))
		if len(st.Orphaned) > 0 {
			bar += theme.Warning.Render(fmt.Sprintf("  %d orphaned", len(st.Orphaned)))
		}
	}
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.warn {
		left = theme.Warning.Render(left)
	}
	right := m.help.ShortHelpView(m.keys.ShortHelp())
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ───────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}

	switch parts[0] {
	case "export":
		if len(parts) < 2 {
			m.setStatus("usage: export <file> [--with-progress]", true)
			return m, nil
		}
		withProgress := len(parts) > 2 && parts[2] == "--with-progress"
		return m, m.exportCmd(parts[1], withProgress)

	case "start":
		if len(parts) < 2 {
			m.setStatus("usage: start <yyyy-mm-dd>", true)
			return m, nil
		}
		start, err := time.Parse(time.DateOnly, parts[1])
		if err != nil {
			m.setStatus("invalid date: "+parts[1], true)
			return m, nil
		}
		source := m.syllabus
		if source == "" {
			source = m.plan.Source
		}
		if source == "" {
			m.setStatus("no syllabus to regenerate from", true)
			return m, nil
		}
		rest := m.plan.Rest
		m.setStatus("regenerating from "+start.Format(time.DateOnly), false)
		return m, m.generateCmd(source, start, &rest)

	case "week":
		if len(parts) < 2 {
			m.setStatus("usage: week <n>", true)
			return m, nil
		}
		n, err := strconv.Atoi(parts[1])
		if err != nil || n < 1 || (m.ready && n > m.plan.Summary.Weeks) {
			m.setStatus("invalid week: "+parts[1], true)
			return m, nil
		}
		return m, m.loadWeekCmd(n)

	default:
		m.setStatus("unknown command: "+parts[0], true)
	}
	return m, nil
}

// ─── async commands ──────────────────────────────────────────────────────────

func (m Model) loadPlanCmd() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		plan, err := m.schedule.Current(ctx)
		if err != nil {
			return planLoadedMsg{err: err}
		}
		return planLoadedMsg{plan: plan, record: m.progress.Load(ctx)}
	}
}

func (m Model) generateCmd(path string, start time.Time, rest *time.Weekday) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		plan, err := m.schedule.Generate(ctx, path, start, rest)
		if err != nil {
			return planLoadedMsg{err: err}
		}
		return planLoadedMsg{plan: plan, record: m.progress.Load(ctx)}
	}
}

func (m Model) loadWeekCmd(week int) tea.Cmd {
	record := m.record
	return func() tea.Msg {
		out, err := m.schedule.Week(context.Background(), week, record)
		return weekLoadedMsg{week: out, err: err}
	}
}

func (m Model) toggleCmd(id string) tea.Cmd {
	record := m.record
	return func() tea.Msg {
		out, err := m.progress.Toggle(context.Background(), record, id)
		return toggledMsg{out: out, err: err}
	}
}

func (m Model) resetCmd() tea.Cmd {
	return func() tea.Msg {
		record, err := m.progress.Reset(context.Background())
		return resetMsg{record: record, err: err}
	}
}

func (m Model) exportCmd(path string, withProgress bool) tea.Cmd {
	record := m.record
	return func() tea.Msg {
		out, err := m.schedule.Export(context.Background(), path, record, withProgress)
		return exportedMsg{out: out, err: err}
	}
}
