package week

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/paginator"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	scheduledto "studyplan/internal/modules/schedule/dto"
	"studyplan/internal/ui/theme"
)

const dateLayout = "02/01"

// Model renders one page of the plan as a grid of session cards. It holds no
// ports; the app model loads pages and feeds them in.
type Model struct {
	week   scheduledto.WeekOutput
	cursor int
	pager  paginator.Model
	loaded bool
	err    error
	width  int
	height int
}

func New() Model {
	p := paginator.New()
	p.Type = paginator.Dots
	p.PerPage = 1
	p.ActiveDot = theme.Hot.Render("●")
	p.InactiveDot = theme.Muted.Render("○")
	return Model{pager: p}
}

// SetWeek replaces the shown page. The cursor stays on the same slot when the
// new page is long enough.
func (m *Model) SetWeek(out scheduledto.WeekOutput) {
	m.week = out
	m.loaded = true
	m.err = nil
	m.pager.TotalPages = max(out.Weeks, 1)
	m.pager.Page = max(out.Week-1, 0)
	if m.cursor >= len(out.Sessions) {
		m.cursor = max(len(out.Sessions)-1, 0)
	}
}

func (m *Model) SetError(err error) {
	m.err = err
	m.loaded = true
}

// Mark refreshes done flags from record on a copy of the page, leaving
// earlier copies of the model untouched. Presence in record means done.
func (m *Model) Mark(record map[string]bool) {
	sessions := make([]scheduledto.SessionOutput, len(m.week.Sessions))
	copy(sessions, m.week.Sessions)
	for i := range sessions {
		_, sessions[i].Done = record[sessions[i].ID]
	}
	m.week.Sessions = sessions
}

func (m Model) Week() int { return m.week.Week }

func (m Model) Weeks() int { return m.week.Weeks }

func (m Model) Selected() (scheduledto.SessionOutput, bool) {
	if m.cursor < 0 || m.cursor >= len(m.week.Sessions) {
		return scheduledto.SessionOutput{}, false
	}
	return m.week.Sessions[m.cursor], true
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.week.Sessions)-1 {
				m.cursor++
			}
		}
	}
	return m, nil
}

func (m Model) View() string {
	switch {
	case m.err != nil:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			theme.Warning.Render(m.err.Error())+"\n\n"+theme.Muted.Render("run `studyplan generate <syllabus>` first"))
	case !m.loaded:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, theme.Muted.Render("Loading plan…"))
	case len(m.week.Sessions) == 0:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, theme.Muted.Render("No sessions this week"))
	}

	cols := m.columns()
	cardW := max(m.width/cols-2, 18)
	var rows []string
	for start := 0; start < len(m.week.Sessions); start += cols {
		end := min(start+cols, len(m.week.Sessions))
		cards := make([]string, 0, cols)
		for i := start; i < end; i++ {
			cards = append(cards, m.renderCard(i, cardW))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}

	header := theme.Title.Render(fmt.Sprintf("Week %d of %d", m.week.Week, m.week.Weeks)) + "  " + m.pager.View()
	return lipgloss.JoinVertical(lipgloss.Left, header, "", strings.Join(rows, "\n"))
}

func (m Model) columns() int {
	switch {
	case m.width >= 96:
		return 3
	case m.width >= 60:
		return 2
	default:
		return 1
	}
}

func (m Model) renderCard(i, width int) string {
	s := m.week.Sessions[i]
	style := theme.Card
	switch {
	case i == m.cursor:
		style = theme.CardSelected
	case s.Done:
		style = theme.CardDone
	}

	mark := theme.Muted.Render("[ ]")
	if s.Done {
		mark = theme.Done.Render("[x]")
	}
	kind := theme.Muted.Render(s.Kind)
	if s.Kind == "Review" {
		kind = theme.Review.Render(s.Kind)
	}

	var sb strings.Builder
	sb.WriteString(theme.Hot.Render(s.Weekday) + " " + theme.Muted.Render(s.Date.Format(dateLayout)) + "\n")
	sb.WriteString(s.Discipline + "\n")
	sb.WriteString(lipgloss.NewStyle().Bold(true).Render(s.Label) + "\n")
	sb.WriteString(mark + " " + kind + theme.Muted.Render(" · "+s.Duration))
	if s.Note != "" {
		sb.WriteString("\n" + theme.Muted.Render(s.Note))
	}
	return style.Width(width).Render(sb.String())
}
