package dto

import "time"

type GenerateInput struct {
	SyllabusPath string
	Start        time.Time
	// Rest overrides the configured rest weekday when set.
	Rest *time.Weekday
}

type SessionOutput struct {
	ID         string
	Date       time.Time
	Weekday    string
	Discipline string
	Label      string
	Kind       string
	Duration   string
	Note       string
	Done       bool
}

type SummaryOutput struct {
	Total  int
	Study  int
	Review int
	First  time.Time
	Last   time.Time
	Weeks  int
}

type PlanOutput struct {
	Title       string
	Source      string
	Start       time.Time
	Rest        time.Weekday
	GeneratedAt time.Time
	// CurrentWeek is the page holding today's or the next session.
	CurrentWeek int
	Summary     SummaryOutput
	Sessions    []SessionOutput
}

type WeekInput struct {
	Week int
	Done map[string]bool
}

type WeekOutput struct {
	Week     int
	Weeks    int
	Rota     []string
	Sessions []SessionOutput
}

type DueInput struct {
	Date time.Time
	Done map[string]bool
}

type ExportInput struct {
	Path         string
	WithProgress bool
	Done         map[string]bool
}

type ExportOutput struct {
	Path   string
	Format string
	Rows   int
}
