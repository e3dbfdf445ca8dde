package domain

import "time"

// ExportDateLayout renders dates as day/month/year.
const ExportDateLayout = "02/01/2006"

var exportColumns = []string{"Date", "Weekday", "Discipline", "Topic", "Kind", "Duration"}

type PlanMeta struct {
	Title       string
	Source      string
	Start       time.Time
	Rest        time.Weekday
	GeneratedAt time.Time
	Sessions    int
}

// ExportDocument is the full, unfiltered plan as it is written to a file.
type ExportDocument struct {
	Meta         PlanMeta
	Plan         Cronogram
	Done         map[string]bool
	WithProgress bool
}

// IsDone reports whether id is in the completion set. Presence counts.
func (d ExportDocument) IsDone(id string) bool {
	_, ok := d.Done[id]
	return ok
}

func (d ExportDocument) hasNotes() bool {
	for _, s := range d.Plan.Sessions {
		if s.Note != "" {
			return true
		}
	}
	return false
}

func (d ExportDocument) Header() []string {
	header := append([]string(nil), exportColumns...)
	if d.hasNotes() {
		header = append(header, "Note")
	}
	if d.WithProgress {
		header = append(header, "Done")
	}
	return header
}

func (d ExportDocument) Records() [][]string {
	notes := d.hasNotes()
	out := make([][]string, 0, len(d.Plan.Sessions))
	for _, s := range d.Plan.Sessions {
		record := []string{s.Date.Format(ExportDateLayout), s.Weekday, s.Discipline, s.Label, string(s.Kind), s.Duration}
		if notes {
			record = append(record, s.Note)
		}
		if d.WithProgress {
			record = append(record, yesNo(d.IsDone(s.ID)))
		}
		out = append(out, record)
	}
	return out
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
