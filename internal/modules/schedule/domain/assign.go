package domain

import "time"

type AssignOptions struct {
	Duration     string
	WeekdayNames map[time.Weekday]string
	Notes        map[Kind]string
}

// Rota lists the weekday names sessions can land on, Monday first, with the
// rest day left out.
func Rota(rest time.Weekday, names map[time.Weekday]string) []string {
	out := make([]string, 0, 6)
	for i := 0; i < 7; i++ {
		day := time.Weekday((int(time.Monday) + i) % 7)
		if day == rest {
			continue
		}
		out = append(out, weekdayName(day, names))
	}
	return out
}

func weekdayName(day time.Weekday, names map[time.Weekday]string) string {
	if name, ok := names[day]; ok && name != "" {
		return name
	}
	return day.String()
}

// Assign gives each descriptor its own calendar day starting at start,
// never landing on rest. A start date on the rest day is moved forward.
func Assign(descriptors []SessionDescriptor, start time.Time, rest time.Weekday, opts AssignOptions) []ScheduledSession {
	duration := opts.Duration
	if duration == "" {
		duration = DefaultDuration
	}
	cursor := Civil(start)
	out := make([]ScheduledSession, 0, len(descriptors))
	for _, d := range descriptors {
		for cursor.Weekday() == rest {
			cursor = cursor.AddDate(0, 0, 1)
		}
		out = append(out, ScheduledSession{
			ID:         d.ID(),
			Date:       cursor,
			Weekday:    weekdayName(cursor.Weekday(), opts.WeekdayNames),
			Discipline: d.Discipline,
			Label:      d.Label,
			Kind:       d.Kind,
			Duration:   duration,
			Note:       opts.Notes[d.Kind],
		})
		cursor = cursor.AddDate(0, 0, 1)
	}
	return out
}

// Generate runs the whole pipeline: rows -> descriptors -> dated sessions.
func Generate(rows []SyllabusRow, start time.Time, rest time.Weekday, opts AssignOptions) (Cronogram, error) {
	descriptors, err := Expand(rows)
	if err != nil {
		return Cronogram{}, err
	}
	return Cronogram{Sessions: Assign(descriptors, start, rest, opts)}, nil
}
