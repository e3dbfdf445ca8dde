package domain

import (
	"time"
)

type Kind string

const (
	KindStudy  Kind = "Study"
	KindReview Kind = "Review"
)

// IDSeparator joins discipline and label into a session id.
const IDSeparator = "::"

const (
	DefaultDuration = "1h Study"
	PageSize        = 6
)

type SyllabusRow struct {
	Discipline string
	Topic      string
	Hours      float64
}

type SessionDescriptor struct {
	Discipline string
	Label      string
	Kind       Kind
}

// ID is the join key against persisted progress. It changes whenever the
// topic name or its hour count changes.
func (d SessionDescriptor) ID() string {
	return SessionID(d.Discipline, d.Label)
}

func SessionID(discipline, label string) string {
	return discipline + IDSeparator + label
}

type ScheduledSession struct {
	ID         string
	Date       time.Time
	Weekday    string
	Discipline string
	Label      string
	Kind       Kind
	Duration   string
	Note       string
}

type Cronogram struct {
	Sessions []ScheduledSession
}

type Summary struct {
	Total  int
	Study  int
	Review int
	First  time.Time
	Last   time.Time
	Weeks  int
}

func (c Cronogram) Len() int { return len(c.Sessions) }

func (c Cronogram) Summary() Summary {
	s := Summary{Total: len(c.Sessions), Weeks: c.Weeks()}
	for _, session := range c.Sessions {
		if session.Kind == KindReview {
			s.Review++
		} else {
			s.Study++
		}
	}
	if len(c.Sessions) > 0 {
		s.First = c.Sessions[0].Date
		s.Last = c.Sessions[len(c.Sessions)-1].Date
	}
	return s
}

// Weeks is the number of fixed-size pages; an empty plan still has one.
func (c Cronogram) Weeks() int {
	if len(c.Sessions) == 0 {
		return 1
	}
	return (len(c.Sessions) + PageSize - 1) / PageSize
}

// Page returns the sessions of 1-based week. Out of range weeks are empty.
func (c Cronogram) Page(week int) []ScheduledSession {
	if week < 1 {
		return nil
	}
	start := (week - 1) * PageSize
	if start >= len(c.Sessions) {
		return nil
	}
	end := start + PageSize
	if end > len(c.Sessions) {
		end = len(c.Sessions)
	}
	return c.Sessions[start:end]
}

// WeekOf returns the 1-based page holding the first session on or after date,
// or the last page when the plan is already over.
func (c Cronogram) WeekOf(date time.Time) int {
	day := Civil(date)
	for i, session := range c.Sessions {
		if !session.Date.Before(day) {
			return i/PageSize + 1
		}
	}
	return c.Weeks()
}

func (c Cronogram) On(date time.Time) []ScheduledSession {
	day := Civil(date)
	var out []ScheduledSession
	for _, session := range c.Sessions {
		if session.Date.Equal(day) {
			out = append(out, session)
		}
	}
	return out
}

func (c Cronogram) Find(id string) (ScheduledSession, bool) {
	for _, session := range c.Sessions {
		if session.ID == id {
			return session, true
		}
	}
	return ScheduledSession{}, false
}

func (c Cronogram) IDs() []string {
	out := make([]string, len(c.Sessions))
	for i, session := range c.Sessions {
		out[i] = session.ID
	}
	return out
}

// Civil truncates t to its calendar date in UTC.
func Civil(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
