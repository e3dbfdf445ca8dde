package usecase

import (
	"time"

	"studyplan/internal/modules/schedule/domain"
	"studyplan/internal/modules/schedule/dto"
)

func toPlanOutput(meta domain.PlanMeta, plan domain.Cronogram, today time.Time) dto.PlanOutput {
	summary := plan.Summary()
	return dto.PlanOutput{
		Title:       meta.Title,
		Source:      meta.Source,
		Start:       meta.Start,
		Rest:        meta.Rest,
		GeneratedAt: meta.GeneratedAt,
		CurrentWeek: plan.WeekOf(today),
		Summary: dto.SummaryOutput{
			Total:  summary.Total,
			Study:  summary.Study,
			Review: summary.Review,
			First:  summary.First,
			Last:   summary.Last,
			Weeks:  summary.Weeks,
		},
		Sessions: toSessionOutputs(plan.Sessions, nil),
	}
}

func toSessionOutputs(sessions []domain.ScheduledSession, done map[string]bool) []dto.SessionOutput {
	out := make([]dto.SessionOutput, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, dto.SessionOutput{
			ID:         s.ID,
			Date:       s.Date,
			Weekday:    s.Weekday,
			Discipline: s.Discipline,
			Label:      s.Label,
			Kind:       string(s.Kind),
			Duration:   s.Duration,
			Note:       s.Note,
			Done:       isDone(done, s.ID),
		})
	}
	return out
}

func isDone(done map[string]bool, id string) bool {
	_, ok := done[id]
	return ok
}
