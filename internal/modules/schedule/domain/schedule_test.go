package domain_test

import (
	"testing"
	"time"

	"studyplan/internal/modules/schedule/domain"
)

func planOf(n int) domain.Cronogram {
	descriptors := make([]domain.SessionDescriptor, n)
	for i := range descriptors {
		kind := domain.KindStudy
		if i%3 == 2 {
			kind = domain.KindReview
		}
		descriptors[i] = domain.SessionDescriptor{Discipline: "D", Label: string(rune('A' + i)), Kind: kind}
	}
	return domain.Cronogram{Sessions: domain.Assign(descriptors, monday(), time.Sunday, domain.AssignOptions{})}
}

func TestPagesOfSix(t *testing.T) {
	t.Parallel()
	plan := planOf(14)
	if plan.Weeks() != 3 {
		t.Fatalf("expected 3 weeks, got %d", plan.Weeks())
	}
	if len(plan.Page(1)) != 6 || len(plan.Page(3)) != 2 {
		t.Fatalf("unexpected page sizes %d %d", len(plan.Page(1)), len(plan.Page(3)))
	}
	if plan.Page(2)[0].Label != "G" {
		t.Fatalf("week 2 should start at the seventh session, got %s", plan.Page(2)[0].Label)
	}
	if plan.Page(0) != nil || plan.Page(4) != nil {
		t.Fatalf("out of range pages must be empty")
	}
	if (domain.Cronogram{}).Weeks() != 1 {
		t.Fatalf("empty plan keeps one page")
	}
}

func TestSummaryAndLookups(t *testing.T) {
	t.Parallel()
	plan := planOf(7)
	s := plan.Summary()
	if s.Total != 7 || s.Review != 2 || s.Study != 5 || s.Weeks != 2 {
		t.Fatalf("unexpected summary %+v", s)
	}
	if !s.First.Equal(monday()) || !s.Last.Equal(monday().AddDate(0, 0, 7)) {
		t.Fatalf("unexpected range %s..%s", s.First, s.Last)
	}
	tuesday := monday().AddDate(0, 0, 1).Add(13 * time.Hour)
	if on := plan.On(tuesday); len(on) != 1 || on[0].Label != "B" {
		t.Fatalf("unexpected sessions on tuesday %+v", on)
	}
	if on := plan.On(monday().AddDate(0, 0, 6)); len(on) != 0 {
		t.Fatalf("rest day must be empty")
	}
	if week := plan.WeekOf(monday().AddDate(0, 0, 6)); week != 2 {
		t.Fatalf("sunday after week one belongs to week 2, got %d", week)
	}
	if week := plan.WeekOf(monday().AddDate(1, 0, 0)); week != 2 {
		t.Fatalf("past the end should clamp to the last week, got %d", week)
	}
	if _, ok := plan.Find("D::C"); !ok {
		t.Fatalf("expected to find D::C")
	}
	if _, ok := plan.Find("D::missing"); ok {
		t.Fatalf("unexpected match")
	}
	empty := (domain.Cronogram{}).Summary()
	if empty.Total != 0 || !empty.First.IsZero() {
		t.Fatalf("unexpected empty summary %+v", empty)
	}
}
