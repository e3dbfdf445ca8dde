package slug_test

import (
	"testing"

	"studyplan/internal/platform/slug"
)

func TestMake(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"Polícia Rodoviária Federal": "policia-rodoviaria-federal",
		"  Study Plan 2026! ":        "study-plan-2026",
		"Língua Portuguesa":          "lingua-portuguesa",
		"???":                        "untitled",
		"":                           "untitled",
	}
	for in, want := range cases {
		if got := slug.Make(in); got != want {
			t.Fatalf("slug.Make(%q) = %q, want %q", in, got, want)
		}
	}
}
