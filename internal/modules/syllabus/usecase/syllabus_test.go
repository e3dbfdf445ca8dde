package usecase_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	syllabusout "studyplan/internal/modules/syllabus/adapter/out"
	"studyplan/internal/modules/syllabus/domain"
	"studyplan/internal/modules/syllabus/dto"
	"studyplan/internal/modules/syllabus/service"
	"studyplan/internal/modules/syllabus/usecase"
	apperrors "studyplan/internal/platform/errors"
)

func newUsecase() *usecase.Interactor {
	svc := service.NewSyllabusService(
		domain.Columns{Discipline: "Discipline", Topic: "Topic", Hours: "Hours"},
		nil,
		syllabusout.NewCSVTableReader(),
		syllabusout.NewXLSXTableReader(),
	)
	return usecase.NewInteractor(svc).(*usecase.Interactor)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadCSVSyllabus(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "edital.CSV", "Discipline,Topic,Hours,Weight\nMath,Algebra,2,3\nMath,Geometry,1.5,1\n")
	out, err := newUsecase().Load(context.Background(), dto.LoadInput{Path: path})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if out.Format != "csv" || len(out.Rows) != 2 || out.TotalHours != 3.5 {
		t.Fatalf("unexpected output %+v", out)
	}
	if out.Rows[0].Line != 2 || out.Rows[1].Topic != "Geometry" {
		t.Fatalf("unexpected rows %+v", out.Rows)
	}
}

func TestLoadFailuresAreInvalidInput(t *testing.T) {
	t.Parallel()
	uc := newUsecase()
	cases := map[string]string{
		"unsupported": writeFile(t, "edital.pdf", "x"),
		"missing":     filepath.Join(t.TempDir(), "nope.csv"),
		"bad hours":   writeFile(t, "bad.csv", "Discipline,Topic,Hours\nMath,Algebra,lots\n"),
		"no column":   writeFile(t, "cols.csv", "Discipline,Topic\nMath,Algebra\n"),
		"broken xlsx": writeFile(t, "broken.xlsx", "zip?"),
		"empty path":  "",
	}
	for name, path := range cases {
		out, err := uc.Load(context.Background(), dto.LoadInput{Path: path})
		if !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("%s: expected invalid input, got %v", name, err)
		}
		if len(out.Rows) != 0 {
			t.Fatalf("%s: no partial rows expected", name)
		}
	}
}
