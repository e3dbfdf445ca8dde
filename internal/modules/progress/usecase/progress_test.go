package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	progressout "studyplan/internal/modules/progress/adapter/out"
	"studyplan/internal/modules/progress/dto"
	"studyplan/internal/modules/progress/service"
	"studyplan/internal/modules/progress/usecase"
	apperrors "studyplan/internal/platform/errors"
	"studyplan/internal/platform/logging"
)

func newUsecase(path string) *usecase.Interactor {
	svc := service.NewProgressService(progressout.NewFileProgressStore(path), nil)
	return usecase.NewInteractor(svc).(*usecase.Interactor)
}

func TestToggleTwiceRoundTrips(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "progress.json")
	uc := newUsecase(path)

	first, err := uc.Toggle(ctx, dto.ToggleInput{Record: uc.Load(ctx), ID: "Math::Review Algebra"})
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !first.Done || !uc.Load(ctx)["Math::Review Algebra"] {
		t.Fatalf("toggle did not persist: %+v", first)
	}
	second, err := uc.Toggle(ctx, dto.ToggleInput{Record: first.Record, ID: "Math::Review Algebra"})
	if err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	if second.Done || len(uc.Load(ctx)) != 0 {
		t.Fatalf("toggle back did not persist: %+v", second)
	}
}

func TestResetAfterToggles(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), ".studyplan", "progress.json")
	uc := newUsecase(path)

	record := uc.Load(ctx)
	for _, id := range []string{"Math::Algebra - Part 1", "Math::Algebra - Part 2", "Math::Review Algebra"} {
		out, err := uc.Toggle(ctx, dto.ToggleInput{Record: record, ID: id})
		if err != nil {
			t.Fatalf("toggle %s: %v", id, err)
		}
		record = out.Record
	}
	if len(uc.Load(ctx)) != 3 {
		t.Fatalf("expected three persisted ids")
	}

	cleared, err := uc.Reset(ctx)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if len(cleared) != 0 || len(uc.Load(ctx)) != 0 {
		t.Fatalf("reset left entries behind")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("artifact still present: %v", err)
	}
	if _, err := uc.Reset(ctx); err != nil {
		t.Fatalf("second reset: %v", err)
	}
}

func TestLoadCorruptIsEmptyAndWarns(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "progress.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	logs := &bytes.Buffer{}
	svc := service.NewProgressService(progressout.NewFileProgressStore(path), logging.New(logging.Options{Level: "warn", Output: logs}))
	uc := usecase.NewInteractor(svc)

	if got := uc.Load(context.Background()); len(got) != 0 {
		t.Fatalf("expected empty record, got %v", got)
	}
	if !strings.Contains(logs.String(), "progress unreadable") {
		t.Fatalf("expected warning, got %q", logs.String())
	}
}

func TestToggleStorageFailureKeepsNewRecord(t *testing.T) {
	t.Parallel()
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("file"), 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}
	uc := newUsecase(filepath.Join(blocker, "progress.json"))

	out, err := uc.Toggle(context.Background(), dto.ToggleInput{Record: map[string]bool{"a": true}, ID: "b"})
	if !errors.Is(err, apperrors.ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}
	if !out.Done || !out.Record["a"] || !out.Record["b"] {
		t.Fatalf("in-memory record lost: %+v", out)
	}
}

func TestToggleRequiresID(t *testing.T) {
	t.Parallel()
	uc := newUsecase(filepath.Join(t.TempDir(), "progress.json"))
	if _, err := uc.Toggle(context.Background(), dto.ToggleInput{ID: "  "}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestStatus(t *testing.T) {
	t.Parallel()
	uc := newUsecase(filepath.Join(t.TempDir(), "progress.json"))
	out := uc.Status(context.Background(), dto.StatusInput{
		IDs:    []string{"a", "b", "c", "d"},
		Record: map[string]bool{"a": true, "gone": true},
	})
	if out.Done != 1 || out.Total != 4 || out.Percent != 25 || len(out.Orphaned) != 1 || out.Orphaned[0] != "gone" {
		t.Fatalf("unexpected status %+v", out)
	}
	if empty := uc.Status(context.Background(), dto.StatusInput{}); empty.Percent != 0 || empty.Total != 0 {
		t.Fatalf("unexpected empty status %+v", empty)
	}
}
