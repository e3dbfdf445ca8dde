package out_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	progressout "studyplan/internal/modules/progress/adapter/out"
	"studyplan/internal/modules/progress/domain"
	apperrors "studyplan/internal/platform/errors"
)

func TestFileProgressStoreRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), ".studyplan", "progress.json")
	store := progressout.NewFileProgressStore(path)

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load missing: %v", err)
	}
	if got.Len() != 0 {
		t.Fatalf("expected empty record, got %v", got)
	}

	record := domain.Record{"Math::Review Algebra": true, "Math::Algebra - Part 1": true}
	if err := store.Save(ctx, record); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err = store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := domain.Record{"Math::Review Algebra": true, "Math::Algebra - Part 1": true}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestFileProgressStoreKeepsAnyMarker(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	cases := []struct {
		name    string
		payload string
		want    domain.Record
	}{
		{name: "false", payload: `{"X": false}`, want: domain.Record{"X": true}},
		{name: "number next to bool", payload: `{"X": 1, "Y": true}`, want: domain.Record{"X": true, "Y": true}},
		{name: "string", payload: `{"X": "yes"}`, want: domain.Record{"X": true}},
		{name: "object", payload: `{"X": {"at": "2025-10-20"}}`, want: domain.Record{"X": true}},
	}
	for _, tc := range cases {
		path := filepath.Join(t.TempDir(), "progress.json")
		if err := os.WriteFile(path, []byte(tc.payload), 0o644); err != nil {
			t.Fatalf("%s: write: %v", tc.name, err)
		}
		got, err := progressout.NewFileProgressStore(path).Load(ctx)
		if err != nil {
			t.Fatalf("%s: load: %v", tc.name, err)
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("%s: got %v want %v", tc.name, got, tc.want)
		}
	}
}

func TestFileProgressStoreEmptyObjectEqualsAbsent(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "progress.json")
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := progressout.NewFileProgressStore(path).Load(context.Background())
	if err != nil || got.Len() != 0 {
		t.Fatalf("expected empty record, got %v (%v)", got, err)
	}
}

func TestFileProgressStoreCorruptIsStorageError(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "progress.json")
	if err := os.WriteFile(path, []byte(`["not", "an", "object"]`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := progressout.NewFileProgressStore(path).Load(context.Background()); !errors.Is(err, apperrors.ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}
}

func TestFileProgressStoreBacksUpCorruptBeforeSave(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "progress.json")
	corrupt := []byte(`{"Math::Review Algebra": tru`)
	if err := os.WriteFile(path, corrupt, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	store := progressout.NewFileProgressStore(path).(*progressout.FileProgressStore)
	if err := store.Save(ctx, domain.Record{"a": true}); err != nil {
		t.Fatalf("save: %v", err)
	}
	backup, err := os.ReadFile(store.BackupPath())
	if err != nil || string(backup) != string(corrupt) {
		t.Fatalf("corrupt artifact not kept: %q (%v)", backup, err)
	}
	got, err := store.Load(ctx)
	if err != nil || !reflect.DeepEqual(got, domain.Record{"a": true}) {
		t.Fatalf("unexpected record after save: %v (%v)", got, err)
	}

	if err := store.Save(ctx, domain.Record{"b": true}); err != nil {
		t.Fatalf("second save: %v", err)
	}
	if backup, _ := os.ReadFile(store.BackupPath()); string(backup) != string(corrupt) {
		t.Fatalf("valid artifact must not replace the backup: %q", backup)
	}
}

func TestFileProgressStoreDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "progress.json")
	store := progressout.NewFileProgressStore(path)
	if err := store.Delete(ctx); err != nil {
		t.Fatalf("delete missing: %v", err)
	}
	if err := store.Save(ctx, domain.Record{"a": true}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Delete(ctx); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("artifact still present: %v", err)
	}
}

func TestFileProgressStoreUnwritable(t *testing.T) {
	t.Parallel()
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("file"), 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}
	store := progressout.NewFileProgressStore(filepath.Join(blocker, "progress.json"))
	if err := store.Save(context.Background(), domain.Record{"a": true}); !errors.Is(err, apperrors.ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}
}
