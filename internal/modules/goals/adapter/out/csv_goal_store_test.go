package out_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	goalsout "studyroutine/internal/modules/goals/adapter/out"
	"studyroutine/internal/modules/goals/domain"
	apperrors "studyroutine/internal/platform/errors"
)

func TestCSVGoalStoreRoundTrip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "monthly_goals.csv")
	store := goalsout.NewCSVGoalStore(path)
	if _, err := store.Load(context.Background()); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found before first save, got %v", err)
	}

	goals := []domain.Goal{
		{Month: "2025-06", Text: "민법 총칙 1회독,\n기출 10문제"},
		{Month: "2025-07", Text: ""},
	}
	if err := store.Save(context.Background(), goals); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != 2 || loaded[0] != goals[0] || loaded[1] != goals[1] {
		t.Fatalf("round trip mismatch: %+v", loaded)
	}
}

func TestCSVGoalStoreRejectsBadMonth(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "monthly_goals.csv")
	if err := os.WriteFile(path, []byte("월,목표\n6월,x\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := goalsout.NewCSVGoalStore(path).Load(context.Background()); !errors.Is(err, apperrors.ErrDataCorruption) {
		t.Fatalf("expected data corruption, got %v", err)
	}
}

func TestCSVGoalStoreRejectsDuplicateMonth(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "monthly_goals.csv")
	if err := os.WriteFile(path, []byte("월,목표\n2025-06,a\n2025-06,b\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := goalsout.NewCSVGoalStore(path).Load(context.Background()); !errors.Is(err, apperrors.ErrDataCorruption) {
		t.Fatalf("expected data corruption for duplicate month, got %v", err)
	}
}
