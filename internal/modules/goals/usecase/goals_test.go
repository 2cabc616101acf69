package usecase_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	goalsout "studyroutine/internal/modules/goals/adapter/out"
	"studyroutine/internal/modules/goals/domain"
	goalsdto "studyroutine/internal/modules/goals/dto"
	"studyroutine/internal/modules/goals/service"
	"studyroutine/internal/modules/goals/usecase"
	apperrors "studyroutine/internal/platform/errors"
)

type failingStore struct{}

func (failingStore) Load(context.Context) ([]domain.Goal, error) { return nil, apperrors.ErrNotFound }
func (failingStore) Save(context.Context, []domain.Goal) error   { return errors.New("read-only") }

func TestGoalsPersistAcrossInstances(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "monthly_goals.csv")
	ctx := context.Background()
	uc := usecase.NewInteractor(service.NewGoalService(goalsout.NewCSVGoalStore(path), nil))

	unset, err := uc.GetGoal(ctx, "2025-06")
	if err != nil || unset.Text != "" {
		t.Fatalf("unset goal should be empty, got %+v err=%v", unset, err)
	}
	if _, err := uc.SetGoal(ctx, goalsdto.SetGoalInput{Month: "2025-07", Text: "경제학 거시"}); err != nil {
		t.Fatalf("set goal: %v", err)
	}
	if _, err := uc.SetGoal(ctx, goalsdto.SetGoalInput{Month: "2025-06", Text: "민법 총칙"}); err != nil {
		t.Fatalf("set goal: %v", err)
	}

	reloaded := usecase.NewInteractor(service.NewGoalService(goalsout.NewCSVGoalStore(path), nil))
	goals, err := reloaded.ListGoals(ctx)
	if err != nil {
		t.Fatalf("list goals: %v", err)
	}
	if len(goals) != 2 || goals[0].Month != "2025-06" || goals[1].Text != "경제학 거시" {
		t.Fatalf("unexpected goals after reload: %+v", goals)
	}
}

func TestSetGoalRejectsBadMonthAndKeepsMemoryOnFailedSave(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := usecase.NewInteractor(service.NewGoalService(failingStore{}, nil))
	if _, err := uc.SetGoal(ctx, goalsdto.SetGoalInput{Month: "July", Text: "x"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if _, err := uc.SetGoal(ctx, goalsdto.SetGoalInput{Month: "2025-07", Text: "x"}); err == nil {
		t.Fatalf("expected save failure")
	}
	goal, err := uc.GetGoal(ctx, "2025-07")
	if err != nil || goal.Text != "" {
		t.Fatalf("failed save must not change memory: %+v err=%v", goal, err)
	}
}
