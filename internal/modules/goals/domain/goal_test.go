package domain_test

import (
	"errors"
	"testing"

	"studyroutine/internal/modules/goals/domain"
	apperrors "studyroutine/internal/platform/errors"
)

func TestBookOrdersByMonthAndKeepsEmptyEntries(t *testing.T) {
	t.Parallel()
	book := domain.NewBook([]domain.Goal{
		{Month: "2025-08", Text: "경제학 미시 정리"},
		{Month: "2025-06", Text: ""},
		{Month: "2025-07", Text: "민법 총칙"},
	})
	goals := book.Goals()
	if len(goals) != 3 {
		t.Fatalf("expected 3 goals, got %d", len(goals))
	}
	if goals[0].Month != "2025-06" || goals[2].Month != "2025-08" {
		t.Fatalf("goals not ordered by month: %+v", goals)
	}

	clone := book.Clone()
	clone["2025-06"] = "changed"
	if book["2025-06"] != "" {
		t.Fatalf("clone must not share storage")
	}
}

func TestNewGoalValidatesMonth(t *testing.T) {
	t.Parallel()
	if _, err := domain.NewGoal("2025-6", "x"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	goal, err := domain.NewGoal("2025-06", "회계학 원가")
	if err != nil || goal.Text != "회계학 원가" {
		t.Fatalf("unexpected goal %+v err=%v", goal, err)
	}
}
