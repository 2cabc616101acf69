package in

import (
	"context"

	"studyroutine/internal/modules/goals/dto"
)

type Usecase interface {
	GetGoal(ctx context.Context, month string) (dto.GoalOutput, error)
	SetGoal(ctx context.Context, input dto.SetGoalInput) (dto.GoalOutput, error)
	ListGoals(ctx context.Context) ([]dto.GoalOutput, error)
}
