package usecase

import (
	"context"

	"studyroutine/internal/modules/goals/domain"
	goalsdto "studyroutine/internal/modules/goals/dto"
	goalsin "studyroutine/internal/modules/goals/port/in"
	"studyroutine/internal/modules/goals/service"
)

type Interactor struct {
	svc *service.GoalService
}

func NewInteractor(svc *service.GoalService) goalsin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) GetGoal(ctx context.Context, month string) (goalsdto.GoalOutput, error) {
	goal, err := i.svc.Get(ctx, month)
	if err != nil {
		return goalsdto.GoalOutput{}, err
	}
	return toOutput(goal), nil
}

func (i *Interactor) SetGoal(ctx context.Context, input goalsdto.SetGoalInput) (goalsdto.GoalOutput, error) {
	goal, err := i.svc.Set(ctx, input.Month, input.Text)
	if err != nil {
		return goalsdto.GoalOutput{}, err
	}
	return toOutput(goal), nil
}

func (i *Interactor) ListGoals(ctx context.Context) ([]goalsdto.GoalOutput, error) {
	goals, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]goalsdto.GoalOutput, 0, len(goals))
	for _, g := range goals {
		out = append(out, toOutput(g))
	}
	return out, nil
}

func toOutput(g domain.Goal) goalsdto.GoalOutput {
	return goalsdto.GoalOutput{Month: g.Month, Text: g.Text}
}
