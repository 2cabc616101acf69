package out

import (
	"context"

	goalsin "studyroutine/internal/modules/goals/port/in"
	reportout "studyroutine/internal/modules/report/port/out"
)

type GoalsSource struct {
	goals goalsin.Usecase
}

func NewGoalsSource(goals goalsin.Usecase) reportout.GoalSource {
	return &GoalsSource{goals: goals}
}

func (a *GoalsSource) Goal(ctx context.Context, month string) (string, error) {
	goal, err := a.goals.GetGoal(ctx, month)
	if err != nil {
		return "", err
	}
	return goal.Text, nil
}
