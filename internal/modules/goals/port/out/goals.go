package out

import (
	"context"

	"studyroutine/internal/modules/goals/domain"
)

// GoalStore returns apperrors.ErrNotFound from Load when no file exists yet.
type GoalStore interface {
	Load(ctx context.Context) ([]domain.Goal, error)
	Save(ctx context.Context, goals []domain.Goal) error
}
