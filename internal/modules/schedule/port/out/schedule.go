package out

import (
	"context"

	"studyroutine/internal/modules/schedule/domain"
)

// TableStore persists the whole table. Load returns apperrors.ErrNotFound
// when nothing has been saved yet.
type TableStore interface {
	Load(ctx context.Context) ([]domain.WeekRecord, error)
	Save(ctx context.Context, weeks []domain.WeekRecord) error
}

type WeekIndexProjector interface {
	Reset(ctx context.Context) error
	UpsertWeeks(ctx context.Context, weeks []domain.WeekRecord) error
}
