package out

import (
	"context"

	"studyroutine/internal/modules/report/domain"
)

type WeekSource interface {
	Weeks(ctx context.Context) ([]domain.Week, error)
}

type GoalSource interface {
	Goal(ctx context.Context, month string) (string, error)
}

// TableEncoder renders the export file. Full keeps the index and start
// date columns.
type TableEncoder interface {
	Encode(weeks []domain.Week, full bool) ([]byte, error)
}

// FileSink reads and replaces files. Read returns apperrors.ErrNotFound
// for a missing file.
type FileSink interface {
	Read(ctx context.Context, path string) ([]byte, error)
	Write(ctx context.Context, path string, data []byte) error
}
