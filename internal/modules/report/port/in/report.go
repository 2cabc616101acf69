package in

import (
	"context"

	"studyroutine/internal/modules/report/dto"
)

type Usecase interface {
	MonthCompletion(ctx context.Context, month string) (dto.RateOutput, error)
	SubjectProgress(ctx context.Context) ([]dto.RateOutput, error)
	MonthProgress(ctx context.Context) ([]dto.RateOutput, error)
	Summary(ctx context.Context) (dto.SummaryOutput, error)
	Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error)
	MonthNote(ctx context.Context, input dto.MonthNoteInput) (dto.MonthNoteOutput, error)
}
