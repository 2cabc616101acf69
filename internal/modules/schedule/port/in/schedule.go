package in

import (
	"context"

	"studyroutine/internal/modules/schedule/dto"
)

type Usecase interface {
	ListMonths(ctx context.Context) ([]string, error)
	MonthWeeks(ctx context.Context, month string) ([]dto.WeekOutput, error)
	GetWeek(ctx context.Context, index int) (dto.WeekOutput, error)
	UpdateWeek(ctx context.Context, input dto.UpdateWeekInput) (dto.WeekOutput, error)
	SetDone(ctx context.Context, index int, done bool) (dto.WeekOutput, error)
	Reminders(ctx context.Context) ([]dto.WeekOutput, error)
	ListWeeks(ctx context.Context) ([]dto.WeekOutput, error)
	Subjects(ctx context.Context) ([]string, error)
	Today(ctx context.Context) (dto.WeekOutput, error)
	Reload(ctx context.Context) error
	Reindex(ctx context.Context) (dto.ReindexOutput, error)
}
