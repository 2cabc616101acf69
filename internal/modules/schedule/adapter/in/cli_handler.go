package in

import (
	"context"

	scheduledto "studyroutine/internal/modules/schedule/dto"
	schedulein "studyroutine/internal/modules/schedule/port/in"
)

type CLIHandler struct {
	usecase schedulein.Usecase
}

func NewCLIHandler(usecase schedulein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Months(ctx context.Context) ([]string, error) {
	return h.usecase.ListMonths(ctx)
}

func (h CLIHandler) Month(ctx context.Context, month string) ([]scheduledto.WeekOutput, error) {
	return h.usecase.MonthWeeks(ctx, month)
}

func (h CLIHandler) Week(ctx context.Context, index int) (scheduledto.WeekOutput, error) {
	return h.usecase.GetWeek(ctx, index)
}

func (h CLIHandler) Edit(ctx context.Context, input scheduledto.UpdateWeekInput) (scheduledto.WeekOutput, error) {
	return h.usecase.UpdateWeek(ctx, input)
}

func (h CLIHandler) SetDone(ctx context.Context, index int, done bool) (scheduledto.WeekOutput, error) {
	return h.usecase.SetDone(ctx, index, done)
}

func (h CLIHandler) Reminders(ctx context.Context) ([]scheduledto.WeekOutput, error) {
	return h.usecase.Reminders(ctx)
}

func (h CLIHandler) Today(ctx context.Context) (scheduledto.WeekOutput, error) {
	return h.usecase.Today(ctx)
}

func (h CLIHandler) Reindex(ctx context.Context) (scheduledto.ReindexOutput, error) {
	return h.usecase.Reindex(ctx)
}
