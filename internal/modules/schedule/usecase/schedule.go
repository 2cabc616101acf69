package usecase

import (
	"context"

	"studyroutine/internal/modules/schedule/domain"
	scheduledto "studyroutine/internal/modules/schedule/dto"
	schedulein "studyroutine/internal/modules/schedule/port/in"
	"studyroutine/internal/modules/schedule/service"
)

type Interactor struct {
	svc *service.ScheduleService
}

func NewInteractor(svc *service.ScheduleService) schedulein.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) ListMonths(ctx context.Context) ([]string, error) {
	return i.svc.Months(ctx)
}

func (i *Interactor) MonthWeeks(ctx context.Context, month string) ([]scheduledto.WeekOutput, error) {
	weeks, err := i.svc.InMonth(ctx, month)
	if err != nil {
		return nil, err
	}
	return toOutputs(weeks), nil
}

func (i *Interactor) GetWeek(ctx context.Context, index int) (scheduledto.WeekOutput, error) {
	week, err := i.svc.Get(ctx, index)
	if err != nil {
		return scheduledto.WeekOutput{}, err
	}
	return toOutput(week), nil
}

func (i *Interactor) UpdateWeek(ctx context.Context, input scheduledto.UpdateWeekInput) (scheduledto.WeekOutput, error) {
	week, err := i.svc.Apply(ctx, input.Index, domain.WeekEdit{
		Subject:        input.Subject,
		PlanText:       input.PlanText,
		SampleQuestion: input.SampleQuestion,
		Done:           input.Done,
	})
	if err != nil {
		return scheduledto.WeekOutput{}, err
	}
	return toOutput(week), nil
}

func (i *Interactor) SetDone(ctx context.Context, index int, done bool) (scheduledto.WeekOutput, error) {
	return i.UpdateWeek(ctx, scheduledto.UpdateWeekInput{Index: index, Done: &done})
}

func (i *Interactor) Reminders(ctx context.Context) ([]scheduledto.WeekOutput, error) {
	weeks, err := i.svc.Undone(ctx)
	if err != nil {
		return nil, err
	}
	return toOutputs(weeks), nil
}

func (i *Interactor) ListWeeks(ctx context.Context) ([]scheduledto.WeekOutput, error) {
	weeks, err := i.svc.Weeks(ctx)
	if err != nil {
		return nil, err
	}
	return toOutputs(weeks), nil
}

func (i *Interactor) Subjects(context.Context) ([]string, error) {
	return i.svc.Plan().Subjects, nil
}

func (i *Interactor) Today(ctx context.Context) (scheduledto.WeekOutput, error) {
	week, err := i.svc.Current(ctx)
	if err != nil {
		return scheduledto.WeekOutput{}, err
	}
	return toOutput(week), nil
}

func (i *Interactor) Reload(ctx context.Context) error {
	return i.svc.Reload(ctx)
}

func (i *Interactor) Reindex(ctx context.Context) (scheduledto.ReindexOutput, error) {
	n, err := i.svc.Reindex(ctx)
	if err != nil {
		return scheduledto.ReindexOutput{}, err
	}
	return scheduledto.ReindexOutput{Weeks: n}, nil
}

func toOutputs(weeks []domain.WeekRecord) []scheduledto.WeekOutput {
	out := make([]scheduledto.WeekOutput, 0, len(weeks))
	for _, w := range weeks {
		out = append(out, toOutput(w))
	}
	return out
}

func toOutput(w domain.WeekRecord) scheduledto.WeekOutput {
	return scheduledto.WeekOutput{
		Month:          w.Month,
		Index:          w.Index,
		WeekLabel:      w.WeekLabel,
		Subject:        w.Subject,
		StartDate:      w.StartDate.Format(domain.DateLayout),
		PlanText:       w.PlanText,
		SampleQuestion: w.SampleQuestion,
		Done:           w.Done,
	}
}
