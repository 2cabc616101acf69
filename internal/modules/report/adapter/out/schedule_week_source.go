package out

import (
	"context"

	"studyroutine/internal/modules/report/domain"
	reportout "studyroutine/internal/modules/report/port/out"
	schedulein "studyroutine/internal/modules/schedule/port/in"
)

type ScheduleWeekSource struct {
	schedule schedulein.Usecase
}

func NewScheduleWeekSource(schedule schedulein.Usecase) reportout.WeekSource {
	return &ScheduleWeekSource{schedule: schedule}
}

func (a *ScheduleWeekSource) Weeks(ctx context.Context) ([]domain.Week, error) {
	weeks, err := a.schedule.ListWeeks(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Week, 0, len(weeks))
	for _, w := range weeks {
		out = append(out, domain.Week{
			Month:          w.Month,
			Index:          w.Index,
			WeekLabel:      w.WeekLabel,
			Subject:        w.Subject,
			StartDate:      w.StartDate,
			PlanText:       w.PlanText,
			SampleQuestion: w.SampleQuestion,
			Done:           w.Done,
		})
	}
	return out, nil
}
