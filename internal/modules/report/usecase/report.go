package usecase

import (
	"context"
	"fmt"
	"time"

	"studyroutine/internal/modules/report/domain"
	reportdto "studyroutine/internal/modules/report/dto"
	reportin "studyroutine/internal/modules/report/port/in"
	"studyroutine/internal/modules/report/service"
	apperrors "studyroutine/internal/platform/errors"
)

type Interactor struct {
	svc *service.ReportService
}

func NewInteractor(svc *service.ReportService) reportin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) MonthCompletion(ctx context.Context, month string) (reportdto.RateOutput, error) {
	if _, err := time.Parse("2006-01", month); err != nil {
		return reportdto.RateOutput{}, fmt.Errorf("%w: month must be YYYY-MM, got %q", apperrors.ErrInvalidInput, month)
	}
	weeks, err := i.svc.Weeks(ctx)
	if err != nil {
		return reportdto.RateOutput{}, err
	}
	return toRate(domain.CompletionRate(weeks, month)), nil
}

func (i *Interactor) SubjectProgress(ctx context.Context) ([]reportdto.RateOutput, error) {
	weeks, err := i.svc.Weeks(ctx)
	if err != nil {
		return nil, err
	}
	return toRates(domain.SubjectRates(weeks)), nil
}

func (i *Interactor) MonthProgress(ctx context.Context) ([]reportdto.RateOutput, error) {
	weeks, err := i.svc.Weeks(ctx)
	if err != nil {
		return nil, err
	}
	return toRates(domain.MonthRates(weeks)), nil
}

func (i *Interactor) Summary(ctx context.Context) (reportdto.SummaryOutput, error) {
	weeks, err := i.svc.Weeks(ctx)
	if err != nil {
		return reportdto.SummaryOutput{}, err
	}
	return reportdto.SummaryOutput{
		Overall:  toRate(domain.Overall(weeks)),
		Months:   toRates(domain.MonthRates(weeks)),
		Subjects: toRates(domain.SubjectRates(weeks)),
	}, nil
}

func (i *Interactor) Export(ctx context.Context, input reportdto.ExportInput) (reportdto.ExportOutput, error) {
	name, path, rows, data, err := i.svc.Export(ctx, input.Full, input.Dir)
	if err != nil {
		return reportdto.ExportOutput{}, err
	}
	return reportdto.ExportOutput{FileName: name, Path: path, Rows: rows, Content: data}, nil
}

func (i *Interactor) MonthNote(ctx context.Context, input reportdto.MonthNoteInput) (reportdto.MonthNoteOutput, error) {
	path, content, err := i.svc.MonthNote(ctx, input.Month, input.Dir)
	if err != nil {
		return reportdto.MonthNoteOutput{}, err
	}
	return reportdto.MonthNoteOutput{Month: input.Month, Path: path, Content: content}, nil
}

func toRates(rates []domain.Rate) []reportdto.RateOutput {
	out := make([]reportdto.RateOutput, 0, len(rates))
	for _, r := range rates {
		out = append(out, toRate(r))
	}
	return out
}

func toRate(r domain.Rate) reportdto.RateOutput {
	return reportdto.RateOutput{Key: r.Key, Done: r.Done, Total: r.Total, Percent: r.Percent()}
}
