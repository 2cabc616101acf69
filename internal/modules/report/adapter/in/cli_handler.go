package in

import (
	"context"

	reportdto "studyroutine/internal/modules/report/dto"
	reportin "studyroutine/internal/modules/report/port/in"
)

type CLIHandler struct {
	usecase reportin.Usecase
}

func NewCLIHandler(usecase reportin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) MonthRate(ctx context.Context, month string) (reportdto.RateOutput, error) {
	return h.usecase.MonthCompletion(ctx, month)
}

func (h CLIHandler) Summary(ctx context.Context) (reportdto.SummaryOutput, error) {
	return h.usecase.Summary(ctx)
}

func (h CLIHandler) Export(ctx context.Context, full bool, dir string) (reportdto.ExportOutput, error) {
	return h.usecase.Export(ctx, reportdto.ExportInput{Full: full, Dir: dir})
}

func (h CLIHandler) Note(ctx context.Context, month, dir string) (reportdto.MonthNoteOutput, error) {
	return h.usecase.MonthNote(ctx, reportdto.MonthNoteInput{Month: month, Dir: dir})
}
