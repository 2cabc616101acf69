package out

import (
	"fmt"

	"github.com/gocarina/gocsv"

	"studyroutine/internal/modules/report/domain"
	reportout "studyroutine/internal/modules/report/port/out"
	"studyroutine/internal/platform/csvfile"
)

type exportRow struct {
	Month          string       `csv:"월"`
	WeekLabel      string       `csv:"주차"`
	Subject        string       `csv:"과목"`
	PlanText       string       `csv:"세부 계획"`
	SampleQuestion string       `csv:"Gemini 질문 예시"`
	Done           csvfile.Bool `csv:"학습 완료"`
}

type fullExportRow struct {
	Month          string       `csv:"월"`
	Index          int          `csv:"고유주차"`
	WeekLabel      string       `csv:"주차"`
	Subject        string       `csv:"과목"`
	StartDate      string       `csv:"시작일"`
	PlanText       string       `csv:"세부 계획"`
	SampleQuestion string       `csv:"Gemini 질문 예시"`
	Done           csvfile.Bool `csv:"학습 완료"`
}

type CSVTableEncoder struct{}

func NewCSVTableEncoder() reportout.TableEncoder {
	return CSVTableEncoder{}
}

func (CSVTableEncoder) Encode(weeks []domain.Week, full bool) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if full {
		rows := make([]*fullExportRow, 0, len(weeks))
		for _, w := range weeks {
			rows = append(rows, &fullExportRow{
				Month:          w.Month,
				Index:          w.Index,
				WeekLabel:      w.WeekLabel,
				Subject:        w.Subject,
				StartDate:      w.StartDate,
				PlanText:       w.PlanText,
				SampleQuestion: w.SampleQuestion,
				Done:           csvfile.Bool(w.Done),
			})
		}
		data, err = gocsv.MarshalBytes(&rows)
	} else {
		rows := make([]*exportRow, 0, len(weeks))
		for _, w := range weeks {
			rows = append(rows, &exportRow{
				Month:          w.Month,
				WeekLabel:      w.WeekLabel,
				Subject:        w.Subject,
				PlanText:       w.PlanText,
				SampleQuestion: w.SampleQuestion,
				Done:           csvfile.Bool(w.Done),
			})
		}
		data, err = gocsv.MarshalBytes(&rows)
	}
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}
	return data, nil
}
