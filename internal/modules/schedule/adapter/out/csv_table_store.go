package out

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/gocarina/gocsv"

	"studyroutine/internal/modules/schedule/domain"
	scheduleout "studyroutine/internal/modules/schedule/port/out"
	"studyroutine/internal/platform/csvfile"
	apperrors "studyroutine/internal/platform/errors"
	"studyroutine/internal/platform/fsutil"
)

// TableColumns is the on-disk column order of the week table.
var TableColumns = []string{"월", "고유주차", "주차", "과목", "시작일", "세부 계획", "Gemini 질문 예시", "학습 완료"}

type tableRow struct {
	Month          string       `csv:"월"`
	Index          csvfile.Int  `csv:"고유주차"`
	WeekLabel      string       `csv:"주차"`
	Subject        string       `csv:"과목"`
	StartDate      csvfile.Date `csv:"시작일"`
	PlanText       string       `csv:"세부 계획"`
	SampleQuestion string       `csv:"Gemini 질문 예시"`
	Done           csvfile.Bool `csv:"학습 완료"`
}

type CSVTableStore struct {
	path string
}

func NewCSVTableStore(path string) scheduleout.TableStore {
	return &CSVTableStore{path: path}
}

func (s *CSVTableStore) Load(_ context.Context) ([]domain.WeekRecord, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("table %s: %w", s.path, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read table: %w", err)
	}
	data = csvfile.StripBOM(data)
	if err := csvfile.RequireHeader(data, TableColumns); err != nil {
		return nil, fmt.Errorf("table %s: %w", s.path, err)
	}

	rows := []*tableRow{}
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		return nil, fmt.Errorf("%w: table %s: %v", apperrors.ErrDataCorruption, s.path, err)
	}

	weeks := make([]domain.WeekRecord, 0, len(rows))
	seen := make(map[int]struct{}, len(rows))
	for line, row := range rows {
		index := int(row.Index)
		if _, dup := seen[index]; dup {
			return nil, fmt.Errorf("%w: table %s row %d: duplicate index %d", apperrors.ErrDataCorruption, s.path, line+2, index)
		}
		seen[index] = struct{}{}
		if err := domain.ValidateMonth(row.Month); err != nil {
			return nil, fmt.Errorf("%w: table %s row %d: month %q is not YYYY-MM", apperrors.ErrDataCorruption, s.path, line+2, row.Month)
		}
		weeks = append(weeks, domain.WeekRecord{
			Month:          row.Month,
			Index:          index,
			WeekLabel:      row.WeekLabel,
			Subject:        row.Subject,
			StartDate:      row.StartDate.Time,
			PlanText:       row.PlanText,
			SampleQuestion: row.SampleQuestion,
			Done:           bool(row.Done),
		})
	}
	return weeks, nil
}

func (s *CSVTableStore) Save(_ context.Context, weeks []domain.WeekRecord) error {
	rows := make([]*tableRow, 0, len(weeks))
	for _, w := range weeks {
		rows = append(rows, &tableRow{
			Month:          w.Month,
			Index:          csvfile.Int(w.Index),
			WeekLabel:      w.WeekLabel,
			Subject:        w.Subject,
			StartDate:      csvfile.Date{Time: w.StartDate},
			PlanText:       w.PlanText,
			SampleQuestion: w.SampleQuestion,
			Done:           csvfile.Bool(w.Done),
		})
	}
	data, err := gocsv.MarshalBytes(&rows)
	if err != nil {
		return fmt.Errorf("encode table: %w", err)
	}
	if err := fsutil.WriteFileAtomic(s.path, data, 0o644); err != nil {
		return fmt.Errorf("save table: %w", err)
	}
	return nil
}
