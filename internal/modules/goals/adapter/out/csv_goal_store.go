package out

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/gocarina/gocsv"

	"studyroutine/internal/modules/goals/domain"
	goalsout "studyroutine/internal/modules/goals/port/out"
	"studyroutine/internal/platform/csvfile"
	apperrors "studyroutine/internal/platform/errors"
	"studyroutine/internal/platform/fsutil"
)

var goalColumns = []string{"월", "목표"}

type goalRow struct {
	Month string `csv:"월"`
	Text  string `csv:"목표"`
}

type CSVGoalStore struct {
	path string
}

func NewCSVGoalStore(path string) goalsout.GoalStore {
	return &CSVGoalStore{path: path}
}

func (s *CSVGoalStore) Load(_ context.Context) ([]domain.Goal, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("goals %s: %w", s.path, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read goals: %w", err)
	}
	data = csvfile.StripBOM(data)
	if err := csvfile.RequireHeader(data, goalColumns); err != nil {
		return nil, fmt.Errorf("goals %s: %w", s.path, err)
	}
	rows := []*goalRow{}
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		return nil, fmt.Errorf("%w: goals %s: %v", apperrors.ErrDataCorruption, s.path, err)
	}
	goals := make([]domain.Goal, 0, len(rows))
	seen := make(map[string]struct{}, len(rows))
	for line, row := range rows {
		goal, err := domain.NewGoal(row.Month, row.Text)
		if err != nil {
			return nil, fmt.Errorf("%w: goals %s row %d: month %q is not YYYY-MM", apperrors.ErrDataCorruption, s.path, line+2, row.Month)
		}
		if _, dup := seen[goal.Month]; dup {
			return nil, fmt.Errorf("%w: goals %s row %d: duplicate month %s", apperrors.ErrDataCorruption, s.path, line+2, goal.Month)
		}
		seen[goal.Month] = struct{}{}
		goals = append(goals, goal)
	}
	return goals, nil
}

func (s *CSVGoalStore) Save(_ context.Context, goals []domain.Goal) error {
	rows := make([]*goalRow, 0, len(goals))
	for _, g := range goals {
		rows = append(rows, &goalRow{Month: g.Month, Text: g.Text})
	}
	data, err := gocsv.MarshalBytes(&rows)
	if err != nil {
		return fmt.Errorf("encode goals: %w", err)
	}
	if err := fsutil.WriteFileAtomic(s.path, data, 0o644); err != nil {
		return fmt.Errorf("save goals: %w", err)
	}
	return nil
}
