package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"studyroutine/internal/modules/schedule/domain"
	scheduleout "studyroutine/internal/modules/schedule/port/out"
	"studyroutine/internal/platform/clock"
	apperrors "studyroutine/internal/platform/errors"
	"studyroutine/internal/platform/logging"
)

// ScheduleService owns the in-memory table for the process lifetime.
// Every mutation runs load, apply and save under one lock, and memory is
// only replaced after the save succeeds.
type ScheduleService struct {
	mu        sync.Mutex
	plan      domain.Plan
	clock     clock.Clock
	location  *time.Location
	store     scheduleout.TableStore
	projector scheduleout.WeekIndexProjector
	logger    *log.Logger
	table     *domain.Table
}

func NewScheduleService(
	plan domain.Plan,
	clk clock.Clock,
	location *time.Location,
	store scheduleout.TableStore,
	projector scheduleout.WeekIndexProjector,
	logger *log.Logger,
) *ScheduleService {
	if location == nil {
		location = time.UTC
	}
	return &ScheduleService{
		plan:      plan,
		clock:     clk,
		location:  location,
		store:     store,
		projector: projector,
		logger:    logging.OrDiscard(logger),
	}
}

func (s *ScheduleService) Plan() domain.Plan {
	return domain.Plan{
		BaseDate:  s.plan.BaseDate,
		Subjects:  append([]string(nil), s.plan.Subjects...),
		WeekCount: s.plan.WeekCount,
	}
}

func (s *ScheduleService) Weeks(ctx context.Context) ([]domain.WeekRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	table, err := s.loadLocked(ctx)
	if err != nil {
		return nil, err
	}
	return table.Weeks(), nil
}

func (s *ScheduleService) Months(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	table, err := s.loadLocked(ctx)
	if err != nil {
		return nil, err
	}
	return table.Months(), nil
}

func (s *ScheduleService) InMonth(ctx context.Context, month string) ([]domain.WeekRecord, error) {
	if err := domain.ValidateMonth(month); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	table, err := s.loadLocked(ctx)
	if err != nil {
		return nil, err
	}
	return table.InMonth(month), nil
}

func (s *ScheduleService) Get(ctx context.Context, index int) (domain.WeekRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	table, err := s.loadLocked(ctx)
	if err != nil {
		return domain.WeekRecord{}, err
	}
	week, ok := table.Get(index)
	if !ok {
		return domain.WeekRecord{}, fmt.Errorf("week %d: %w", index, apperrors.ErrNotFound)
	}
	return week, nil
}

func (s *ScheduleService) Undone(ctx context.Context) ([]domain.WeekRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	table, err := s.loadLocked(ctx)
	if err != nil {
		return nil, err
	}
	return table.Undone(), nil
}

// Current returns the week in progress on the clock's civil date.
func (s *ScheduleService) Current(ctx context.Context) (domain.WeekRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	table, err := s.loadLocked(ctx)
	if err != nil {
		return domain.WeekRecord{}, err
	}
	week, ok := table.Current(clock.Today(s.clock, s.location))
	if !ok {
		return domain.WeekRecord{}, apperrors.ErrNoActiveWeek
	}
	return week, nil
}

// Apply edits one row and persists the whole table.
func (s *ScheduleService) Apply(ctx context.Context, index int, edit domain.WeekEdit) (domain.WeekRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	table, err := s.loadLocked(ctx)
	if err != nil {
		return domain.WeekRecord{}, err
	}
	if edit.Empty() {
		week, ok := table.Get(index)
		if !ok {
			return domain.WeekRecord{}, fmt.Errorf("week %d: %w", index, apperrors.ErrNotFound)
		}
		return week, nil
	}

	next := table.Clone()
	updated, err := next.Apply(index, edit, s.plan)
	if err != nil {
		return domain.WeekRecord{}, err
	}
	if err := s.store.Save(ctx, next.Weeks()); err != nil {
		s.logger.Error("save failed, edit discarded", "index", index, "err", err)
		return domain.WeekRecord{}, err
	}
	s.table = next
	s.logger.Debug("week saved", "index", index, "done", updated.Done)
	s.project(ctx, []domain.WeekRecord{updated})
	return updated, nil
}

// Reload drops the cached table so the next call reads the file again.
func (s *ScheduleService) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table = nil
	_, err := s.loadLocked(ctx)
	return err
}

// Reindex rebuilds the read model from the table file.
func (s *ScheduleService) Reindex(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	table, err := s.loadLocked(ctx)
	if err != nil {
		return 0, err
	}
	if s.projector == nil {
		return 0, nil
	}
	if err := s.projector.Reset(ctx); err != nil {
		return 0, err
	}
	if err := s.projector.UpsertWeeks(ctx, table.Weeks()); err != nil {
		return 0, err
	}
	return table.Len(), nil
}

func (s *ScheduleService) loadLocked(ctx context.Context) (*domain.Table, error) {
	if s.table != nil {
		return s.table, nil
	}
	generated, err := domain.Generate(s.plan)
	if err != nil {
		return nil, err
	}

	weeks, err := s.store.Load(ctx)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		table, err := domain.NewTable(generated)
		if err != nil {
			return nil, err
		}
		if err := s.store.Save(ctx, table.Weeks()); err != nil {
			return nil, err
		}
		s.logger.Info("generated study schedule", "weeks", table.Len(), "base", s.plan.BaseDate.Format(domain.DateLayout))
		s.table = table
		s.project(ctx, table.Weeks())
		return table, nil
	case err != nil:
		if errors.Is(err, apperrors.ErrDataCorruption) {
			s.logger.Error("table file is unreadable", "err", err)
		}
		return nil, err
	}

	table, err := domain.NewTable(weeks)
	if err != nil {
		s.logger.Error("table file is unreadable", "err", err)
		return nil, err
	}
	if added := table.Merge(generated); added > 0 {
		if err := s.store.Save(ctx, table.Weeks()); err != nil {
			return nil, err
		}
		s.logger.Info("merged missing weeks into table", "added", added)
		s.project(ctx, table.Weeks())
	}
	s.table = table
	return table, nil
}

// project mirrors rows into the read model. The CSV file stays the source
// of truth, so a failed projection is logged and repaired by reindex.
func (s *ScheduleService) project(ctx context.Context, weeks []domain.WeekRecord) {
	if s.projector == nil {
		return
	}
	if err := s.projector.UpsertWeeks(ctx, weeks); err != nil {
		s.logger.Warn("week index projection failed", "err", err)
	}
}
