package service

import (
	"context"
	"errors"
	"sync"

	"github.com/charmbracelet/log"

	"studyroutine/internal/modules/goals/domain"
	goalsout "studyroutine/internal/modules/goals/port/out"
	apperrors "studyroutine/internal/platform/errors"
	"studyroutine/internal/platform/logging"
)

type GoalService struct {
	mu     sync.Mutex
	store  goalsout.GoalStore
	logger *log.Logger
	book   domain.Book
}

func NewGoalService(store goalsout.GoalStore, logger *log.Logger) *GoalService {
	return &GoalService{store: store, logger: logging.OrDiscard(logger)}
}

func (s *GoalService) Get(ctx context.Context, month string) (domain.Goal, error) {
	if err := domain.ValidateMonth(month); err != nil {
		return domain.Goal{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	book, err := s.loadLocked(ctx)
	if err != nil {
		return domain.Goal{}, err
	}
	return domain.Goal{Month: month, Text: book[month]}, nil
}

func (s *GoalService) Set(ctx context.Context, month, text string) (domain.Goal, error) {
	goal, err := domain.NewGoal(month, text)
	if err != nil {
		return domain.Goal{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	book, err := s.loadLocked(ctx)
	if err != nil {
		return domain.Goal{}, err
	}
	next := book.Clone()
	next[goal.Month] = goal.Text
	if err := s.store.Save(ctx, next.Goals()); err != nil {
		s.logger.Error("save goals failed", "month", month, "err", err)
		return domain.Goal{}, err
	}
	s.book = next
	s.logger.Debug("goal saved", "month", month)
	return goal, nil
}

func (s *GoalService) List(ctx context.Context) ([]domain.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	book, err := s.loadLocked(ctx)
	if err != nil {
		return nil, err
	}
	return book.Goals(), nil
}

func (s *GoalService) loadLocked(ctx context.Context) (domain.Book, error) {
	if s.book != nil {
		return s.book, nil
	}
	goals, err := s.store.Load(ctx)
	if errors.Is(err, apperrors.ErrNotFound) {
		s.book = domain.Book{}
		return s.book, nil
	}
	if err != nil {
		if errors.Is(err, apperrors.ErrDataCorruption) {
			s.logger.Error("goals file is unreadable", "err", err)
		}
		return nil, err
	}
	s.book = domain.NewBook(goals)
	return s.book, nil
}
