package usecase_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	scheduleout "studyroutine/internal/modules/schedule/adapter/out"
	"studyroutine/internal/modules/schedule/domain"
	scheduledto "studyroutine/internal/modules/schedule/dto"
	schedulein "studyroutine/internal/modules/schedule/port/in"
	"studyroutine/internal/modules/schedule/service"
	"studyroutine/internal/modules/schedule/usecase"
	"studyroutine/internal/platform/clock"
	apperrors "studyroutine/internal/platform/errors"
)

var seoul = mustZone("Asia/Seoul")

func mustZone(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.FixedZone("KST", 9*60*60)
	}
	return loc
}

func newUsecase(t *testing.T, path string, now time.Time) schedulein.Usecase {
	t.Helper()
	store := scheduleout.NewCSVTableStore(path)
	svc := service.NewScheduleService(domain.DefaultPlan(), clock.Fixed{At: now}, seoul, store, nil, nil)
	return usecase.NewInteractor(svc)
}

type memoryStore struct {
	weeks   []domain.WeekRecord
	saves   int
	failing bool
	missing bool
}

func (m *memoryStore) Load(context.Context) ([]domain.WeekRecord, error) {
	if m.missing {
		return nil, apperrors.ErrNotFound
	}
	return append([]domain.WeekRecord(nil), m.weeks...), nil
}

func (m *memoryStore) Save(_ context.Context, weeks []domain.WeekRecord) error {
	if m.failing {
		return errors.New("disk full")
	}
	m.saves++
	m.missing = false
	m.weeks = append([]domain.WeekRecord(nil), weeks...)
	return nil
}

func TestFirstRunGeneratesAndPersists(t *testing.T) {
	t.Parallel()
	store := &memoryStore{missing: true}
	svc := service.NewScheduleService(domain.DefaultPlan(), clock.Fixed{At: time.Now()}, seoul, store, nil, nil)
	uc := usecase.NewInteractor(svc)

	weeks, err := uc.ListWeeks(context.Background())
	if err != nil {
		t.Fatalf("list weeks: %v", err)
	}
	if len(weeks) != 156 || store.saves != 1 || len(store.weeks) != 156 {
		t.Fatalf("expected generated table saved once, got %d rows, %d saves", len(weeks), store.saves)
	}
	if weeks[7].Subject != "회계학" || weeks[0].StartDate != "2025-06-03" {
		t.Fatalf("unexpected generated rows: %+v %+v", weeks[0], weeks[7])
	}
}

func TestLoadMergesMissingWeeksAndKeepsFileRows(t *testing.T) {
	t.Parallel()
	generated, err := domain.Generate(domain.DefaultPlan())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	short := append([]domain.WeekRecord(nil), generated[:52]...)
	short[0].Done = true
	short[0].Subject = "회계학"
	store := &memoryStore{weeks: short}
	uc := usecase.NewInteractor(service.NewScheduleService(domain.DefaultPlan(), clock.Fixed{At: time.Now()}, seoul, store, nil, nil))

	week, err := uc.GetWeek(context.Background(), 0)
	if err != nil {
		t.Fatalf("get week: %v", err)
	}
	if !week.Done || week.Subject != "회계학" {
		t.Fatalf("file row should win over generated row: %+v", week)
	}
	if _, err := uc.GetWeek(context.Background(), 155); err != nil {
		t.Fatalf("merged week should exist: %v", err)
	}
	if store.saves != 1 || len(store.weeks) != 156 {
		t.Fatalf("merge should save once with the full table, got %d saves and %d rows", store.saves, len(store.weeks))
	}

	full := &memoryStore{weeks: generated}
	uc = usecase.NewInteractor(service.NewScheduleService(domain.DefaultPlan(), clock.Fixed{At: time.Now()}, seoul, full, nil, nil))
	if _, err := uc.ListWeeks(context.Background()); err != nil {
		t.Fatalf("list weeks: %v", err)
	}
	if full.saves != 0 {
		t.Fatalf("a complete file should not be rewritten on load")
	}
}

func TestFailedSaveRollsBackMemory(t *testing.T) {
	t.Parallel()
	generated, err := domain.Generate(domain.DefaultPlan())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	store := &memoryStore{weeks: generated}
	uc := usecase.NewInteractor(service.NewScheduleService(domain.DefaultPlan(), clock.Fixed{At: time.Now()}, seoul, store, nil, nil))

	store.failing = true
	if _, err := uc.SetDone(context.Background(), 4, true); err == nil {
		t.Fatalf("expected save failure")
	}
	week, err := uc.GetWeek(context.Background(), 4)
	if err != nil {
		t.Fatalf("get week: %v", err)
	}
	if week.Done {
		t.Fatalf("memory must not keep an edit that failed to save")
	}

	store.failing = false
	if _, err := uc.SetDone(context.Background(), 4, true); err != nil {
		t.Fatalf("set done: %v", err)
	}
	if !store.weeks[4].Done {
		t.Fatalf("saved table should carry the edit")
	}
}

func TestUpdateWeekValidatesInput(t *testing.T) {
	t.Parallel()
	uc := newUsecase(t, filepath.Join(t.TempDir(), "table.csv"), time.Now())
	ctx := context.Background()

	unknown := "물리학"
	if _, err := uc.UpdateWeek(ctx, scheduledto.UpdateWeekInput{Index: 1, Subject: &unknown}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for unknown subject, got %v", err)
	}
	if _, err := uc.GetWeek(ctx, 1000); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := uc.MonthWeeks(ctx, "2025/06"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid month, got %v", err)
	}
	empty, err := uc.MonthWeeks(ctx, "2031-01")
	if err != nil || len(empty) != 0 {
		t.Fatalf("month outside the schedule should be empty, got %d rows err=%v", len(empty), err)
	}

	subject, plan, question := "부동산학", "감정평가 3방식", "원가법의 한계는?"
	updated, err := uc.UpdateWeek(ctx, scheduledto.UpdateWeekInput{Index: 1, Subject: &subject, PlanText: &plan, SampleQuestion: &question})
	if err != nil {
		t.Fatalf("update week: %v", err)
	}
	if updated.Subject != subject || updated.PlanText != plan || updated.SampleQuestion != question || updated.Done {
		t.Fatalf("unexpected update result: %+v", updated)
	}
}

func TestReminderToggleSurvivesReload(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "study_tracker_data.csv")
	ctx := context.Background()
	uc := newUsecase(t, path, time.Now())

	reminders, err := uc.Reminders(ctx)
	if err != nil {
		t.Fatalf("reminders: %v", err)
	}
	if len(reminders) != 156 {
		t.Fatalf("every week should be a reminder at first, got %d", len(reminders))
	}
	target := reminders[10]
	if _, err := uc.SetDone(ctx, target.Index, true); err != nil {
		t.Fatalf("set done: %v", err)
	}

	reloaded := newUsecase(t, path, time.Now())
	reminders, err = reloaded.Reminders(ctx)
	if err != nil {
		t.Fatalf("reminders after reload: %v", err)
	}
	if len(reminders) != 155 {
		t.Fatalf("expected 155 reminders after reload, got %d", len(reminders))
	}
	for _, r := range reminders {
		if r.Index == target.Index {
			t.Fatalf("week %d should no longer be a reminder", target.Index)
		}
	}
	for i := 1; i < len(reminders); i++ {
		if reminders[i-1].StartDate > reminders[i].StartDate {
			t.Fatalf("reminders must be ordered by start date")
		}
	}
	week, err := reloaded.GetWeek(ctx, target.Index)
	if err != nil || !week.Done {
		t.Fatalf("done flag lost across reload: %+v err=%v", week, err)
	}
}

func TestTodayUsesConfiguredZone(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "table.csv")
	ctx := context.Background()

	// 2025-06-09 16:00 UTC is already 2025-06-10 in Seoul.
	week, err := newUsecase(t, path, time.Date(2025, 6, 9, 16, 0, 0, 0, time.UTC)).Today(ctx)
	if err != nil {
		t.Fatalf("today: %v", err)
	}
	if week.Index != 1 || week.Subject != "경제학" {
		t.Fatalf("expected week 1 in Seoul, got %+v", week)
	}

	if _, err := newUsecase(t, path, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)).Today(ctx); !errors.Is(err, apperrors.ErrNoActiveWeek) {
		t.Fatalf("expected no active week before the schedule, got %v", err)
	}
}

func TestMonthsAndSubjects(t *testing.T) {
	t.Parallel()
	uc := newUsecase(t, filepath.Join(t.TempDir(), "table.csv"), time.Now())
	months, err := uc.ListMonths(context.Background())
	if err != nil {
		t.Fatalf("months: %v", err)
	}
	if months[0] != "2025-06" || months[len(months)-1] != "2028-05" {
		t.Fatalf("unexpected month range %s..%s", months[0], months[len(months)-1])
	}
	subjects, err := uc.Subjects(context.Background())
	if err != nil || len(subjects) != 5 {
		t.Fatalf("expected five subjects, got %v err=%v", subjects, err)
	}
}
