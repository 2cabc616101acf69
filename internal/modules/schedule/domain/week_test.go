package domain_test

import (
	"errors"
	"testing"
	"time"

	"studyroutine/internal/modules/schedule/domain"
	apperrors "studyroutine/internal/platform/errors"
)

func TestGenerateIsDeterministic(t *testing.T) {
	t.Parallel()
	first, err := domain.Generate(domain.DefaultPlan())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	second, err := domain.Generate(domain.DefaultPlan())
	if err != nil {
		t.Fatalf("generate again: %v", err)
	}
	if len(first) != 156 || len(second) != 156 {
		t.Fatalf("expected 156 weeks, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("week %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestGenerateRotationAndDates(t *testing.T) {
	t.Parallel()
	plan := domain.DefaultPlan()
	weeks, err := domain.Generate(plan)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for i, w := range weeks {
		if w.Index != i {
			t.Fatalf("week %d has index %d", i, w.Index)
		}
		if want := plan.Subjects[i%len(plan.Subjects)]; w.Subject != want {
			t.Fatalf("week %d subject %s, want %s", i, w.Subject, want)
		}
		if want := plan.BaseDate.AddDate(0, 0, 7*i); !w.StartDate.Equal(want) {
			t.Fatalf("week %d starts %s, want %s", i, w.StartDate, want)
		}
		if w.Month != w.StartDate.Format("2006-01") {
			t.Fatalf("week %d month %s does not match start %s", i, w.Month, w.StartDate)
		}
		if w.Done || w.PlanText != "" || w.SampleQuestion != "" {
			t.Fatalf("week %d should start empty: %+v", i, w)
		}
	}
}

func TestGenerateScenarioFromBaseDate(t *testing.T) {
	t.Parallel()
	weeks, err := domain.Generate(domain.Plan{
		BaseDate:  time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
		Subjects:  []string{"민법", "경제학", "회계학", "부동산학", "감정평가관계법규"},
		WeekCount: 156,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if weeks[0].Subject != "민법" || weeks[5].Subject != "민법" || weeks[7].Subject != "회계학" {
		t.Fatalf("unexpected rotation: %s %s %s", weeks[0].Subject, weeks[5].Subject, weeks[7].Subject)
	}
	if weeks[0].Month != "2025-06" || weeks[0].WeekLabel != "1주차" {
		t.Fatalf("unexpected first week: %+v", weeks[0])
	}
	// 2025-06-24 is the 24th, the fourth 7-day block.
	if weeks[3].WeekLabel != "4주차" {
		t.Fatalf("expected 4주차 for %s, got %s", weeks[3].StartDate.Format("2006-01-02"), weeks[3].WeekLabel)
	}
	if weeks[4].Month != "2025-07" || weeks[4].WeekLabel != "1주차" {
		t.Fatalf("expected 2025-07 1주차, got %+v", weeks[4])
	}
}

func TestGenerateRejectsInvalidPlan(t *testing.T) {
	t.Parallel()
	cases := []domain.Plan{
		{BaseDate: domain.DefaultBaseDate, Subjects: domain.DefaultSubjects, WeekCount: 0},
		{BaseDate: domain.DefaultBaseDate, Subjects: nil, WeekCount: 10},
		{BaseDate: domain.DefaultBaseDate, Subjects: []string{"민법", " "}, WeekCount: 10},
		{Subjects: domain.DefaultSubjects, WeekCount: 10},
	}
	for i, plan := range cases {
		if _, err := domain.Generate(plan); !errors.Is(err, apperrors.ErrInvalidConfiguration) {
			t.Fatalf("case %d: expected invalid configuration, got %v", i, err)
		}
	}
}

func TestValidateMonth(t *testing.T) {
	t.Parallel()
	if err := domain.ValidateMonth("2025-06"); err != nil {
		t.Fatalf("valid month rejected: %v", err)
	}
	for _, bad := range []string{"", "2025-6", "2025/06", "2025-13"} {
		if err := domain.ValidateMonth(bad); !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("%q should be invalid, got %v", bad, err)
		}
	}
}
