package usecase_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	reportout "studyroutine/internal/modules/report/adapter/out"
	"studyroutine/internal/modules/report/domain"
	reportdto "studyroutine/internal/modules/report/dto"
	reportin "studyroutine/internal/modules/report/port/in"
	"studyroutine/internal/modules/report/service"
	"studyroutine/internal/modules/report/usecase"
	"studyroutine/internal/platform/clock"
	apperrors "studyroutine/internal/platform/errors"
)

type fakeWeeks struct {
	weeks []domain.Week
	err   error
}

func (f fakeWeeks) Weeks(context.Context) ([]domain.Week, error) { return f.weeks, f.err }

type fakeGoals map[string]string

func (f fakeGoals) Goal(_ context.Context, month string) (string, error) { return f[month], nil }

func fixture() []domain.Week {
	return []domain.Week{
		{Month: "2025-06", Index: 0, WeekLabel: "1주차", Subject: "민법", StartDate: "2025-06-03", PlanText: "총칙", Done: true},
		{Month: "2025-06", Index: 1, WeekLabel: "2주차", Subject: "경제학", StartDate: "2025-06-10", SampleQuestion: "탄력성?"},
		{Month: "2025-06", Index: 2, WeekLabel: "3주차", Subject: "회계학", StartDate: "2025-06-17", Done: true},
		{Month: "2025-06", Index: 3, WeekLabel: "4주차", Subject: "부동산학", StartDate: "2025-06-24"},
		{Month: "2025-07", Index: 4, WeekLabel: "1주차", Subject: "감정평가관계법규", StartDate: "2025-07-01"},
	}
}

func newUsecase(weeks []domain.Week, goals fakeGoals) reportin.Usecase {
	// 2025-06-30 20:00 UTC is already July 1st in Seoul.
	now := time.Date(2025, 6, 30, 20, 0, 0, 0, time.UTC)
	svc := service.NewReportService(
		fakeWeeks{weeks: weeks},
		goals,
		reportout.NewCSVTableEncoder(),
		reportout.NewLocalFileSink(),
		service.Options{Clock: clock.Fixed{At: now}, Location: time.FixedZone("KST", 9*60*60)},
	)
	return usecase.NewInteractor(svc)
}

func TestCompletionAndProgress(t *testing.T) {
	t.Parallel()
	uc := newUsecase(fixture(), nil)
	ctx := context.Background()

	june, err := uc.MonthCompletion(ctx, "2025-06")
	if err != nil {
		t.Fatalf("month completion: %v", err)
	}
	if june.Percent != 50 || june.Done != 2 || june.Total != 4 {
		t.Fatalf("unexpected june rate: %+v", june)
	}
	empty, err := uc.MonthCompletion(ctx, "2026-01")
	if err != nil || empty.Percent != 0 {
		t.Fatalf("empty month should be 0%%, got %+v err=%v", empty, err)
	}
	if _, err := uc.MonthCompletion(ctx, "June"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid month, got %v", err)
	}

	subjects, err := uc.SubjectProgress(ctx)
	if err != nil {
		t.Fatalf("subject progress: %v", err)
	}
	if subjects[0].Percent != 0 || subjects[len(subjects)-1].Percent != 100 {
		t.Fatalf("subjects should be ascending: %+v", subjects)
	}
	summary, err := uc.Summary(ctx)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.Overall.Percent != 40 || len(summary.Months) != 2 || len(summary.Subjects) != 5 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestExportDropsIndexAndDateUnlessFull(t *testing.T) {
	t.Parallel()
	uc := newUsecase(fixture(), nil)
	dir := t.TempDir()

	out, err := uc.Export(context.Background(), reportdto.ExportInput{Dir: dir})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if out.FileName != "감정평가사_학습루틴_2025-07-01.csv" {
		t.Fatalf("export name should use the local date, got %s", out.FileName)
	}
	if out.Rows != 5 || out.Path != filepath.Join(dir, out.FileName) {
		t.Fatalf("unexpected export output: %+v", out)
	}
	lines := strings.Split(string(out.Content), "\n")
	if lines[0] != "월,주차,과목,세부 계획,Gemini 질문 예시,학습 완료" {
		t.Fatalf("unexpected default header %q", lines[0])
	}
	if lines[1] != "2025-06,1주차,민법,총칙,,True" {
		t.Fatalf("unexpected first row %q", lines[1])
	}
	written, err := os.ReadFile(out.Path)
	if err != nil || string(written) != string(out.Content) {
		t.Fatalf("written file should match content, err=%v", err)
	}

	full, err := uc.Export(context.Background(), reportdto.ExportInput{Full: true})
	if err != nil {
		t.Fatalf("full export: %v", err)
	}
	if full.Path != "" {
		t.Fatalf("export without dir must not write a file")
	}
	if !strings.HasPrefix(string(full.Content), "월,고유주차,주차,과목,시작일,세부 계획,Gemini 질문 예시,학습 완료\n2025-06,0,1주차,민법,2025-06-03,") {
		t.Fatalf("unexpected full export: %s", full.Content)
	}
}

func TestMonthNoteKeepsHandwrittenText(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	ctx := context.Background()
	uc := newUsecase(fixture(), fakeGoals{"2025-06": "민법 총칙 끝내기"})

	first, err := uc.MonthNote(ctx, reportdto.MonthNoteInput{Month: "2025-06", Dir: dir})
	if err != nil {
		t.Fatalf("month note: %v", err)
	}
	for _, want := range []string{"goal: 민법 총칙 끝내기", "completion: 50", "- [x] **1주차** 민법 (2025-06-03)", "  - 질문: 탄력성?"} {
		if !strings.Contains(first.Content, want) {
			t.Fatalf("note missing %q:\n%s", want, first.Content)
		}
	}

	edited := strings.Replace(first.Content, "# 2025-06 학습 리뷰\n", "# 2025-06 학습 리뷰\n\n경제학이 밀렸다.\n", 1)
	if err := os.WriteFile(first.Path, []byte(edited), 0o644); err != nil {
		t.Fatalf("edit note: %v", err)
	}

	weeks := fixture()
	weeks[1].Done = true
	second, err := newUsecase(weeks, fakeGoals{"2025-06": "민법 총칙 끝내기"}).MonthNote(ctx, reportdto.MonthNoteInput{Month: "2025-06", Dir: dir})
	if err != nil {
		t.Fatalf("second note: %v", err)
	}
	if !strings.Contains(second.Content, "경제학이 밀렸다.") {
		t.Fatalf("handwritten text lost:\n%s", second.Content)
	}
	if !strings.Contains(second.Content, "completion: 75") || !strings.Contains(second.Content, "- [x] **2주차** 경제학") {
		t.Fatalf("generated parts not refreshed:\n%s", second.Content)
	}

	if _, err := uc.MonthNote(ctx, reportdto.MonthNoteInput{Month: "2025/06"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid month, got %v", err)
	}
}

func TestSourceErrorsPropagate(t *testing.T) {
	t.Parallel()
	svc := service.NewReportService(fakeWeeks{err: apperrors.ErrDataCorruption}, nil, reportout.NewCSVTableEncoder(), reportout.NewLocalFileSink(), service.Options{})
	if _, err := usecase.NewInteractor(svc).Summary(context.Background()); !errors.Is(err, apperrors.ErrDataCorruption) {
		t.Fatalf("expected corruption to propagate, got %v", err)
	}
}
