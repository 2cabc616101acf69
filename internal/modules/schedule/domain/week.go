package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "studyroutine/internal/platform/errors"
)

const (
	DateLayout       = "2006-01-02"
	MonthLayout      = "2006-01"
	DefaultWeekCount = 156
	daysPerWeek      = 7
)

// DefaultSubjects is the five-subject rotation of the first exam round.
var DefaultSubjects = []string{"민법", "경제학", "회계학", "부동산학", "감정평가관계법규"}

// DefaultBaseDate is the first study week.
var DefaultBaseDate = time.Date(2025, time.June, 3, 0, 0, 0, 0, time.UTC)

// WeekRecord is one row of the study schedule. Index is its identity and
// never changes once the row exists.
type WeekRecord struct {
	Month          string
	Index          int
	WeekLabel      string
	Subject        string
	StartDate      time.Time
	PlanText       string
	SampleQuestion string
	Done           bool
}

// Plan holds the inputs of the schedule generator.
type Plan struct {
	BaseDate  time.Time
	Subjects  []string
	WeekCount int
}

func DefaultPlan() Plan {
	return Plan{
		BaseDate:  DefaultBaseDate,
		Subjects:  append([]string(nil), DefaultSubjects...),
		WeekCount: DefaultWeekCount,
	}
}

func (p Plan) Validate() error {
	if p.WeekCount <= 0 {
		return fmt.Errorf("%w: week count must be positive, got %d", apperrors.ErrInvalidConfiguration, p.WeekCount)
	}
	if len(p.Subjects) == 0 {
		return fmt.Errorf("%w: subject list is empty", apperrors.ErrInvalidConfiguration)
	}
	for i, subject := range p.Subjects {
		if strings.TrimSpace(subject) == "" {
			return fmt.Errorf("%w: subject %d is blank", apperrors.ErrInvalidConfiguration, i)
		}
	}
	if p.BaseDate.IsZero() {
		return fmt.Errorf("%w: base date is required", apperrors.ErrInvalidConfiguration)
	}
	return nil
}

// HasSubject reports whether subject is one of the plan's options.
func (p Plan) HasSubject(subject string) bool {
	for _, s := range p.Subjects {
		if s == subject {
			return true
		}
	}
	return false
}

// Generate builds the canonical schedule: week i starts 7*i days after the
// base date and studies Subjects[i mod len(Subjects)].
func Generate(p Plan) ([]WeekRecord, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	base := civil(p.BaseDate)
	weeks := make([]WeekRecord, 0, p.WeekCount)
	for i := 0; i < p.WeekCount; i++ {
		weeks = append(weeks, NewWeek(p, i, base.AddDate(0, 0, daysPerWeek*i)))
	}
	return weeks, nil
}

// NewWeek builds the untouched record for index i.
func NewWeek(p Plan, i int, start time.Time) WeekRecord {
	return WeekRecord{
		Month:     MonthKey(start),
		Index:     i,
		WeekLabel: WeekLabel(start),
		Subject:   p.Subjects[i%len(p.Subjects)],
		StartDate: start,
	}
}

// MonthKey formats the "YYYY-MM" key of t.
func MonthKey(t time.Time) string {
	return t.Format(MonthLayout)
}

// WeekLabel returns "N주차" where N counts 7-day blocks from the 1st.
func WeekLabel(t time.Time) string {
	return fmt.Sprintf("%d주차", (t.Day()-1)/daysPerWeek+1)
}

// ValidateMonth checks a "YYYY-MM" key.
func ValidateMonth(month string) error {
	if _, err := time.Parse(MonthLayout, month); err != nil {
		return fmt.Errorf("%w: month must be YYYY-MM, got %q", apperrors.ErrInvalidInput, month)
	}
	return nil
}

func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
