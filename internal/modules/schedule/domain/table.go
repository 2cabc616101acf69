package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"

	apperrors "studyroutine/internal/platform/errors"
)

// WeekEdit is a partial update. Nil fields are left untouched.
type WeekEdit struct {
	Subject        *string
	PlanText       *string
	SampleQuestion *string
	Done           *bool
}

func (e WeekEdit) Empty() bool {
	return e.Subject == nil && e.PlanText == nil && e.SampleQuestion == nil && e.Done == nil
}

// Table is the in-memory schedule. Rows are addressed by Index only, so
// filtering and sorting never change which row an edit lands on.
type Table struct {
	weeks []WeekRecord
	pos   map[int]int
}

// NewTable validates identity rules and orders rows by Index.
func NewTable(weeks []WeekRecord) (*Table, error) {
	sorted := append([]WeekRecord(nil), weeks...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Index < sorted[j].Index })
	pos := make(map[int]int, len(sorted))
	for i, w := range sorted {
		if w.Index < 0 {
			return nil, fmt.Errorf("%w: negative week index %d", apperrors.ErrDataCorruption, w.Index)
		}
		if _, dup := pos[w.Index]; dup {
			return nil, fmt.Errorf("%w: duplicate week index %d", apperrors.ErrDataCorruption, w.Index)
		}
		pos[w.Index] = i
	}
	return &Table{weeks: sorted, pos: pos}, nil
}

func (t *Table) Len() int { return len(t.weeks) }

// Weeks returns a copy of every row ordered by Index.
func (t *Table) Weeks() []WeekRecord {
	return append([]WeekRecord(nil), t.weeks...)
}

func (t *Table) Get(index int) (WeekRecord, bool) {
	i, ok := t.pos[index]
	if !ok {
		return WeekRecord{}, false
	}
	return t.weeks[i], true
}

// Clone returns an independent copy.
func (t *Table) Clone() *Table {
	pos := make(map[int]int, len(t.pos))
	for k, v := range t.pos {
		pos[k] = v
	}
	return &Table{weeks: t.Weeks(), pos: pos}
}

// Apply edits the row with the given index. Subjects outside plan are rejected.
func (t *Table) Apply(index int, edit WeekEdit, plan Plan) (WeekRecord, error) {
	i, ok := t.pos[index]
	if !ok {
		return WeekRecord{}, fmt.Errorf("week %d: %w", index, apperrors.ErrNotFound)
	}
	week := t.weeks[i]
	if edit.Subject != nil {
		subject := strings.TrimSpace(*edit.Subject)
		if !plan.HasSubject(subject) {
			return WeekRecord{}, fmt.Errorf("%w: unknown subject %q", apperrors.ErrInvalidInput, subject)
		}
		week.Subject = subject
	}
	if edit.PlanText != nil {
		week.PlanText = *edit.PlanText
	}
	if edit.SampleQuestion != nil {
		week.SampleQuestion = *edit.SampleQuestion
	}
	if edit.Done != nil {
		week.Done = *edit.Done
	}
	t.weeks[i] = week
	return week, nil
}

// Merge adds generated rows whose index is missing. Existing rows win.
// It reports how many rows were added.
func (t *Table) Merge(generated []WeekRecord) int {
	added := 0
	for _, w := range generated {
		if _, ok := t.pos[w.Index]; ok {
			continue
		}
		t.weeks = append(t.weeks, w)
		added++
	}
	if added > 0 {
		sort.SliceStable(t.weeks, func(i, j int) bool { return t.weeks[i].Index < t.weeks[j].Index })
		for i, w := range t.weeks {
			t.pos[w.Index] = i
		}
	}
	return added
}

// Months returns the distinct month keys in ascending order.
func (t *Table) Months() []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, w := range t.weeks {
		if _, ok := seen[w.Month]; ok {
			continue
		}
		seen[w.Month] = struct{}{}
		out = append(out, w.Month)
	}
	sort.Strings(out)
	return out
}

// InMonth returns the month's rows ordered by start date.
func (t *Table) InMonth(month string) []WeekRecord {
	return t.filterByDate(func(w WeekRecord) bool { return w.Month == month })
}

// Undone returns every row not yet completed, ordered by start date.
func (t *Table) Undone() []WeekRecord {
	return t.filterByDate(func(w WeekRecord) bool { return !w.Done })
}

// Current returns the last row that started on or before today.
func (t *Table) Current(today time.Time) (WeekRecord, bool) {
	var (
		found WeekRecord
		ok    bool
	)
	for _, w := range t.filterByDate(func(WeekRecord) bool { return true }) {
		if w.StartDate.After(today) {
			break
		}
		found, ok = w, true
	}
	return found, ok
}

func (t *Table) filterByDate(keep func(WeekRecord) bool) []WeekRecord {
	out := []WeekRecord{}
	for _, w := range t.weeks {
		if keep(w) {
			out = append(out, w)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].Index < out[j].Index
		}
		return out[i].StartDate.Before(out[j].StartDate)
	})
	return out
}
