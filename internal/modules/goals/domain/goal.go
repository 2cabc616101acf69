package domain

import (
	"fmt"
	"sort"
	"time"

	apperrors "studyroutine/internal/platform/errors"
)

const monthLayout = "2006-01"

// Goal is the free-form target written for one month.
type Goal struct {
	Month string
	Text  string
}

func NewGoal(month, text string) (Goal, error) {
	if err := ValidateMonth(month); err != nil {
		return Goal{}, err
	}
	return Goal{Month: month, Text: text}, nil
}

func ValidateMonth(month string) error {
	if _, err := time.Parse(monthLayout, month); err != nil {
		return fmt.Errorf("%w: month must be YYYY-MM, got %q", apperrors.ErrInvalidInput, month)
	}
	return nil
}

// Book maps months to goals. An entry set to empty text stays in the book.
type Book map[string]string

func NewBook(goals []Goal) Book {
	b := make(Book, len(goals))
	for _, g := range goals {
		b[g.Month] = g.Text
	}
	return b
}

func (b Book) Clone() Book {
	out := make(Book, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

// Goals returns the entries ordered by month.
func (b Book) Goals() []Goal {
	out := make([]Goal, 0, len(b))
	for month, text := range b {
		out = append(out, Goal{Month: month, Text: text})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}
