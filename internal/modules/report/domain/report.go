package domain

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

// Week is the read-only view of a schedule row that reports work from.
type Week struct {
	Month          string
	Index          int
	WeekLabel      string
	Subject        string
	StartDate      string
	PlanText       string
	SampleQuestion string
	Done           bool
}

// Rate is a done/total count for one key (a month, a subject, or "all").
type Rate struct {
	Key   string
	Done  int
	Total int
}

// Ratio is 0 for an empty group.
func (r Rate) Ratio() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Done) / float64(r.Total)
}

// Percent is rounded to one decimal place.
func (r Rate) Percent() float64 {
	return math.Round(r.Ratio()*1000) / 10
}

func (r Rate) String() string {
	return fmt.Sprintf("%.1f%%", r.Percent())
}

func CompletionRate(weeks []Week, month string) Rate {
	rate := Rate{Key: month}
	for _, w := range weeks {
		if w.Month != month {
			continue
		}
		rate.Total++
		if w.Done {
			rate.Done++
		}
	}
	return rate
}

// SubjectRates groups the whole table by subject, least complete first.
func SubjectRates(weeks []Week) []Rate {
	rates := group(weeks, func(w Week) string { return w.Subject })
	sort.SliceStable(rates, func(i, j int) bool {
		if rates[i].Ratio() == rates[j].Ratio() {
			return rates[i].Key < rates[j].Key
		}
		return rates[i].Ratio() < rates[j].Ratio()
	})
	return rates
}

// MonthRates groups by month in calendar order.
func MonthRates(weeks []Week) []Rate {
	rates := group(weeks, func(w Week) string { return w.Month })
	sort.Slice(rates, func(i, j int) bool { return rates[i].Key < rates[j].Key })
	return rates
}

func Overall(weeks []Week) Rate {
	rate := Rate{Key: "all", Total: len(weeks)}
	for _, w := range weeks {
		if w.Done {
			rate.Done++
		}
	}
	return rate
}

func group(weeks []Week, key func(Week) string) []Rate {
	byKey := map[string]*Rate{}
	order := []string{}
	for _, w := range weeks {
		k := key(w)
		r, ok := byKey[k]
		if !ok {
			r = &Rate{Key: k}
			byKey[k] = r
			order = append(order, k)
		}
		r.Total++
		if w.Done {
			r.Done++
		}
	}
	out := make([]Rate, 0, len(order))
	for _, k := range order {
		out = append(out, *byKey[k])
	}
	return out
}

// ExportFileName is "<prefix>_<YYYY-MM-DD>.csv".
func ExportFileName(prefix string, today time.Time) string {
	return fmt.Sprintf("%s_%s.csv", prefix, today.Format("2006-01-02"))
}

// NoteFileName is the review note path for a month, relative to its dir.
func NoteFileName(month string) string {
	return month + ".md"
}

// NoteWeeks renders the week list of a month review note.
func NoteWeeks(weeks []Week) string {
	if len(weeks) == 0 {
		return "_(이 달의 학습 주차 없음)_"
	}
	var sb strings.Builder
	for i, w := range weeks {
		if i > 0 {
			sb.WriteString("\n")
		}
		mark := " "
		if w.Done {
			mark = "x"
		}
		fmt.Fprintf(&sb, "- [%s] **%s** %s (%s)", mark, w.WeekLabel, w.Subject, w.StartDate)
		if plan := strings.TrimSpace(w.PlanText); plan != "" {
			sb.WriteString("\n  - 계획: " + oneLine(plan))
		}
		if q := strings.TrimSpace(w.SampleQuestion); q != "" {
			sb.WriteString("\n  - 질문: " + oneLine(q))
		}
	}
	return sb.String()
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
