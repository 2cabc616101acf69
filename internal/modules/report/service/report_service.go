package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"studyroutine/internal/modules/report/domain"
	reportout "studyroutine/internal/modules/report/port/out"
	"studyroutine/internal/platform/clock"
	apperrors "studyroutine/internal/platform/errors"
	"studyroutine/internal/platform/logging"
	"studyroutine/internal/platform/markdown"
)

const weeksBlock = "weeks"

type ReportService struct {
	weeks        reportout.WeekSource
	goals        reportout.GoalSource
	encoder      reportout.TableEncoder
	sink         reportout.FileSink
	clock        clock.Clock
	location     *time.Location
	exportPrefix string
	logger       *log.Logger
}

type Options struct {
	Clock        clock.Clock
	Location     *time.Location
	ExportPrefix string
	Logger       *log.Logger
}

func NewReportService(
	weeks reportout.WeekSource,
	goals reportout.GoalSource,
	encoder reportout.TableEncoder,
	sink reportout.FileSink,
	opts Options,
) *ReportService {
	if opts.Clock == nil {
		opts.Clock = clock.SystemClock{}
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if strings.TrimSpace(opts.ExportPrefix) == "" {
		opts.ExportPrefix = "감정평가사_학습루틴"
	}
	return &ReportService{
		weeks:        weeks,
		goals:        goals,
		encoder:      encoder,
		sink:         sink,
		clock:        opts.Clock,
		location:     opts.Location,
		exportPrefix: opts.ExportPrefix,
		logger:       logging.OrDiscard(opts.Logger),
	}
}

func (s *ReportService) Weeks(ctx context.Context) ([]domain.Week, error) {
	return s.weeks.Weeks(ctx)
}

// Export encodes the whole table and, when dir is set, writes it there.
func (s *ReportService) Export(ctx context.Context, full bool, dir string) (name, path string, rows int, data []byte, err error) {
	weeks, err := s.weeks.Weeks(ctx)
	if err != nil {
		return "", "", 0, nil, err
	}
	data, err = s.encoder.Encode(weeks, full)
	if err != nil {
		return "", "", 0, nil, err
	}
	name = domain.ExportFileName(s.exportPrefix, clock.Today(s.clock, s.location))
	if strings.TrimSpace(dir) != "" {
		path = filepath.Join(dir, name)
		if err := s.sink.Write(ctx, path, data); err != nil {
			return "", "", 0, nil, err
		}
		s.logger.Info("exported routine", "path", path, "rows", len(weeks), "full", full)
	}
	return name, path, len(weeks), data, nil
}

// MonthNote renders the review note of one month. An existing note keeps
// its own text and frontmatter keys; only the generated parts change.
func (s *ReportService) MonthNote(ctx context.Context, month, dir string) (path, content string, err error) {
	if _, err := time.Parse("2006-01", month); err != nil {
		return "", "", fmt.Errorf("%w: month must be YYYY-MM, got %q", apperrors.ErrInvalidInput, month)
	}
	weeks, err := s.weeks.Weeks(ctx)
	if err != nil {
		return "", "", err
	}
	inMonth := make([]domain.Week, 0, 5)
	for _, w := range weeks {
		if w.Month == month {
			inMonth = append(inMonth, w)
		}
	}
	goal := ""
	if s.goals != nil {
		if goal, err = s.goals.Goal(ctx, month); err != nil {
			return "", "", err
		}
	}

	doc := markdown.Document{Meta: map[string]any{}, Body: "# " + month + " 학습 리뷰\n"}
	if strings.TrimSpace(dir) != "" {
		path = filepath.Join(dir, domain.NoteFileName(month))
		existing, err := s.sink.Read(ctx, path)
		switch {
		case err == nil:
			if doc, err = markdown.Parse(string(existing)); err != nil {
				return "", "", fmt.Errorf("%w: note %s: %v", apperrors.ErrDataCorruption, path, err)
			}
		case !errors.Is(err, apperrors.ErrNotFound):
			return "", "", err
		}
	}

	rate := domain.CompletionRate(weeks, month)
	doc.Set(map[string]any{
		"month":      month,
		"completion": rate.Percent(),
		"done":       rate.Done,
		"total":      rate.Total,
		"goal":       goal,
	})
	doc.ReplaceBlock(weeksBlock, domain.NoteWeeks(inMonth))
	content, err = doc.Render()
	if err != nil {
		return "", "", err
	}
	if path != "" {
		if err := s.sink.Write(ctx, path, []byte(content)); err != nil {
			return "", "", err
		}
		s.logger.Info("wrote month note", "path", path)
	}
	return path, content, nil
}
