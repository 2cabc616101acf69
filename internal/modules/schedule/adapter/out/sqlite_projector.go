package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"studyroutine/internal/modules/schedule/domain"
	scheduleout "studyroutine/internal/modules/schedule/port/out"

	_ "modernc.org/sqlite"
)

type SQLiteWeekProjector struct {
	db *sql.DB
}

func NewSQLiteWeekProjector(dbPath string) (scheduleout.WeekIndexProjector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	projector := &SQLiteWeekProjector{db: db}
	if err := projector.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return projector, nil
}

func (s *SQLiteWeekProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS weeks (
  idx INTEGER PRIMARY KEY,
  month TEXT NOT NULL,
  week_label TEXT NOT NULL,
  subject TEXT NOT NULL,
  start_date TEXT NOT NULL,
  plan_text TEXT NOT NULL,
  sample_question TEXT NOT NULL,
  done INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS weeks_month ON weeks(month);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create weeks table: %w", err)
	}
	return nil
}

func (s *SQLiteWeekProjector) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM weeks`); err != nil {
		return fmt.Errorf("reset weeks: %w", err)
	}
	return nil
}

func (s *SQLiteWeekProjector) UpsertWeeks(ctx context.Context, weeks []domain.WeekRecord) error {
	const stmt = `
INSERT INTO weeks (idx, month, week_label, subject, start_date, plan_text, sample_question, done)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(idx) DO UPDATE SET
  month=excluded.month,
  week_label=excluded.week_label,
  subject=excluded.subject,
  start_date=excluded.start_date,
  plan_text=excluded.plan_text,
  sample_question=excluded.sample_question,
  done=excluded.done;
`
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	for _, w := range weeks {
		done := 0
		if w.Done {
			done = 1
		}
		if _, err := tx.ExecContext(ctx, stmt,
			w.Index,
			w.Month,
			w.WeekLabel,
			w.Subject,
			w.StartDate.Format(domain.DateLayout),
			w.PlanText,
			w.SampleQuestion,
			done,
		); err != nil {
			return fmt.Errorf("upsert week %d: %w", w.Index, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert: %w", err)
	}
	return nil
}

func (s *SQLiteWeekProjector) Close() error {
	return s.db.Close()
}
