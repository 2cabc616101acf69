package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"studyroutine/internal/platform/config"
	apperrors "studyroutine/internal/platform/errors"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.Load(config.Options{DataDir: dir})
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	if cfg.WeekCount != 156 {
		t.Fatalf("expected 156 weeks, got %d", cfg.WeekCount)
	}
	if got := cfg.BaseDate.Format("2006-01-02"); got != "2025-06-03" {
		t.Fatalf("unexpected base date %s", got)
	}
	want := []string{"민법", "경제학", "회계학", "부동산학", "감정평가관계법규"}
	if len(cfg.Subjects) != len(want) {
		t.Fatalf("expected %d subjects, got %v", len(want), cfg.Subjects)
	}
	for i := range want {
		if cfg.Subjects[i] != want[i] {
			t.Fatalf("subject %d: want %s got %s", i, want[i], cfg.Subjects[i])
		}
	}
	if cfg.TablePath != filepath.Join(dir, "study_tracker_data.csv") {
		t.Fatalf("table path not resolved against data dir: %s", cfg.TablePath)
	}
	if cfg.Location.String() != "Asia/Seoul" {
		t.Fatalf("unexpected location %s", cfg.Location)
	}
}

func TestLoadConfigFileAndFlagOverride(t *testing.T) {
	dir := t.TempDir()
	content := "week_count: 10\nsubjects:\n  - 민법\n  - 회계학\nexport_prefix: routine\n"
	if err := os.WriteFile(filepath.Join(dir, "studyroutine.yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := config.Load(config.Options{DataDir: dir, LogLevel: "debug"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.WeekCount != 10 || len(cfg.Subjects) != 2 || cfg.Subjects[1] != "회계학" {
		t.Fatalf("config file values not applied: %+v", cfg)
	}
	if cfg.ExportPrefix != "routine" {
		t.Fatalf("expected export prefix from file, got %s", cfg.ExportPrefix)
	}
	if cfg.LogLevel != log.DebugLevel {
		t.Fatalf("flag log level should win, got %s", cfg.LogLevel)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("STUDYROUTINE_WEEK_COUNT=52\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Cleanup(func() { _ = os.Unsetenv("STUDYROUTINE_WEEK_COUNT") })
	cfg, err := config.Load(config.Options{DataDir: dir})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.WeekCount != 52 {
		t.Fatalf("expected week count from .env, got %d", cfg.WeekCount)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"zero weeks":  "week_count: 0\n",
		"bad date":    "base_date: 2025/06/03\n",
		"no subjects": "subjects: \"  \"\n",
		"bad zone":    "timezone: Mars/Olympus\n",
		"bad level":   "log_level: verbose\n",
	}
	for name, content := range cases {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "studyroutine.yaml"), []byte(content), 0o644); err != nil {
			t.Fatalf("%s: write config: %v", name, err)
		}
		if _, err := config.Load(config.Options{DataDir: dir}); !errors.Is(err, apperrors.ErrInvalidConfiguration) {
			t.Fatalf("%s: expected invalid configuration, got %v", name, err)
		}
	}
}

func TestLoadMissingExplicitConfigFile(t *testing.T) {
	dir := t.TempDir()
	_, err := config.Load(config.Options{DataDir: dir, ConfigFile: filepath.Join(dir, "missing.yaml")})
	if !errors.Is(err, apperrors.ErrInvalidConfiguration) {
		t.Fatalf("expected invalid configuration for missing explicit file, got %v", err)
	}
}

func TestLoadRejectsUnknownLogLevelFromEnv(t *testing.T) {
	t.Setenv("STUDYROUTINE_LOG_LEVEL", "verbose")
	_, err := config.Load(config.Options{DataDir: t.TempDir()})
	if !errors.Is(err, apperrors.ErrInvalidConfiguration) {
		t.Fatalf("expected invalid configuration for log level, got %v", err)
	}
}
