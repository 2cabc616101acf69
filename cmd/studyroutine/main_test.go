package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "studyroutine/internal/platform/errors"
)

func TestParseIndex(t *testing.T) {
	t.Parallel()
	if got, err := parseIndex("12"); err != nil || got != 12 {
		t.Fatalf("parseIndex(12) = %d, %v", got, err)
	}
	for _, raw := range []string{"-1", "x", ""} {
		if _, err := parseIndex(raw); !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("parseIndex(%q) expected invalid input, got %v", raw, err)
		}
	}
}

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestMonthsDoneRoundTrip(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	out, err := runRoot(t, "--data", dir, "--log-level", "error", "months")
	if err != nil {
		t.Fatalf("months: %v", err)
	}
	if !strings.HasPrefix(out, "2025-06\t  0.0%\t0/4\n") {
		t.Fatalf("unexpected first month line: %q", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "study_tracker_data.csv")); err != nil {
		t.Fatalf("table not created on first run: %v", err)
	}

	out, err = runRoot(t, "--data", dir, "--log-level", "error", "done", "0")
	if err != nil {
		t.Fatalf("done: %v", err)
	}
	if !strings.HasPrefix(out, "[x] #0") {
		t.Fatalf("unexpected done output: %q", out)
	}

	out, err = runRoot(t, "--data", dir, "--log-level", "error", "months")
	if err != nil {
		t.Fatalf("months: %v", err)
	}
	if !strings.HasPrefix(out, "2025-06\t 25.0%\t1/4\n") {
		t.Fatalf("completion not persisted: %q", out)
	}
}

func TestEditWithoutFlagsIsRejected(t *testing.T) {
	t.Parallel()
	_, err := runRoot(t, "--data", t.TempDir(), "edit", "3")
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}
