package app

import (
	"errors"
	"strings"
	"testing"

	apperrors "studyroutine/internal/platform/errors"
)

func TestParseMode(t *testing.T) {
	t.Parallel()
	cases := map[string]Mode{"": ModeFull, "full": ModeFull, "today": ModeToday}
	for in, want := range cases {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Fatalf("ParseMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseMode("widget"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestFocusNoteShowsInStatusBar(t *testing.T) {
	t.Parallel()
	m := NewModel(ModeFull, t.TempDir(), nil, nil, nil)

	next, _ := m.executePalette("focus 감정평가관계법규 조문 암기")
	m = next.(Model)
	if m.focus != "감정평가관계법규 조문 암기" {
		t.Fatalf("unexpected focus %q", m.focus)
	}
	if !strings.Contains(m.renderStatusBar(), "중점: 감정평가관계법규 조문 암기") {
		t.Fatalf("status bar should carry the focus note: %q", m.renderStatusBar())
	}

	next, _ = m.executePalette("focus")
	m = next.(Model)
	if m.focus != "" || strings.Contains(m.renderStatusBar(), "중점") {
		t.Fatalf("bare focus should clear the note, got %q", m.focus)
	}
}

func TestUnknownPaletteCommandIsReported(t *testing.T) {
	t.Parallel()
	m := NewModel(ModeFull, t.TempDir(), nil, nil, nil)
	next, _ := m.executePalette("teleport")
	m = next.(Model)
	if !m.statusErr || !strings.Contains(m.status, "unknown command: teleport") {
		t.Fatalf("expected unknown command error, got %q", m.status)
	}
}
