package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// keyPress builds a tea.KeyMsg whose String() matches the given key name.
func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestEditRune(t *testing.T) {
	tests := []struct {
		name string
		text string
		key  string
		want string
	}{
		{"append letter", "re", "x", "rex"},
		{"backspace", "rex", "backspace", "re"},
		{"backspace empty", "", "backspace", ""},
		{"ignore named key", "rex", "enter", "rex"},
		{"multibyte rune", "caf", "é", "café"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := editRune(tc.text, tc.key); got != tc.want {
				t.Errorf("editRune(%q, %q) = %q, want %q", tc.text, tc.key, got, tc.want)
			}
		})
	}
}

func TestEditRuneClampsLength(t *testing.T) {
	long := strings.Repeat("a", maxInputLen)
	if got := editRune(long, "b"); got != long {
		t.Errorf("expected input clamped at %d runes, grew to %d", maxInputLen, len(got))
	}
}

func TestTruncStr(t *testing.T) {
	if got := truncStr("short", 20); got != "short" {
		t.Errorf("expected unchanged, got %q", got)
	}
	got := truncStr("a very long pet name indeed", 10)
	if len([]rune(got)) != 10 || !strings.HasSuffix(got, "…") {
		t.Errorf("expected 10 runes ending in ellipsis, got %q", got)
	}
}

func TestTruncateToHeight(t *testing.T) {
	s := "one\ntwo\nthree\nfour\n"
	got := truncateToHeight(s, 2)
	if got != "one\ntwo\n" {
		t.Errorf("expected two lines, got %q", got)
	}
	if truncateToHeight(s, 0) != s {
		t.Error("expected no-op for maxLines <= 0")
	}
	if truncateToHeight("no newline", 5) != "no newline" {
		t.Error("expected short content unchanged")
	}
}

func TestFormatExpiry(t *testing.T) {
	tests := []struct {
		until time.Duration
		want  string
	}{
		{-time.Minute, "expired"},
		{0, "expired"},
		{30 * time.Second, "under a minute"},
		{45 * time.Minute, "45m"},
		{90 * time.Minute, "1h 30m"},
		{49 * time.Hour, "2d"},
	}

	for _, tc := range tests {
		if got := formatExpiry(tc.until); got != tc.want {
			t.Errorf("formatExpiry(%v) = %q, want %q", tc.until, got, tc.want)
		}
	}
}
