package tui

import (
	"strings"
	"testing"
	"time"
)

func TestEditRune(t *testing.T) {
	tests := []struct {
		name string
		text string
		key  string
		want string
	}{
		{"append letter", "go", "r", "gor"},
		{"append space", "tech stack", " ", "tech stack "},
		{"append multibyte", "caf", "é", "café"},
		{"backspace", "got", "backspace", "go"},
		{"backspace multibyte", "café", "backspace", "caf"},
		{"backspace empty", "", "backspace", ""},
		{"named key ignored", "text", "enter", "text"},
		{"esc ignored", "text", "esc", "text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := editRune(tt.text, tt.key); got != tt.want {
				t.Errorf("editRune(%q, %q) = %q, want %q", tt.text, tt.key, got, tt.want)
			}
		})
	}
}

func TestEditRuneClampsLength(t *testing.T) {
	full := strings.Repeat("a", maxInputLen)
	if got := editRune(full, "b"); got != full {
		t.Errorf("expected input clamped at %d runes", maxInputLen)
	}
}

func TestTruncateToHeight(t *testing.T) {
	s := "one\ntwo\nthree\nfour\n"
	if got := truncateToHeight(s, 2); got != "one\ntwo\n" {
		t.Errorf("truncateToHeight = %q, want first two lines", got)
	}
	if got := truncateToHeight(s, 10); got != s {
		t.Errorf("truncateToHeight altered text that already fits: %q", got)
	}
	if got := truncateToHeight(s, 0); got != s {
		t.Errorf("truncateToHeight with no budget altered text: %q", got)
	}
}

func TestFormatScore(t *testing.T) {
	if got := formatScore(7); got != "7" {
		t.Errorf("formatScore(7) = %q, want 7", got)
	}
	if got := formatScore(7.5); got != "7.5" {
		t.Errorf("formatScore(7.5) = %q, want 7.5", got)
	}
}

func TestFormatTimestampZero(t *testing.T) {
	if got := formatTimestamp(time.Time{}); got != "unknown time" {
		t.Errorf("formatTimestamp(zero) = %q, want unknown time", got)
	}
}

func TestTruncStr(t *testing.T) {
	if got := truncStr("short", 10); got != "short" {
		t.Errorf("truncStr = %q, want unchanged", got)
	}
	if got := truncStr("a longer string", 8); got != "a longe…" {
		t.Errorf("truncStr = %q, want ellipsized to 8 runes", got)
	}
}
