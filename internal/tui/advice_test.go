package tui

import (
	"errors"
	"strings"
	"testing"
)

func TestFormatAdviceBoldAndLineBreak(t *testing.T) {
	out := formatAdvice("**Be concise**\nUse examples")

	if !strings.Contains(out, "Improvement Advice") {
		t.Errorf("expected fixed heading, got:\n%s", out)
	}
	if !strings.Contains(out, "Be concise") {
		t.Errorf("expected emphasized text to survive, got:\n%s", out)
	}
	if strings.Contains(out, "**") {
		t.Errorf("expected ** markers to be consumed, got:\n%s", out)
	}
	// The emphasized span must come before the second line, separated by a break.
	i := strings.Index(out, "Be concise")
	j := strings.Index(out, "Use examples")
	if i < 0 || j < 0 || j < i {
		t.Fatalf("expected 'Be concise' before 'Use examples', got:\n%s", out)
	}
	if !strings.Contains(out[i:j], "\n") {
		t.Errorf("expected a line break between the two lines, got:\n%s", out)
	}
}

func TestFormatAdviceNoMarkersPassesThrough(t *testing.T) {
	out := formatAdvice("Practice daily.\nRead postmortems.")

	if !strings.Contains(out, "Practice daily.") {
		t.Errorf("expected first line verbatim, got:\n%s", out)
	}
	if !strings.Contains(out, "Read postmortems.") {
		t.Errorf("expected second line verbatim, got:\n%s", out)
	}
	// Single line breaks become paragraph breaks.
	if !strings.Contains(out, "Practice daily.\n\nRead postmortems.") {
		t.Errorf("expected paragraph break between lines, got:\n%s", out)
	}
}

func TestFormatAdviceUnterminatedMarkerStaysLiteral(t *testing.T) {
	out := formatAdvice("**unfinished emphasis")
	if !strings.Contains(out, "**unfinished emphasis") {
		t.Errorf("expected unterminated marker kept literal, got:\n%s", out)
	}
}

func TestFormatAdviceEmptyInput(t *testing.T) {
	out := formatAdvice("")
	if !strings.Contains(out, "Improvement Advice") {
		t.Errorf("expected heading even for empty advice, got:\n%s", out)
	}
}

func TestFormatAdviceMultipleSpans(t *testing.T) {
	out := formatAdvice("**First** then **second** point")
	if strings.Contains(out, "**") {
		t.Errorf("expected all markers consumed, got:\n%s", out)
	}
	if !strings.Contains(out, "First") || !strings.Contains(out, "second") {
		t.Errorf("expected both spans to survive, got:\n%s", out)
	}
}

func newTestAdviceModel() adviceModel {
	m := newAdviceModel(nil)
	m.width = 80
	m.height = 24
	return m
}

func TestAdviceLoaded(t *testing.T) {
	m := newTestAdviceModel()
	m, _ = m.Update(adviceLoadedMsg{advice: "**Slow down** when answering"})

	view := m.View()
	if !strings.Contains(view, "Slow down") {
		t.Errorf("expected view to contain advice text, got:\n%s", view)
	}
	if !strings.Contains(view, "Improvement Advice") {
		t.Errorf("expected view to contain heading, got:\n%s", view)
	}
}

func TestAdviceLoadError(t *testing.T) {
	m := newTestAdviceModel()
	m, _ = m.Update(adviceLoadedMsg{err: errors.New("connection refused")})

	view := m.View()
	if !strings.Contains(view, "error") {
		t.Errorf("expected view to contain 'error', got:\n%s", view)
	}
	if !strings.Contains(view, "connection refused") {
		t.Errorf("expected view to contain the cause, got:\n%s", view)
	}
}
