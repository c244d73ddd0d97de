package tui

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// formatTimestamp renders an absolute local timestamp for history entries
// and interaction logs.
func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "unknown time"
	}
	return t.Local().Format("Jan 2, 2006 3:04 PM")
}

// formatScore renders a feedback score without trailing zeros (7, 7.5).
func formatScore(score float64) string {
	if score == float64(int64(score)) {
		return fmt.Sprintf("%d", int64(score))
	}
	return fmt.Sprintf("%.1f", score)
}

// truncStr truncates a string to maxLen runes, appending an ellipsis if needed.
func truncStr(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-1]) + "…"
}
