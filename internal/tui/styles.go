package tui

import (
	"fmt"
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Shimmer animation for the REHEARSE logo.
type shimmerTickMsg time.Time

func shimmerTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return shimmerTickMsg(t)
	})
}

// renderShimmerLogo renders "R E H E A R S E" as a flowing wave of indigo
// light, deep slate (#232447) -> bright periwinkle (#8d93f5). No hue drift.
func renderShimmerLogo(frame int) string {
	const text = "REHEARSE"
	n := len(text)

	var out string

	t := float64(frame)

	for i := 0; i < n; i++ {
		x := float64(i) / float64(n-1)

		// One smooth wave advancing through the text
		phase := t*0.1 - x*3.0
		phase += math.Sin(t*0.023) * 2.0

		b := math.Sin(phase)*0.5 + 0.5
		b = math.Pow(b, 1.3)

		// Slow breathing tide
		tide := math.Sin(t*0.035) * 0.12
		b = b*0.75 + tide + 0.18

		if b > 1.0 {
			b = 1.0
		} else if b < 0.05 {
			b = 0.05
		}

		// Deep:   (35, 36, 71)    #232447
		// Bright: (141, 147, 245) #8d93f5
		r := clampByte(35 + b*(141-35))
		g := clampByte(36 + b*(147-36))
		bl := clampByte(71 + b*(245-71))

		color := fmt.Sprintf("#%02X%02X%02X", r, g, bl)

		s := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(color))
		out += s.Render(string(text[i]))

		// Letter spacing — two spaces between each letter
		if i < n-1 {
			out += "  "
		}
	}

	return out
}

func clampByte(v float64) int {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return int(v)
}

var (
	// Base styles — rehearse neutral palette
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0c4d0"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e06060"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#43e88c"))

	// Identity badge in the header
	badgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8d93f5")).
			Bold(true)

	// Help bar
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	// Interview rendering
	questionLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#8d93f5")).
				Bold(true)

	questionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec"))

	feedbackLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#c8a84c")).
				Bold(true)

	feedbackStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0c4d0")).
			Italic(true)

	// Advice rendering
	adviceHeadingStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#8d93f5")).
				Bold(true).
				Underline(true)

	adviceStrongStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#e4e4ec")).
				Bold(true)

	// Form inputs
	inputPlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#343c4a"))
)

// difficultyColors: one chip color per difficulty level.
var difficultyColors = map[string]lipgloss.Color{
	"easy":   lipgloss.Color("#43e88c"),
	"medium": lipgloss.Color("#d4a844"),
	"hard":   lipgloss.Color("#e06060"),
}

// DifficultyStyle returns a bold style colored for the given difficulty.
func DifficultyStyle(d string) lipgloss.Style {
	if c, ok := difficultyColors[d]; ok {
		return lipgloss.NewStyle().Foreground(c).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#606878")).Bold(true)
}

// scoreStyle grades the feedback score color: strong, middling, weak.
func scoreStyle(score float64) lipgloss.Style {
	switch {
	case score >= 8:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#43e88c")).Bold(true)
	case score >= 5:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#d4a844")).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#e06060")).Bold(true)
	}
}

// helpEntry renders a single "key label" pair for help bars.
func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}
