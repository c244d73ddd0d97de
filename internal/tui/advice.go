package tui

import (
	"context"
	"regexp"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rehearsehq/rehearse/pkg/client"
)

// strongMarker matches **emphasized** spans in service advice text. The
// dot does not cross newlines, mirroring how the service marks up advice.
var strongMarker = regexp.MustCompile(`\*\*(.+?)\*\*`)

// adviceHeading is the fixed container heading above formatted advice.
const adviceHeading = "Improvement Advice"

// formatAdvice converts the lightly-marked-up advice string into display
// text: **spans** become strong emphasis, single line breaks become
// paragraph breaks, and the result sits under a fixed heading. Total on any
// input; text without markers passes through with only the line-break
// conversion. An unterminated ** stays literal.
func formatAdvice(raw string) string {
	body := strongMarker.ReplaceAllStringFunc(raw, func(m string) string {
		inner := strings.TrimSuffix(strings.TrimPrefix(m, "**"), "**")
		return adviceStrongStyle.Render(inner)
	})
	body = strings.ReplaceAll(body, "\n", "\n\n")
	return adviceHeadingStyle.Render(adviceHeading) + "\n\n" + body
}

type adviceLoadedMsg struct {
	advice string
	err    error
}

type adviceModel struct {
	client    *client.Client
	raw       string
	loaded    bool
	loading   bool
	err       string
	statusMsg string
	width     int
	height    int
}

func newAdviceModel(c *client.Client) adviceModel {
	return adviceModel{client: c}
}

func (m adviceModel) Init() tea.Cmd {
	return m.load()
}

func (m adviceModel) load() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		advice, err := c.GetAdvice(context.Background())
		return adviceLoadedMsg{advice: advice, err: err}
	}
}

func (m adviceModel) Update(msg tea.Msg) (adviceModel, tea.Cmd) {
	switch msg := msg.(type) {
	case adviceLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err.Error()
			return m, nil
		}
		m.raw = msg.advice
		m.loaded = true
		m.err = ""
		return m, nil

	case tea.KeyMsg:
		m.statusMsg = ""
		switch msg.String() {
		case "c":
			if m.loaded {
				if err := clipboard.WriteAll(m.raw); err != nil {
					m.statusMsg = "copy failed"
				} else {
					m.statusMsg = "copied advice"
				}
			}
		case "r":
			m.loading = true
			return m, m.load()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m adviceModel) View() string {
	if m.loading || (!m.loaded && m.err == "") {
		return " " + dimStyle.Render("reviewing your past sessions...")
	}
	if m.err != "" {
		return " " + dimStyle.Render("error: "+m.err)
	}

	bodyWidth := m.width - 2
	if bodyWidth < 20 {
		bodyWidth = 76
	}
	out := lipgloss.NewStyle().Width(bodyWidth).Render(formatAdvice(m.raw))

	// Indent every line one column off the edge
	lines := strings.Split(out, "\n")
	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(" " + l + "\n")
	}
	if m.statusMsg != "" {
		sb.WriteString("\n " + okStyle.Render(m.statusMsg) + "\n")
	}
	return sb.String()
}
