package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/rehearsehq/rehearse/pkg/client"
	"github.com/rehearsehq/rehearse/pkg/domain"
)

// Placeholder strings for unanswered interactions. These exact strings are
// part of the user-facing contract; blanks are never rendered.
const (
	placeholderNoAnswer   = "No answer submitted"
	placeholderNoScore    = "N/A"
	placeholderNoFeedback = "No feedback"
)

type sessionsLoadedMsg struct {
	sessions []domain.SessionSummary
	err      error
}

type sessionDetailMsg struct {
	id           uuid.UUID
	interactions []domain.Interaction
	err          error
}

// historyModel lists past sessions and, when one is selected, shows its
// full interaction log. A failed fetch leaves whatever was on screen alone;
// the error renders as a single dim line.
type historyModel struct {
	client *client.Client

	sessions []domain.SessionSummary
	loaded   bool
	cursor   int

	detail       bool
	detailID     uuid.UUID
	interactions []domain.Interaction

	loading bool
	err     string
	width   int
	height  int
}

func newHistoryModel(c *client.Client) historyModel {
	return historyModel{client: c}
}

func (m historyModel) Init() tea.Cmd {
	return m.load()
}

func (m historyModel) load() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		sessions, err := c.ListSessions(context.Background())
		return sessionsLoadedMsg{sessions: sessions, err: err}
	}
}

func (m historyModel) loadDetail(id uuid.UUID) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		interactions, err := c.GetSession(context.Background(), id)
		return sessionDetailMsg{id: id, interactions: interactions, err: err}
	}
}

func (m historyModel) Update(msg tea.Msg) (historyModel, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			// Keep the prior list; surface the error without clobbering it.
			m.err = msg.err.Error()
			return m, nil
		}
		m.sessions = msg.sessions
		m.loaded = true
		m.err = ""
		if m.cursor >= len(m.sessions) {
			m.cursor = 0
		}
		return m, nil

	case sessionDetailMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err.Error()
			return m, nil
		}
		m.detail = true
		m.detailID = msg.id
		m.interactions = msg.interactions
		m.err = ""
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m historyModel) updateKeys(msg tea.KeyMsg) (historyModel, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if !m.detail && m.cursor < len(m.sessions)-1 {
			m.cursor++
		}
	case "k", "up":
		if !m.detail && m.cursor > 0 {
			m.cursor--
		}
	case "enter":
		if !m.detail && m.cursor < len(m.sessions) {
			m.loading = true
			return m, m.loadDetail(m.sessions[m.cursor].ID)
		}
	case "esc":
		if m.detail {
			m.detail = false
			m.interactions = nil
		}
	case "r":
		if !m.detail {
			m.loading = true
			return m, m.load()
		}
	}
	return m, nil
}

func (m historyModel) View() string {
	if m.detail {
		return m.renderDetail()
	}
	return m.renderList()
}

func (m historyModel) renderList() string {
	var sb strings.Builder
	sb.WriteString(" " + metaStyle.Render("previous sessions") + "\n")

	if m.err != "" {
		sb.WriteString(" " + dimStyle.Render("error: "+m.err) + "\n")
	}
	if !m.loaded && m.err == "" {
		sb.WriteString(" " + dimStyle.Render("loading sessions...") + "\n")
		return sb.String()
	}
	if m.loaded && len(m.sessions) == 0 {
		sb.WriteString(" " + dimStyle.Render("No previous sessions found.") + "\n")
		return sb.String()
	}

	for i, s := range m.sessions {
		cursor := " "
		style := normalStyle
		if i == m.cursor {
			cursor = ">"
			style = selectedStyle
		}
		sb.WriteString(" " + cursor + " " + style.Render("Session on "+formatTimestamp(s.CreatedAt)) + "\n")
	}
	return sb.String()
}

func (m historyModel) renderDetail() string {
	var sb strings.Builder
	sb.WriteString(" " + metaStyle.Render("session detail") + "\n")

	if m.err != "" {
		sb.WriteString(" " + dimStyle.Render("error: "+m.err) + "\n")
	}
	if len(m.interactions) == 0 {
		sb.WriteString(" " + dimStyle.Render("No interactions found for this session.") + "\n")
		return sb.String()
	}

	bodyWidth := m.width - 6
	if bodyWidth < 20 {
		bodyWidth = 72
	}
	wrap := lipgloss.NewStyle().Width(bodyWidth)

	for _, in := range m.interactions {
		sb.WriteString(renderInteraction(in, wrap))
		sb.WriteString("\n")
	}
	return sb.String()
}

// renderInteraction renders one question/answer/score/feedback/timestamp
// block, substituting the placeholder strings for anything still missing.
func renderInteraction(in domain.Interaction, wrap lipgloss.Style) string {
	answer := placeholderNoAnswer
	if in.Answer != nil {
		answer = *in.Answer
	}
	score := placeholderNoScore
	if in.Score != nil {
		score = formatScore(*in.Score)
	}
	feedback := placeholderNoFeedback
	if in.Feedback != nil {
		feedback = *in.Feedback
	}

	var b strings.Builder
	writeBlock := func(label string, style lipgloss.Style, text string) {
		b.WriteString("   " + metaStyle.Render(label) + " ")
		lines := strings.Split(wrap.Render(style.Render(text)), "\n")
		b.WriteString(lines[0] + "\n")
		for _, l := range lines[1:] {
			b.WriteString("      " + l + "\n")
		}
	}

	writeBlock("Q:", questionStyle, in.Question)
	if in.Answer != nil {
		writeBlock("A:", normalStyle, answer)
	} else {
		writeBlock("A:", dimStyle, answer)
	}
	if in.Score != nil {
		b.WriteString("   " + metaStyle.Render("Score:") + " " + scoreStyle(*in.Score).Render(score) + "\n")
	} else {
		b.WriteString("   " + metaStyle.Render("Score:") + " " + dimStyle.Render(score) + "\n")
	}
	if in.Feedback != nil {
		writeBlock("Feedback:", feedbackStyle, feedback)
	} else {
		writeBlock("Feedback:", dimStyle, feedback)
	}
	b.WriteString("   " + metaStyle.Render(formatTimestamp(in.Timestamp)) + "\n")
	return b.String()
}
