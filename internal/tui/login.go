package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rehearsehq/rehearse/pkg/client"
	"github.com/rehearsehq/rehearse/pkg/domain"
)

type credField int

const (
	fieldEmail credField = iota
	fieldPassword
	numCredFields
)

var credFieldLabels = [numCredFields]string{"email", "password"}

// loginDoneMsg carries the result of a login attempt. On success the app
// switches to home and persists the cookie and hints.
type loginDoneMsg struct {
	email string
	hints *domain.Hints
	err   error
}

type loginModel struct {
	client     *client.Client
	fields     [numCredFields]string
	focus      credField
	submitting bool
	errMsg     string
	info       string
}

func newLoginModel(c *client.Client) loginModel {
	return loginModel{client: c}
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case loginDoneMsg:
		m.submitting = false
		if msg.err != nil {
			// Inline message, no navigation.
			m.errMsg = "Login failed."
			return m, nil
		}
		m.fields = [numCredFields]string{}
		m.focus = fieldEmail
		m.errMsg = ""
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m loginModel) updateKeys(msg tea.KeyMsg) (loginModel, tea.Cmd) {
	m.errMsg = ""

	switch msg.String() {
	case "tab", "down":
		m.focus = (m.focus + 1) % numCredFields
	case "shift+tab", "up":
		m.focus = (m.focus - 1 + numCredFields) % numCredFields
	case "backspace":
		m.fields[m.focus] = editRune(m.fields[m.focus], "backspace")
	case "enter":
		if m.focus == fieldPassword {
			return m.submit()
		}
		m.focus = fieldPassword
	case "ctrl+s":
		return m.submit()
	default:
		key := msg.String()
		if len(key) == 1 {
			m.info = ""
			m.fields[m.focus] = editRune(m.fields[m.focus], key)
		}
	}
	return m, nil
}

func (m loginModel) submit() (loginModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	email := strings.TrimSpace(m.fields[fieldEmail])
	password := m.fields[fieldPassword]
	if email == "" || password == "" {
		m.errMsg = "email and password are required"
		return m, nil
	}

	m.submitting = true
	c := m.client
	return m, func() tea.Msg {
		hints, err := c.Login(context.Background(), email, password)
		if err != nil {
			return loginDoneMsg{err: err}
		}
		return loginDoneMsg{email: email, hints: hints}
	}
}

func (m loginModel) View() string {
	var b strings.Builder

	b.WriteString(" " + metaStyle.Render("log in") + "\n\n")
	if m.info != "" {
		b.WriteString(" " + okStyle.Render(m.info) + "\n\n")
	}

	b.WriteString(renderCredFields(m.fields, m.focus))

	b.WriteString("\n")
	if m.submitting {
		b.WriteString(" " + dimStyle.Render("logging in...") + "\n")
	} else if m.errMsg != "" {
		b.WriteString(" " + errStyle.Render(m.errMsg) + "\n")
	}
	return b.String()
}

// renderCredFields renders the shared email/password form used by the login
// and register views. The password renders masked.
func renderCredFields(fields [numCredFields]string, focus credField) string {
	var b strings.Builder
	for i := credField(0); i < numCredFields; i++ {
		label := credFieldLabels[i]
		value := fields[i]
		if i == fieldPassword {
			value = strings.Repeat("•", len([]rune(value)))
		}
		cursor := " "
		style := metaStyle
		if i == focus {
			cursor = ">"
			style = selectedStyle
			value += "█"
		}
		fmt.Fprintf(&b, " %s %s: %s\n", cursor, style.Render(label), value)
	}
	return b.String()
}
