package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rehearsehq/rehearse/pkg/client"
)

// registerDoneMsg carries the result of a registration attempt. On success
// the app switches back to the login view.
type registerDoneMsg struct {
	err error
}

type registerModel struct {
	client     *client.Client
	fields     [numCredFields]string
	focus      credField
	submitting bool
	errMsg     string
}

func newRegisterModel(c *client.Client) registerModel {
	return registerModel{client: c}
}

func (m registerModel) Update(msg tea.Msg) (registerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case registerDoneMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = "Registration failed."
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

func (m registerModel) updateKeys(msg tea.KeyMsg) (registerModel, tea.Cmd) {
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
			m.fields[m.focus] = editRune(m.fields[m.focus], key)
		}
	}
	return m, nil
}

func (m registerModel) submit() (registerModel, tea.Cmd) {
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
		return registerDoneMsg{err: c.Register(context.Background(), email, password)}
	}
}

func (m registerModel) View() string {
	var b strings.Builder

	b.WriteString(" " + metaStyle.Render("create account") + "\n\n")
	b.WriteString(renderCredFields(m.fields, m.focus))

	b.WriteString("\n")
	if m.submitting {
		b.WriteString(" " + dimStyle.Render("registering...") + "\n")
	} else if m.errMsg != "" {
		b.WriteString(" " + errStyle.Render(m.errMsg) + "\n")
	}
	return b.String()
}
