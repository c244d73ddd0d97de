package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func typeRunes(m loginModel, s string) loginModel {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestLoginSubmitRequiresCredentials(t *testing.T) {
	m := newLoginModel(nil)

	m, cmd := m.submit()
	if cmd != nil {
		t.Fatal("expected no login request without credentials")
	}
	if !strings.Contains(m.View(), "email and password are required") {
		t.Errorf("expected validation message, got:\n%s", m.View())
	}
}

func TestLoginFailureShowsInlineMessage(t *testing.T) {
	m := newLoginModel(nil)
	m.submitting = true

	m, _ = m.Update(loginDoneMsg{err: errors.New("HTTP 401: Invalid credentials")})
	if m.submitting {
		t.Error("expected submitting cleared after failure")
	}
	view := m.View()
	if !strings.Contains(view, "Login failed.") {
		t.Errorf("expected inline failure message, got:\n%s", view)
	}
	// The raw server error stays out of the login form.
	if strings.Contains(view, "401") {
		t.Errorf("raw error leaked into view:\n%s", view)
	}
}

func TestLoginSuccessClearsForm(t *testing.T) {
	m := newLoginModel(nil)
	m = typeRunes(m, "a@b.c")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = typeRunes(m, "hunter2")

	m, _ = m.Update(loginDoneMsg{email: "a@b.c"})
	if m.fields[fieldEmail] != "" || m.fields[fieldPassword] != "" {
		t.Errorf("expected fields cleared, got %q / %q", m.fields[fieldEmail], m.fields[fieldPassword])
	}
}

func TestLoginPasswordRendersMasked(t *testing.T) {
	m := newLoginModel(nil)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = typeRunes(m, "hunter2")

	view := m.View()
	if strings.Contains(view, "hunter2") {
		t.Errorf("password rendered in clear:\n%s", view)
	}
	if !strings.Contains(view, "•••••••") {
		t.Errorf("expected masked password, got:\n%s", view)
	}
}

func TestLoginEnterOnPasswordSubmits(t *testing.T) {
	m := newLoginModel(nil)
	m = typeRunes(m, "a@b.c")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = typeRunes(m, "pw")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a login command")
	}
	if !m.submitting {
		t.Error("expected submitting flag set")
	}
}

func TestLoginSubmitInFlightGuard(t *testing.T) {
	m := newLoginModel(nil)
	m.fields[fieldEmail] = "a@b.c"
	m.fields[fieldPassword] = "pw"
	m.submitting = true

	_, cmd := m.submit()
	if cmd != nil {
		t.Error("expected duplicate login to be swallowed while one is outstanding")
	}
}
