package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestRegisterFailureShowsInlineMessage(t *testing.T) {
	m := newRegisterModel(nil)
	m.submitting = true

	m, _ = m.Update(registerDoneMsg{err: errors.New("HTTP 400: Email already registered")})
	if m.submitting {
		t.Error("expected submitting cleared after failure")
	}
	view := m.View()
	if !strings.Contains(view, "Registration failed.") {
		t.Errorf("expected inline failure message, got:\n%s", view)
	}
	if strings.Contains(view, "already registered") {
		t.Errorf("raw error leaked into view:\n%s", view)
	}
}

func TestRegisterSubmitRequiresCredentials(t *testing.T) {
	m := newRegisterModel(nil)

	m, cmd := m.submit()
	if cmd != nil {
		t.Fatal("expected no register request without credentials")
	}
	if !strings.Contains(m.View(), "email and password are required") {
		t.Errorf("expected validation message, got:\n%s", m.View())
	}
}

func TestRegisterSuccessClearsForm(t *testing.T) {
	m := newRegisterModel(nil)
	m.fields[fieldEmail] = "a@b.c"
	m.fields[fieldPassword] = "pw"
	m.submitting = true

	m, _ = m.Update(registerDoneMsg{})
	if m.fields[fieldEmail] != "" || m.fields[fieldPassword] != "" {
		t.Errorf("expected fields cleared, got %q / %q", m.fields[fieldEmail], m.fields[fieldPassword])
	}
	if m.errMsg != "" {
		t.Errorf("errMsg = %q, want empty", m.errMsg)
	}
}

func TestRegisterEnterMovesFocusThenSubmits(t *testing.T) {
	m := newRegisterModel(nil)
	m.fields[fieldEmail] = "a@b.c"
	m.fields[fieldPassword] = "pw"

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatal("enter on the email field should only move focus")
	}
	if m.focus != fieldPassword {
		t.Fatalf("focus = %v, want fieldPassword", m.focus)
	}
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Error("enter on the password field should submit")
	}
}
