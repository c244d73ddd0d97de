package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rehearsehq/rehearse/internal/store"
	"github.com/rehearsehq/rehearse/pkg/client"
)

type view int

const (
	viewLogin view = iota
	viewRegister
	viewHome
	viewAdvice
)

// identityMsg carries the result of the identity probe. Any error means the
// viewer is treated as not logged in; there is no third state.
type identityMsg struct {
	email string
	err   error
}

// logoutDoneMsg is the result of the best-effort logout call. The app has
// already navigated away by the time it arrives.
type logoutDoneMsg struct{}

// App is the root Bubbletea model. It owns the auth gate: the identity
// probe on startup, the login/home routing, the identity badge and logout.
type App struct {
	client *client.Client
	store  *store.Store

	view      view
	login     loginModel
	register  registerModel
	interview interviewModel
	history   historyModel
	advice    adviceModel

	email  string
	width  int
	height int
	frame  int // logo shimmer animation frame
}

// NewApp creates the root TUI application. st may be nil, in which case
// nothing persists between runs.
func NewApp(c *client.Client, st *store.Store) App {
	a := App{
		client:    c,
		store:     st,
		view:      viewHome,
		login:     newLoginModel(c),
		register:  newRegisterModel(c),
		interview: newInterviewModel(c),
		history:   newHistoryModel(c),
		advice:    newAdviceModel(c),
	}
	if st != nil {
		a.interview = a.interview.prefill(st.Hints())
	}
	return a
}

func (a App) Init() tea.Cmd {
	return tea.Batch(shimmerTickCmd(), a.probeIdentity())
}

// probeIdentity asks the service who the viewer is. The probe never runs
// from the login or register views; an unauthenticated answer there would
// only bounce the viewer back to where they already are.
func (a App) probeIdentity() tea.Cmd {
	if a.view == viewLogin || a.view == viewRegister {
		return nil
	}
	c := a.client
	return func() tea.Msg {
		id, err := c.CurrentUser(context.Background())
		if err != nil {
			return identityMsg{err: err}
		}
		return identityMsg{email: id.Email}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Chrome: header(2) + blank(1) + help(1) = 4 lines
		bodyMsg := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 4}
		a.interview, _ = a.interview.Update(bodyMsg)
		a.history, _ = a.history.Update(bodyMsg)
		a.advice, _ = a.advice.Update(bodyMsg)
		return a, nil

	case shimmerTickMsg:
		a.frame++
		return a, shimmerTickCmd()

	case identityMsg:
		if msg.err != nil {
			// Not logged in, or the service is unreachable; the two are
			// indistinguishable and handled identically.
			if a.view != viewLogin && a.view != viewRegister {
				a.view = viewLogin
			}
			return a, nil
		}
		a.email = msg.email
		a.view = viewHome
		return a, a.history.load()

	case loginDoneMsg:
		var cmd tea.Cmd
		a.login, cmd = a.login.Update(msg)
		if msg.err != nil {
			return a, cmd
		}
		a.email = msg.email
		if a.store != nil {
			a.store.SaveCookie(a.client.AuthCookie()) //nolint:errcheck // login proceeds even if persistence fails
			if msg.hints != nil {
				a.store.SaveHints(*msg.hints) //nolint:errcheck
			}
		}
		if msg.hints != nil {
			a.interview = a.interview.prefill(*msg.hints)
		}
		a.view = viewHome
		return a, tea.Batch(cmd, a.history.load())

	case registerDoneMsg:
		var cmd tea.Cmd
		a.register, cmd = a.register.Update(msg)
		if msg.err == nil {
			a.view = viewLogin
			a.login.info = "Account created — log in."
		}
		return a, cmd

	case questionPosedMsg:
		var cmd tea.Cmd
		a.interview, cmd = a.interview.Update(msg)
		if msg.err == nil {
			// A fresh session should show up in history once persisted.
			return a, tea.Batch(cmd, a.history.load())
		}
		return a, cmd

	case feedbackReceivedMsg:
		var cmd tea.Cmd
		a.interview, cmd = a.interview.Update(msg)
		return a, cmd

	case sessionsLoadedMsg, sessionDetailMsg:
		var cmd tea.Cmd
		a.history, cmd = a.history.Update(msg)
		return a, cmd

	case adviceLoadedMsg:
		var cmd tea.Cmd
		a.advice, cmd = a.advice.Update(msg)
		return a, cmd

	case logoutDoneMsg:
		return a, nil

	case tea.KeyMsg:
		return a.updateKeys(msg)
	}
	return a, nil
}

func (a App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	// Editing views and modes capture every key.
	switch a.view {
	case viewLogin:
		if msg.String() == "ctrl+r" {
			a.view = viewRegister
			return a, nil
		}
		var cmd tea.Cmd
		a.login, cmd = a.login.Update(msg)
		return a, cmd

	case viewRegister:
		if msg.String() == "esc" {
			a.view = viewLogin
			return a, nil
		}
		var cmd tea.Cmd
		a.register, cmd = a.register.Update(msg)
		return a, cmd

	case viewAdvice:
		if msg.String() == "esc" || msg.String() == "q" {
			a.view = viewHome
			return a, nil
		}
		var cmd tea.Cmd
		a.advice, cmd = a.advice.Update(msg)
		return a, cmd
	}

	// viewHome
	if a.interview.editing() {
		var cmd tea.Cmd
		a.interview, cmd = a.interview.Update(msg)
		return a, cmd
	}

	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "n":
		a.interview = a.interview.openForm()
		return a, nil
	case "a":
		a.view = viewAdvice
		a.advice.loading = true
		return a, a.advice.load()
	case "c":
		a.interview = a.interview.copyQuestion()
		return a, nil
	case "L":
		return a.logout()
	}

	var cmd tea.Cmd
	a.history, cmd = a.history.Update(msg)
	return a, cmd
}

// logout navigates to the login view unconditionally and fires the service
// logout in the background. Whatever that call returns, the local cookie is
// already gone.
func (a App) logout() (tea.Model, tea.Cmd) {
	if a.store != nil {
		a.store.ClearCookie() //nolint:errcheck // the view has already navigated away
	}
	a.email = ""
	a.view = viewLogin
	a.login = newLoginModel(a.client)
	a.interview = newInterviewModel(a.client)
	a.history = newHistoryModel(a.client)
	a.advice = newAdviceModel(a.client)

	c := a.client
	return a, func() tea.Msg {
		c.Logout(context.Background()) //nolint:errcheck // best-effort; cookie clears server-side
		return logoutDoneMsg{}
	}
}

func (a App) View() string {
	// Header: centered shimmer logo
	logo := renderShimmerLogo(a.frame)
	logoWidth := lipgloss.Width(logo)
	logoPad := (a.width - logoWidth) / 2
	if logoPad < 0 {
		logoPad = 0
	}
	header := strings.Repeat(" ", logoPad) + logo

	// Identity badge below the logo, right-aligned
	if a.email != "" {
		badge := badgeStyle.Render(a.email) + " " + metaStyle.Render("· L logout")
		badgeWidth := lipgloss.Width(badge)
		badgePad := a.width - badgeWidth - 1
		if badgePad < 0 {
			badgePad = 0
		}
		header += "\n" + strings.Repeat(" ", badgePad) + badge
	} else {
		header += "\n"
	}

	var body string
	var help string
	switch a.view {
	case viewLogin:
		body = a.login.View()
		help = " " + helpEntry("enter", "log in") + "  " + helpEntry("ctrl+r", "register") + "  " + helpEntry("ctrl+c", "quit")
	case viewRegister:
		body = a.register.View()
		help = " " + helpEntry("enter", "register") + "  " + helpEntry("esc", "back") + "  " + helpEntry("ctrl+c", "quit")
	case viewAdvice:
		body = a.advice.View()
		help = " " + helpEntry("c", "copy") + "  " + helpEntry("r", "refresh") + "  " + helpEntry("esc", "back")
	case viewHome:
		body = a.interview.View() + "\n" + a.history.View()
		switch {
		case a.interview.formOpen:
			help = " " + helpEntry("tab", "next") + "  " + helpEntry("h/l", "difficulty") + "  " + helpEntry("ctrl+s", "start") + "  " + helpEntry("esc", "cancel")
		case a.interview.answerFocused:
			help = " " + helpEntry("ctrl+s", "submit") + "  " + helpEntry("enter", "newline") + "  " + helpEntry("esc", "nav")
		case a.history.detail:
			help = " " + helpEntry("esc", "back") + "  " + helpEntry("q", "quit")
		default:
			help = " " + helpEntry("n", "new interview") + "  " + helpEntry("j/k", "sessions") + "  " + helpEntry("enter", "open") + "  " + helpEntry("a", "advice") + "  " + helpEntry("L", "logout") + "  " + helpEntry("q", "quit")
		}
	}

	// Chrome budget: header(2) + blank(1) + help(1) = 4 lines + body
	body = strings.TrimRight(truncateToHeight(body, a.height-4), "\n")

	return header + "\n" + body + "\n\n" + help
}
