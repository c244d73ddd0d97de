package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/rehearsehq/rehearse/pkg/client"
	"github.com/rehearsehq/rehearse/pkg/domain"
)

// interviewPhase is the session controller's explicit state. Rendering is a
// pure function of the phase plus the fields below it; the network layer
// only ever moves the phase forward via messages.
type interviewPhase int

const (
	// phaseIdle: no active session in this page lifetime.
	phaseIdle interviewPhase = iota
	// phasePosed: a question is on screen awaiting an answer.
	phasePosed
	// phaseAnswered: feedback and score arrived; terminal for this question.
	phaseAnswered
)

type startField int

const (
	fieldRole startField = iota
	fieldExperience
	fieldTechStack
	fieldDifficulty
	numStartFields
)

var startFieldLabels = [numStartFields]string{"role", "experience", "tech stack", "difficulty"}

// questionPosedMsg carries the result of StartInterview.
type questionPosedMsg struct {
	sessionID uuid.UUID
	question  string
	err       error
}

// feedbackReceivedMsg carries the result of SubmitAnswer. sessionID names
// the session the answer belonged to so a response for a discarded session
// cannot corrupt a newer one.
type feedbackReceivedMsg struct {
	sessionID uuid.UUID
	feedback  string
	score     float64
	err       error
}

type interviewModel struct {
	client *client.Client

	// Start form
	fields     [numStartFields]string
	focus      startField
	formOpen   bool

	// Active session state
	phase         interviewPhase
	sessionID     uuid.UUID
	question      string
	answer        string
	answerFocused bool
	feedback      string
	score         float64

	// In-flight guards: one outstanding call per operation, no doubles.
	starting   bool
	submitting bool

	statusMsg string
	width     int
	height    int
}

func newInterviewModel(c *client.Client) interviewModel {
	m := interviewModel{client: c}
	m.fields[fieldDifficulty] = domain.DefaultDifficulty
	return m
}

// prefill seeds the start form from saved login hints. Difficulty keeps its
// default; the service never hints it.
func (m interviewModel) prefill(h domain.Hints) interviewModel {
	if m.fields[fieldRole] == "" {
		m.fields[fieldRole] = h.Role
	}
	if m.fields[fieldExperience] == "" {
		m.fields[fieldExperience] = h.Experience
	}
	if m.fields[fieldTechStack] == "" {
		m.fields[fieldTechStack] = h.TechStack
	}
	return m
}

// editing reports whether keystrokes belong to this model rather than to
// global navigation.
func (m interviewModel) editing() bool {
	return m.formOpen || m.answerFocused
}

func (m interviewModel) openForm() interviewModel {
	m.formOpen = true
	m.answerFocused = false
	m.focus = fieldRole
	m.statusMsg = ""
	return m
}

func (m interviewModel) Update(msg tea.Msg) (interviewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case questionPosedMsg:
		m.starting = false
		if msg.err != nil {
			m.statusMsg = "could not start interview: " + msg.err.Error()
			return m, nil
		}
		// A new session discards the prior one's client-side state entirely,
		// including the submit guard for any answer still being scored.
		m.phase = phasePosed
		m.sessionID = msg.sessionID
		m.question = msg.question
		m.answer = ""
		m.feedback = ""
		m.score = 0
		m.submitting = false
		m.formOpen = false
		m.answerFocused = true
		m.statusMsg = ""
		return m, nil

	case feedbackReceivedMsg:
		m.submitting = false
		if msg.sessionID != m.sessionID || m.phase != phasePosed {
			// Response for a session that was since discarded.
			return m, nil
		}
		if msg.err != nil {
			m.statusMsg = "could not score answer: " + msg.err.Error()
			return m, nil
		}
		m.phase = phaseAnswered
		m.feedback = msg.feedback
		m.score = msg.score
		m.answerFocused = false
		m.statusMsg = ""
		return m, nil

	case tea.KeyMsg:
		if m.formOpen {
			return m.updateFormKeys(msg)
		}
		if m.answerFocused {
			return m.updateAnswerKeys(msg)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m interviewModel) updateFormKeys(msg tea.KeyMsg) (interviewModel, tea.Cmd) {
	m.statusMsg = ""

	switch msg.String() {
	case "ctrl+s":
		return m.startSession()
	case "esc":
		m.formOpen = false
	case "tab", "down":
		m.focus = (m.focus + 1) % numStartFields
	case "shift+tab", "up":
		m.focus = (m.focus - 1 + numStartFields) % numStartFields
	case "backspace":
		if m.focus != fieldDifficulty {
			m.fields[m.focus] = editRune(m.fields[m.focus], "backspace")
		}
	case "enter":
		if m.focus == numStartFields-1 {
			return m.startSession()
		}
		m.focus = (m.focus + 1) % numStartFields
	default:
		key := msg.String()
		if m.focus == fieldDifficulty {
			// Cycle through difficulties with h/l
			if key == "h" || key == "l" {
				levels := domain.ValidDifficulties
				idx := 0
				for i, d := range levels {
					if d == m.fields[fieldDifficulty] {
						idx = i
						break
					}
				}
				if key == "l" {
					idx = (idx + 1) % len(levels)
				} else {
					idx = (idx - 1 + len(levels)) % len(levels)
				}
				m.fields[fieldDifficulty] = levels[idx]
			}
			return m, nil
		}
		if len(key) == 1 {
			m.fields[m.focus] = editRune(m.fields[m.focus], key)
		}
	}
	return m, nil
}

func (m interviewModel) updateAnswerKeys(msg tea.KeyMsg) (interviewModel, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		return m.submitAnswer()
	case "esc":
		m.answerFocused = false
	case "enter":
		m.answer += "\n"
	case "backspace":
		m.answer = editRune(m.answer, "backspace")
	default:
		key := msg.String()
		if len(key) == 1 {
			m.answer = editRune(m.answer, key)
		}
	}
	return m, nil
}

// startSession validates the form and opens a new session. A second start
// while one is outstanding is swallowed by the in-flight guard.
func (m interviewModel) startSession() (interviewModel, tea.Cmd) {
	if m.starting {
		return m, nil
	}

	role := strings.TrimSpace(m.fields[fieldRole])
	if role == "" {
		m.statusMsg = "role is required"
		return m, nil
	}
	difficulty := m.fields[fieldDifficulty]
	if !domain.ValidDifficulty(difficulty) {
		m.statusMsg = "difficulty must be easy, medium or hard"
		return m, nil
	}

	m.starting = true
	req := client.StartInterviewRequest{
		Role:       role,
		Experience: strings.TrimSpace(m.fields[fieldExperience]),
		TechStack:  strings.TrimSpace(m.fields[fieldTechStack]),
		Difficulty: difficulty,
	}
	c := m.client
	return m, func() tea.Msg {
		resp, err := c.StartInterview(context.Background(), req)
		if err != nil {
			return questionPosedMsg{err: err}
		}
		return questionPosedMsg{sessionID: resp.SessionID, question: resp.Question}
	}
}

// submitAnswer sends the stored session id and the typed answer. With no
// posed question there is no session id to send, so the submit is rejected
// locally and no request goes out.
func (m interviewModel) submitAnswer() (interviewModel, tea.Cmd) {
	if m.phase != phasePosed {
		m.statusMsg = "no question posed — start an interview first"
		return m, nil
	}
	if m.submitting {
		return m, nil
	}
	answer := strings.TrimSpace(m.answer)
	if answer == "" {
		m.statusMsg = "answer is empty"
		return m, nil
	}

	m.submitting = true
	m.statusMsg = ""
	c := m.client
	sessionID := m.sessionID
	return m, func() tea.Msg {
		fb, err := c.SubmitAnswer(context.Background(), sessionID, answer)
		if err != nil {
			return feedbackReceivedMsg{sessionID: sessionID, err: err}
		}
		return feedbackReceivedMsg{sessionID: sessionID, feedback: fb.Feedback, score: fb.Score}
	}
}

// copyQuestion puts the posed question on the clipboard.
func (m interviewModel) copyQuestion() interviewModel {
	if m.phase == phaseIdle {
		return m
	}
	if err := clipboard.WriteAll(m.question); err != nil {
		m.statusMsg = "copy failed"
	} else {
		m.statusMsg = "copied question"
	}
	return m
}

func (m interviewModel) View() string {
	var sb strings.Builder

	if m.formOpen {
		sb.WriteString(m.renderForm())
		sb.WriteString("\n")
	}

	switch m.phase {
	case phaseIdle:
		if !m.formOpen {
			sb.WriteString(" " + dimStyle.Render("no active interview — press n to start one") + "\n")
		}
	case phasePosed, phaseAnswered:
		sb.WriteString(m.renderSession())
	}

	if m.statusMsg != "" {
		sb.WriteString("\n " + errStyle.Render(m.statusMsg) + "\n")
	}
	return sb.String()
}

func (m interviewModel) renderForm() string {
	var b strings.Builder

	b.WriteString(" " + metaStyle.Render("new interview") + "\n")
	for i := startField(0); i < numStartFields; i++ {
		label := startFieldLabels[i]
		value := m.fields[i]
		cursor := " "
		style := metaStyle
		if i == m.focus {
			cursor = ">"
			style = selectedStyle
		}

		if i == fieldDifficulty {
			fmt.Fprintf(&b, " %s %s: %s  %s\n",
				cursor, style.Render(label),
				DifficultyStyle(value).Render(value),
				metaStyle.Render("(h/l to cycle)"))
			continue
		}

		displayValue := value
		if i == m.focus {
			displayValue += "█"
		}
		fmt.Fprintf(&b, " %s %s: %s\n", cursor, style.Render(label), displayValue)
	}

	if m.starting {
		b.WriteString("\n " + dimStyle.Render("asking for a question...") + "\n")
	}
	return b.String()
}

// renderSession renders the posed question, the answer (typed or submitted),
// and, once scored, the feedback appended below. The question never
// disappears when feedback arrives.
func (m interviewModel) renderSession() string {
	bodyWidth := m.width - 4
	if bodyWidth < 20 {
		bodyWidth = 76
	}
	wrap := lipgloss.NewStyle().Width(bodyWidth)

	var b strings.Builder
	b.WriteString(" " + questionLabelStyle.Render("Question") + "\n")
	for _, l := range strings.Split(wrap.Render(questionStyle.Render(m.question)), "\n") {
		b.WriteString("   " + l + "\n")
	}
	b.WriteString("\n")

	switch m.phase {
	case phasePosed:
		b.WriteString(" " + metaStyle.Render("your answer") + "\n")
		answer := m.answer
		if m.answerFocused {
			answer += "█"
		}
		if answer == "" {
			b.WriteString("   " + inputPlaceholderStyle.Render("type your answer...") + "\n")
		} else {
			for _, l := range strings.Split(wrap.Render(answer), "\n") {
				b.WriteString("   " + l + "\n")
			}
		}
		if m.submitting {
			b.WriteString("\n " + dimStyle.Render("scoring your answer...") + "\n")
		}

	case phaseAnswered:
		b.WriteString(" " + metaStyle.Render("your answer") + "\n")
		for _, l := range strings.Split(wrap.Render(dimStyle.Render(m.answer)), "\n") {
			b.WriteString("   " + l + "\n")
		}
		b.WriteString("\n " + feedbackLabelStyle.Render("Feedback") + "\n")
		for _, l := range strings.Split(wrap.Render(feedbackStyle.Render(m.feedback)), "\n") {
			b.WriteString("   " + l + "\n")
		}
		b.WriteString("\n " + metaStyle.Render("score") + " " +
			scoreStyle(m.score).Render(formatScore(m.score)) + "\n")
	}
	return b.String()
}
