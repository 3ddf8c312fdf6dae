package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"petdex/pkg/session"
)

type loginField int

const (
	loginFieldUsername loginField = iota
	loginFieldPassword
	numLoginFields
)

// loginResultMsg carries the outcome of a sign-in attempt.
type loginResultMsg struct{ err error }

type loginModel struct {
	session   *session.Manager
	fields    [numLoginFields]string
	fieldErrs [numLoginFields]string
	focus     loginField
	errMsg    string
	submitting bool

	// switchToRegister asks the parent to show the sign-up screen.
	switchToRegister bool

	width  int
	height int
}

func newLoginModel(mgr *session.Manager) loginModel {
	return loginModel{session: mgr}
}

func (m loginModel) Init() tea.Cmd {
	return nil
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case loginResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
		}
		return m, nil

	case tea.KeyMsg:
		if m.submitting {
			// The form is disabled while a sign-in is in flight.
			return m, nil
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m loginModel) updateKeys(msg tea.KeyMsg) (loginModel, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		m.focus = (m.focus + 1) % numLoginFields
	case "shift+tab", "up":
		m.focus = (m.focus - 1 + numLoginFields) % numLoginFields
	case "enter":
		if m.focus == loginFieldPassword {
			return m.submit()
		}
		m.focus++
	case "ctrl+r":
		m.switchToRegister = true
	case "backspace":
		m.fields[m.focus] = editRune(m.fields[m.focus], "backspace")
		m.fieldErrs[m.focus] = ""
	default:
		before := m.fields[m.focus]
		m.fields[m.focus] = editRune(before, msg.String())
		if m.fields[m.focus] != before {
			m.fieldErrs[m.focus] = ""
			m.errMsg = ""
		}
	}
	return m, nil
}

// submit validates locally first; nothing is sent while a field is invalid.
func (m loginModel) submit() (loginModel, tea.Cmd) {
	m.errMsg = ""
	m.fieldErrs = [numLoginFields]string{}

	username := strings.TrimSpace(m.fields[loginFieldUsername])
	password := m.fields[loginFieldPassword]
	if username == "" {
		m.fieldErrs[loginFieldUsername] = "username is required"
	}
	if password == "" {
		m.fieldErrs[loginFieldPassword] = "password is required"
	}
	for _, e := range m.fieldErrs {
		if e != "" {
			return m, nil
		}
	}

	m.submitting = true
	mgr := m.session
	return m, func() tea.Msg {
		return loginResultMsg{err: mgr.Login(context.Background(), username, password)}
	}
}

func (m loginModel) View() string {
	var b strings.Builder

	b.WriteString(" " + selectedStyle.Render("sign in") + "\n\n")

	labels := [numLoginFields]string{"username", "password"}
	for i := loginField(0); i < numLoginFields; i++ {
		cursor := " "
		style := metaStyle
		if i == m.focus {
			cursor = ">"
			style = selectedStyle
		}

		value := m.fields[i]
		if i == loginFieldPassword {
			value = strings.Repeat("*", len([]rune(value)))
		}
		if i == m.focus {
			value += "█"
		}
		fmt.Fprintf(&b, " %s %s: %s", cursor, style.Render(labels[i]), value)
		if m.fieldErrs[i] != "" {
			b.WriteString("  " + errorStyle.Render(m.fieldErrs[i]))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case m.submitting:
		b.WriteString(" " + dimStyle.Render("signing in..."))
	case m.errMsg != "":
		b.WriteString(" " + errorStyle.Render(m.errMsg))
	default:
		b.WriteString(" " + metaStyle.Render("no account yet? ctrl+r to sign up"))
	}

	return b.String()
}
