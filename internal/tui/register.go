package tui

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"petdex/pkg/session"
)

// defaultRoles is the role list requested for every self-service sign-up.
var defaultRoles = []string{"USER"}

// Sign-up form constraints, enforced before any network call.
const (
	minUsernameLen = 3
	minPasswordLen = 6
)

type registerField int

const (
	registerFieldUsername registerField = iota
	registerFieldPassword
	registerFieldConfirm
	numRegisterFields
)

// registerResultMsg carries the outcome of a sign-up attempt.
type registerResultMsg struct{ err error }

type registerModel struct {
	session    *session.Manager
	fields     [numRegisterFields]string
	fieldErrs  [numRegisterFields]string
	focus      registerField
	errMsg     string
	submitting bool

	// switchToLogin asks the parent to show the sign-in screen.
	switchToLogin bool

	width  int
	height int
}

func newRegisterModel(mgr *session.Manager) registerModel {
	return registerModel{session: mgr}
}

func (m registerModel) Init() tea.Cmd {
	return nil
}

func (m registerModel) Update(msg tea.Msg) (registerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case registerResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
		}
		return m, nil

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m registerModel) updateKeys(msg tea.KeyMsg) (registerModel, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		m.focus = (m.focus + 1) % numRegisterFields
	case "shift+tab", "up":
		m.focus = (m.focus - 1 + numRegisterFields) % numRegisterFields
	case "enter":
		if m.focus == registerFieldConfirm {
			return m.submit()
		}
		m.focus++
	case "ctrl+r", "esc":
		m.switchToLogin = true
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

// validateSignUp returns per-field error strings; empty strings mean valid.
func validateSignUp(username, password, confirm string) [numRegisterFields]string {
	var errs [numRegisterFields]string
	switch {
	case strings.TrimSpace(username) == "":
		errs[registerFieldUsername] = "username is required"
	case utf8.RuneCountInString(strings.TrimSpace(username)) < minUsernameLen:
		errs[registerFieldUsername] = fmt.Sprintf("at least %d characters", minUsernameLen)
	}
	switch {
	case password == "":
		errs[registerFieldPassword] = "password is required"
	case utf8.RuneCountInString(password) < minPasswordLen:
		errs[registerFieldPassword] = fmt.Sprintf("at least %d characters", minPasswordLen)
	}
	switch {
	case confirm == "":
		errs[registerFieldConfirm] = "confirm your password"
	case confirm != password:
		errs[registerFieldConfirm] = "passwords do not match"
	}
	return errs
}

func (m registerModel) submit() (registerModel, tea.Cmd) {
	m.errMsg = ""
	username := strings.TrimSpace(m.fields[registerFieldUsername])
	m.fieldErrs = validateSignUp(username, m.fields[registerFieldPassword], m.fields[registerFieldConfirm])
	for _, e := range m.fieldErrs {
		if e != "" {
			return m, nil
		}
	}

	m.submitting = true
	mgr := m.session
	password := m.fields[registerFieldPassword]
	return m, func() tea.Msg {
		return registerResultMsg{err: mgr.Register(context.Background(), username, password, defaultRoles)}
	}
}

func (m registerModel) View() string {
	var b strings.Builder

	b.WriteString(" " + selectedStyle.Render("sign up") + "\n\n")

	labels := [numRegisterFields]string{"username", "password", "confirm"}
	for i := registerField(0); i < numRegisterFields; i++ {
		cursor := " "
		style := metaStyle
		if i == m.focus {
			cursor = ">"
			style = selectedStyle
		}

		value := m.fields[i]
		if i != registerFieldUsername {
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
		b.WriteString(" " + dimStyle.Render("creating account..."))
	case m.errMsg != "":
		b.WriteString(" " + errorStyle.Render(m.errMsg))
	default:
		b.WriteString(" " + metaStyle.Render("already registered? esc to sign in"))
	}

	return b.String()
}
