package tui

import (
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"petdex/pkg/session"
)

// tokenCopiedMsg carries the result of copying the raw token to the clipboard.
type tokenCopiedMsg struct{ err error }

type accountModel struct {
	session   *session.Manager
	statusMsg string

	width  int
	height int
}

func newAccountModel(mgr *session.Manager) accountModel {
	return accountModel{session: mgr}
}

func (m accountModel) Init() tea.Cmd {
	return nil
}

func (m accountModel) Update(msg tea.Msg) (accountModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tokenCopiedMsg:
		if msg.err != nil {
			m.statusMsg = "copy failed: " + msg.err.Error()
		} else {
			m.statusMsg = "token copied to clipboard"
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "c":
			tok := m.session.Token()
			return m, func() tea.Msg {
				return tokenCopiedMsg{err: clipboard.WriteAll(tok)}
			}
		case "x":
			// Synchronous and always succeeds; the guard reroutes to login.
			m.session.Logout()
			m.statusMsg = ""
			return m, nil
		}
	}
	return m, nil
}

func (m accountModel) View() string {
	id := m.session.Identity()

	var b strings.Builder
	b.WriteString(" " + selectedStyle.Render(id.Username) + "\n\n")

	b.WriteString(" " + metaStyle.Render("roles") + "        ")
	if len(id.Roles) == 0 {
		b.WriteString(dimStyle.Render("none"))
	} else {
		b.WriteString(accentStyle.Render(strings.Join(id.Roles, ", ")))
	}
	b.WriteString("\n")

	b.WriteString(" " + metaStyle.Render("permissions") + "  ")
	if len(id.Permissions) == 0 {
		b.WriteString(dimStyle.Render("none"))
	} else {
		b.WriteString(normalStyle.Render(strings.Join(id.Permissions, ", ")))
	}
	b.WriteString("\n")

	if exp := m.session.ExpiresAt(); !exp.IsZero() {
		b.WriteString(" " + metaStyle.Render("session") + "      " +
			dimStyle.Render("expires in "+formatExpiry(time.Until(exp))) + "\n")
	}

	if m.statusMsg != "" {
		b.WriteString("\n " + okStyle.Render(m.statusMsg))
	}

	return b.String()
}
