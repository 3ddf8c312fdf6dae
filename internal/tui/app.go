package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"petdex/pkg/client"
	"petdex/pkg/session"
)

type view int

const (
	viewDashboard view = iota
	viewCreate
	viewAccount
)

// SessionChangedMsg is sent by the program wiring whenever the session
// manager reports a status change.
type SessionChangedMsg struct {
	Status session.Status
}

// sessionRestoredMsg signals that the startup credential check finished.
type sessionRestoredMsg struct{}

// App is the root Bubbletea model. Rendering is gated by routeFor on the
// current session status, so protected screens are unreachable the moment
// the session ends.
type App struct {
	client  *client.Client
	session *session.Manager
	version string

	view       view
	login      loginModel
	register   registerModel
	dashboard  dashboardModel
	create     createModel
	account    accountModel
	onRegister bool
	booted     bool

	width  int
	height int
	frame  int // logo shimmer animation frame
}

// NewApp creates the TUI application.
func NewApp(c *client.Client, mgr *session.Manager, version string) App {
	return App{
		client:    c,
		session:   mgr,
		version:   version,
		login:     newLoginModel(mgr),
		register:  newRegisterModel(mgr),
		dashboard: newDashboardModel(c),
		create:    newCreateModel(c),
		account:   newAccountModel(mgr),
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(shimmerTickCmd(), a.restoreSession())
}

// restoreSession runs the startup credential check off the update loop.
func (a App) restoreSession() tea.Cmd {
	mgr := a.session
	return func() tea.Msg {
		mgr.Restore()
		return sessionRestoredMsg{}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Chrome: header(2) + help(1) = 3 lines
		bodyMsg := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 3}
		a.login, _ = a.login.Update(bodyMsg)
		a.register, _ = a.register.Update(bodyMsg)
		a.dashboard, _ = a.dashboard.Update(bodyMsg)
		a.create, _ = a.create.Update(bodyMsg)
		a.account, _ = a.account.Update(bodyMsg)
		return a, nil

	case shimmerTickMsg:
		a.frame++
		return a, shimmerTickCmd()

	case sessionRestoredMsg:
		if a.session.Status() == session.StatusAuthenticated {
			return a.enterProtected()
		}
		return a, nil

	case SessionChangedMsg:
		switch msg.Status {
		case session.StatusAuthenticated:
			return a.enterProtected()
		case session.StatusUnauthenticated:
			return a.leaveProtected()
		}
		return a, nil

	case loginResultMsg:
		a.login, _ = a.login.Update(msg)
		if msg.err == nil {
			return a.enterProtected()
		}
		return a, nil

	case registerResultMsg:
		a.register, _ = a.register.Update(msg)
		if msg.err == nil {
			return a.enterProtected()
		}
		return a, nil

	case petCreatedMsg:
		a.create, _ = a.create.Update(msg)
		a.dashboard, _ = a.dashboard.Update(msg)
		if msg.err == nil {
			a.view = viewDashboard
		}
		return a, nil

	case petsLoadedMsg, petMutatedMsg, petDeletedMsg:
		var cmd tea.Cmd
		a.dashboard, cmd = a.dashboard.Update(msg)
		return a, cmd

	case tokenCopiedMsg:
		a.account, _ = a.account.Update(msg)
		return a, nil

	case tea.KeyMsg:
		return a.updateKeys(msg)
	}

	return a, nil
}

// enterProtected switches to the dashboard after a successful credential
// check and resets the auth forms. Safe to call more than once per sign-in:
// the session change notification and the form result can both arrive.
func (a App) enterProtected() (tea.Model, tea.Cmd) {
	if a.booted {
		return a, nil
	}
	a.booted = true
	a.view = viewDashboard
	a.login = newLoginModel(a.session)
	a.register = newRegisterModel(a.session)
	a.onRegister = false
	a.dashboard = newDashboardModel(a.client)
	return a, a.dashboard.Init()
}

// leaveProtected resets protected state after a logout or forced sign-out.
func (a App) leaveProtected() (tea.Model, tea.Cmd) {
	a.booted = false
	a.view = viewDashboard
	a.dashboard = newDashboardModel(a.client)
	a.create = newCreateModel(a.client)
	return a, nil
}

func (a App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	switch routeFor(a.session.Status()) {
	case routeSpinner:
		if msg.String() == "q" {
			return a, tea.Quit
		}
		return a, nil

	case routeLogin:
		if a.onRegister {
			var cmd tea.Cmd
			a.register, cmd = a.register.Update(msg)
			if a.register.switchToLogin {
				a.onRegister = false
				a.register = newRegisterModel(a.session)
			}
			return a, cmd
		}
		var cmd tea.Cmd
		a.login, cmd = a.login.Update(msg)
		if a.login.switchToRegister {
			a.onRegister = true
			a.login = newLoginModel(a.session)
		}
		return a, cmd

	default:
		return a.updateProtectedKeys(msg)
	}
}

func (a App) updateProtectedKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The create form owns every printable key while open.
	if a.view == viewCreate {
		if msg.String() == "esc" {
			a.view = viewDashboard
			a.create = newCreateModel(a.client)
			return a, a.dashboard.Init()
		}
		var cmd tea.Cmd
		a.create, cmd = a.create.Update(msg)
		return a, cmd
	}

	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "1":
		if a.view != viewDashboard {
			a.view = viewDashboard
			return a, a.dashboard.Init()
		}
		return a, nil
	case "2":
		a.view = viewAccount
		return a, nil
	case "n":
		a.view = viewCreate
		a.create = newCreateModel(a.client)
		return a, nil
	}

	var cmd tea.Cmd
	switch a.view {
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.Update(msg)
	case viewAccount:
		a.account, cmd = a.account.Update(msg)
	}
	return a, cmd
}

func (a App) View() string {
	// Header: centered shimmer logo + identity line
	logo := renderShimmerLogo(a.frame)
	logoWidth := lipgloss.Width(logo)
	logoPad := (a.width - logoWidth) / 2
	if logoPad < 0 {
		logoPad = 0
	}
	header := strings.Repeat(" ", logoPad) + logo + "\n"

	var line string
	if id := a.session.Identity(); id.Username != "" {
		line = metaStyle.Render(id.Username)
		if len(id.Roles) > 0 {
			line += metaStyle.Render(" . ") + metaStyle.Render(strings.Join(id.Roles, " "))
		}
	} else {
		line = metaStyle.Render(a.version)
	}
	linePad := (a.width - lipgloss.Width(line)) / 2
	if linePad < 0 {
		linePad = 0
	}
	header += strings.Repeat(" ", linePad) + line

	var body, help string
	switch routeFor(a.session.Status()) {
	case routeSpinner:
		body = " " + dimStyle.Render("checking session"+strings.Repeat(".", (a.frame/6)%4))
		help = " " + helpEntry("q", "quit")

	case routeLogin:
		if a.onRegister {
			body = a.register.View()
			help = " " + helpEntry("tab", "next") + "  " + helpEntry("enter", "submit") + "  " + helpEntry("esc", "sign in") + "  " + helpEntry("ctrl+c", "quit")
		} else {
			body = a.login.View()
			help = " " + helpEntry("tab", "next") + "  " + helpEntry("enter", "submit") + "  " + helpEntry("ctrl+r", "sign up") + "  " + helpEntry("ctrl+c", "quit")
		}

	default:
		switch a.view {
		case viewDashboard:
			body = a.dashboard.View()
			help = " " + helpEntry("j/k", "nav") + "  " + helpEntry("f", "feed") + "  " + helpEntry("t", "train") + "  " + helpEntry("d", "delete") + "  " + helpEntry("n", "new") + "  " + helpEntry("r", "reload") + "  " + helpEntry("2", "account") + "  " + helpEntry("q", "quit")
		case viewCreate:
			body = a.create.View()
			help = " " + helpEntry("tab", "next") + "  " + helpEntry("h/l", "type") + "  " + helpEntry("ctrl+s", "create") + "  " + helpEntry("esc", "cancel")
		case viewAccount:
			body = a.account.View()
			help = " " + helpEntry("c", "copy token") + "  " + helpEntry("x", "log out") + "  " + helpEntry("1", "pets") + "  " + helpEntry("q", "quit")
		}
	}

	// Chrome budget: header(2) + help(1) = 3 lines + body
	body = strings.TrimRight(truncateToHeight(body, a.height-3), "\n")

	return fmt.Sprintf("%s\n%s\n%s", header, body, help)
}
