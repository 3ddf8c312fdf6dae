package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"petdex/internal/config"
	"petdex/internal/logging"
	"petdex/internal/tui"
	"petdex/pkg/client"
	"petdex/pkg/session"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Local overrides for development; missing file is fine.
	_ = godotenv.Load()

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "version", "-v":
			fmt.Println("petdex " + version)
			return nil
		case "help", "--help", "-h":
			printHelp()
			return nil
		case "logout":
			store, err := session.NewStore()
			if err != nil {
				return err
			}
			msg, err := runLogout(store)
			if err != nil {
				return err
			}
			fmt.Println(msg)
			return nil
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logging.New(cfg.LogLevel, cfg.LogFile)

	store, err := session.NewStore()
	if err != nil {
		return err
	}

	api := client.New(cfg.APIURL, store,
		client.WithTimeout(cfg.RequestTimeout),
		client.WithLogger(log))
	mgr := session.NewManager(api, store, log)

	app := tui.NewApp(api, mgr, version)
	p := tea.NewProgram(app, tea.WithAltScreen())

	// Session changes reach the TUI as messages; the manager is the only
	// writer, the program just re-routes on what it reports.
	mgr.Subscribe(func(s session.Status) {
		p.Send(tui.SessionChangedMsg{Status: s})
	})

	if cfg.LogoutOnDenied {
		api.OnAuthDenied(func(status int, path string) {
			log.WithField("status", status).WithField("path", path).
				Warn("access denied, ending session")
			mgr.Logout()
		})
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

// runLogout discards the stored credential and reports what happened.
func runLogout(store *session.Store) (string, error) {
	if store.Token() == "" {
		return "Already logged out.", nil
	}
	if err := store.Clear(); err != nil {
		return "", err
	}
	return "Logged out.", nil
}

func printHelp() {
	fmt.Print(`petdex — terminal client for your virtual pets

Usage:
  petdex            launch the TUI
  petdex logout     discard the stored credential
  petdex version    print the version
  petdex help       show this help

Environment:
  PETDEX_TOKEN            use this credential instead of the stored one
  PETDEX_API_URL          backend base URL (default http://localhost:8080)
  PETDEX_LOGOUT_ON_DENIED end the session when the backend denies access
  PETDEX_LOG_LEVEL        log verbosity (default info)
  PETDEX_LOG_FILE         log destination (default ~/.petdex/petdex.log)

Configuration may also live in ~/.petdex/config.yaml.
`)
}
