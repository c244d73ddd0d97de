package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/rehearsehq/rehearse/internal/browser"
	"github.com/rehearsehq/rehearse/internal/store"
	"github.com/rehearsehq/rehearse/internal/tui"
	"github.com/rehearsehq/rehearse/pkg/client"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

const defaultAPIURL = "http://localhost:8000"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Best-effort .env for local development; real deployments set the
	// environment directly.
	godotenv.Load() //nolint:errcheck

	apiURL := os.Getenv("REHEARSE_API_URL")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "version", "-v":
			fmt.Println("rehearse " + version)
			return nil
		case "help", "--help", "-h":
			printHelp()
			return nil
		case "logout":
			return runLogout(apiURL)
		case "docs":
			return openDocs(apiURL)
		}
	}

	st, err := store.Default()
	if err != nil {
		return err
	}

	c := client.New(apiURL, st.Cookie())
	app := tui.NewApp(c, st)

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

// runLogout drops the local cookie and tells the service to invalidate the
// session. The local state clears even when the service call fails.
func runLogout(apiURL string) error {
	st, err := store.Default()
	if err != nil {
		return err
	}
	cookie := st.Cookie()
	if cookie == "" {
		fmt.Println("Already logged out.")
		return nil
	}
	if err := st.ClearCookie(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.New(apiURL, cookie).Logout(ctx); err != nil {
		fmt.Println("Logged out locally (service unreachable).")
		return nil
	}
	fmt.Println("Logged out.")
	return nil
}

func openDocs(apiURL string) error {
	url := apiURL + "/docs"
	if err := browser.Open(url); err != nil {
		fmt.Println(url)
	}
	return nil
}

func printHelp() {
	fmt.Print(`rehearse — terminal client for mock interview practice

Usage:
  rehearse            Launch the interactive TUI
  rehearse logout     Clear the saved session
  rehearse docs       Open the service API docs in a browser
  rehearse version    Show version

Environment:
  REHEARSE_API_URL    Interview service base URL (default ` + defaultAPIURL + `)
`)
}
