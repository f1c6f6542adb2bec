// ABOUTME: Cobra command launching the dashboard TUI.
// ABOUTME: Handles the session-expiry and two-factor exit paths after the TUI quits.
package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/2389-research/homefeed/internal/tui"
)

var homeCmd = &cobra.Command{
	Use:   "home",
	Short: "Open the feed dashboard",
	Long:  "Interactive dashboard: browse your posts, compose, delete, and find friends.",
	RunE:  runHome,
}

func init() {
	rootCmd.AddCommand(homeCmd)
}

func runHome(cmd *cobra.Command, args []string) error {
	model := tui.NewDashboardModel(globalClient)

	p := tea.NewProgram(model, tea.WithAltScreen())
	result, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	final := result.(tui.DashboardModel)
	switch {
	case final.TwoFactorPending():
		fmt.Println("This account has two-factor authentication enabled.")
		fmt.Println("Complete verification on your server's login page, then run 'homefeed login' with the new token.")
	case final.SessionExpired():
		// The API client clears the session on auth failure; make sure the
		// logout path has done the same before pointing at login.
		_ = globalSession.Clear()
		fmt.Printf("Session ended for %s. Run 'homefeed login' to sign in again.\n", globalConfig.Server.APIURL)
	}
	return nil
}
