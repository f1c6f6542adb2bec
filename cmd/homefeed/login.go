// ABOUTME: Cobra commands for interactive login and logout.
// ABOUTME: Launches a bubbletea wizard to collect, validate, and persist the bearer token.
package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/2389-research/homefeed/internal/config"
	"github.com/2389-research/homefeed/internal/session"
	"github.com/2389-research/homefeed/internal/tui"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Connect your homefeed account",
	Long:  "Interactive wizard to configure the server URL and bearer token.",
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session",
	Long:  "Remove the persisted bearer token and username from the config file.",
	RunE:  runLogout,
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	model := tui.NewLoginModel(cfg.Server.APIURL, cfg.Auth.Token)

	p := tea.NewProgram(model)
	result, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	final := result.(tui.LoginModel)
	if !final.ShouldSave() {
		fmt.Println("Login cancelled.")
		return nil
	}

	apiURL, token, username := final.Result()
	cfg.Server.APIURL = apiURL
	cfg.Auth.Token = token
	cfg.Auth.Username = username

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("Logged in as %s\n", username)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Clear is idempotent: logging out while already logged out succeeds.
	if err := session.NewStore(cfg).Clear(); err != nil {
		return err
	}
	fmt.Println("Logged out.")
	return nil
}
