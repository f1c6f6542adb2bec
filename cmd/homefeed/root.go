// ABOUTME: Root Cobra command and global state for the homefeed CLI.
// ABOUTME: Sets up lifecycle hooks for config loading and API client construction.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/2389-research/homefeed/internal/api"
	"github.com/2389-research/homefeed/internal/config"
	"github.com/2389-research/homefeed/internal/session"
)

var globalConfig *config.Config
var globalSession *session.Store
var globalClient *api.Client

var rootCmd = &cobra.Command{
	Use:   "homefeed",
	Short: "Terminal client for your personal social feed",
	Long: `
██╗  ██╗ ██████╗ ███╗   ███╗███████╗███████╗███████╗███████╗██████╗
██║  ██║██╔═══██╗████╗ ████║██╔════╝██╔════╝██╔════╝██╔════╝██╔══██╗
███████║██║   ██║██╔████╔██║█████╗  █████╗  █████╗  █████╗  ██║  ██║
██╔══██║██║   ██║██║╚██╔╝██║██╔══╝  ██╔══╝  ██╔══╝  ██╔══╝  ██║  ██║
██║  ██║╚██████╔╝██║ ╚═╝ ██║███████╗██║     ███████╗███████╗██████╔╝
╚═╝  ╚═╝ ╚═════╝ ╚═╝     ╚═╝╚══════╝╚═╝     ╚══════╝╚══════╝╚═════╝

View your feed, post with media, find friends, and send requests
from the terminal. All data lives on your homefeed server.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "version" || cmd.Name() == "login" || cmd.Name() == "logout" {
			return nil
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		globalConfig = cfg

		if cfg.Server.APIURL == "" {
			return fmt.Errorf("no server configured - run 'homefeed login' first")
		}

		globalSession = session.NewStore(cfg)
		globalClient = api.NewClient(cfg.Server.APIURL, globalSession)
		return nil
	},
}
