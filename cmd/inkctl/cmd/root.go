// Package cmd provides the CLI commands for inkctl.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/inkpress/inkctl/internal/config"
)

var (
	cfgFile     string
	sessionPath string
	verbose     bool
	jsonOutput  bool
)

var rootCmd = &cobra.Command{
	Use:   "inkctl",
	Short: "inkctl - blog CMS super-admin CLI",
	Long: `inkctl manages a blog CMS (categories, authors, blog posts, image
uploads) through its super-admin REST API.

Quick start:
  1. Point inkctl at your backend: export INKCTL_API_BASE_URL=https://api.example.com/api
  2. Sign in: inkctl login admin@example.com
  3. Work: inkctl category list

Configuration:
  Config is loaded from inkctl.yaml in the current directory,
  $HOME/.inkctl/, or /etc/inkctl/.

  Environment variables can override config values with the INKCTL_ prefix.
  Example: INKCTL_API_BASE_URL=https://api.example.com/api

  The session (bearer token) is persisted in $HOME/.inkctl/session.json
  and reused until the backend rejects it or you log out.

Commands:
  login       Sign in as the super admin
  logout      Sign out and notify the backend
  whoami      Show the signed-in account
  category    Manage categories
  author      Manage authors
  blog        Manage blog posts
  upload      Upload images
  config      Inspect or generate configuration
  stats       Probe the API and print client metrics
  version     Print version information`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./inkctl.yaml)")
	rootCmd.PersistentFlags().StringVar(&sessionPath, "session", "", "session file (default: ~/.inkctl/session.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print results as JSON")
}

func initConfig() {
	config.InitViper(cfgFile)
}
