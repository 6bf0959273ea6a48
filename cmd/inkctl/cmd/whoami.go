package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in account",
	Long: `Show the account for the current session.

By default the saved session is shown without contacting the server.
Use --remote to fetch the profile from the server, which also verifies
that the token is still valid.`,
	Args: cobra.NoArgs,
	RunE: runWhoami,
}

var whoamiRemote bool

func init() {
	whoamiCmd.Flags().BoolVar(&whoamiRemote, "remote", false, "fetch profile from the server")
	rootCmd.AddCommand(whoamiCmd)
}

func runWhoami(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}

	if !app.store.IsAuthenticated() {
		return fmt.Errorf("not logged in, run 'inkctl login' first")
	}

	user := app.store.CurrentUser()
	if whoamiRemote {
		user, err = app.auth.Profile(cmd.Context())
		if err != nil {
			return err
		}
	}

	return printResult(user, func() {
		fmt.Fprintf(os.Stdout, "Name:   %s\n", user.Name)
		fmt.Fprintf(os.Stdout, "Email:  %s\n", user.Email)
		fmt.Fprintf(os.Stdout, "Role:   %s\n", user.Role)
		fmt.Fprintf(os.Stdout, "Active: %t\n", user.IsActive)
	})
}
