package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear the saved session",
	Long: `Sign out of the current session.

The server is notified so it can revoke the token, then the local
session file is cleared. The local session is cleared even when the
server cannot be reached.

Use --all to revoke every active session for the account, not just
this one.`,
	Args: cobra.NoArgs,
	RunE: runLogout,
}

var logoutAll bool

func init() {
	logoutCmd.Flags().BoolVar(&logoutAll, "all", false, "revoke all sessions for the account")
	rootCmd.AddCommand(logoutCmd)
}

func runLogout(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}

	if logoutAll && app.store.IsAuthenticated() {
		if err := app.auth.LogoutAll(cmd.Context()); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not revoke other sessions: %v\n", err)
		}
	}

	app.store.Logout(cmd.Context())
	fmt.Fprintln(os.Stdout, "Logged out.")
	return nil
}
