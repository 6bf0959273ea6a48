package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var loginPassword string

var loginCmd = &cobra.Command{
	Use:   "login [email]",
	Short: "Sign in as the super admin",
	Long: `Sign in with the super-admin account and persist the session.

Only an account with the superadmin role may sign in; valid credentials
for any other role are rejected.

The password is prompted for when --password is not given.

Security note: --password will appear in shell history. Prefer the
prompt, or pass an environment variable:
  inkctl login admin@example.com --password "$INKCTL_PASSWORD"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "password (prompted when omitted)")
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}

	reader := bufio.NewReader(os.Stdin)

	var email string
	if len(args) == 1 {
		email = args[0]
	} else {
		fmt.Fprint(os.Stderr, "Email: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("read email: %w", err)
		}
		email = strings.TrimSpace(line)
	}

	password := loginPassword
	if password == "" {
		fmt.Fprint(os.Stderr, "Password: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		password = strings.TrimSpace(line)
	}

	if err := app.store.Login(cmd.Context(), email, password); err != nil {
		return err
	}

	user := app.store.CurrentUser()
	fmt.Fprintf(os.Stdout, "Logged in as %s (%s)\n", user.Name, user.Email)
	return nil
}
