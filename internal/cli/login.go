package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sadopc/fitsync/internal/app"
	"github.com/sadopc/fitsync/internal/session"
)

var (
	loginUserID string
	loginEmail  string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with a user id and start syncing",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID := strings.TrimSpace(loginUserID)
		if userID == "" {
			return fmt.Errorf("--user is required")
		}
		return withApp(func(a *app.App, e *env) error {
			if !e.cfg.BackendConfigured() {
				fmt.Fprintln(cmd.OutOrStdout(), "Backend is not configured; staying in local-only mode.")
			}
			if err := session.Save(e.cfg.SessionPath(), session.Session{UserID: userID, Email: loginEmail}); err != nil {
				return err
			}
			a.SetIdentity(cmd.Context(), userID)
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", userID)
			return nil
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and purge local data",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App, e *env) error {
			if err := session.Clear(e.cfg.SessionPath()); err != nil {
				return err
			}
			a.ResetAllData()
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out. Local data reset to defaults.")
			return nil
		})
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginUserID, "user", "", "User id to sign in as")
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Email to record in the session")
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}
