package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sadopc/fitsync/internal/app"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Pull the signed-in user's data from the backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App, e *env) error {
			if a.UserID() == "" {
				return fmt.Errorf("not signed in; run `fitsync login` first")
			}
			if !e.cfg.BackendConfigured() {
				return fmt.Errorf("backend is not configured")
			}
			if err := a.Sync(cmd.Context()); err != nil {
				return fmt.Errorf("sync: %w", err)
			}
			p := a.Profile()
			fmt.Fprintf(cmd.OutOrStdout(), "Synced. Level %d, %d XP, %d tasks, %d meals, %d workouts.\n",
				p.Level, p.XP, len(a.Tasks()), len(a.Meals()), len(a.Workouts()))
			return nil
		})
	},
}

var saveNowCmd = &cobra.Command{
	Use:   "save-now",
	Short: "Push the profile and settings to the backend immediately",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App, e *env) error {
			if a.UserID() == "" || !e.cfg.BackendConfigured() {
				fmt.Fprintln(cmd.OutOrStdout(), "Local-only mode; nothing to push.")
				return nil
			}
			if err := a.FlushProfile(cmd.Context()); err != nil {
				return fmt.Errorf("save: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Profile and settings saved to the backend.")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(saveNowCmd)
}
