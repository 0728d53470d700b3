package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sadopc/fitsync/internal/app"
	"github.com/sadopc/fitsync/internal/model"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "View and change app settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App, e *env) error {
			s := a.Settings()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Daily reset hour:  %d\n", s.DailyResetHour)
			fmt.Fprintf(out, "Notifications:     %v\n", s.NotificationsEnabled)
			fmt.Fprintf(out, "Dark mode:         %v\n", s.DarkMode)
			fmt.Fprintln(out, "Exercise catalog:")
			for _, name := range s.ExerciseList {
				fmt.Fprintf(out, "  - %s\n", name)
			}
			return nil
		})
	},
}

var (
	settingsResetHour     int
	settingsNotifications bool
	settingsDarkMode      bool
)

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change settings fields",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App, e *env) error {
			var patch model.SettingsPatch
			if cmd.Flags().Changed("reset-hour") {
				patch.DailyResetHour = &settingsResetHour
			}
			if cmd.Flags().Changed("notifications") {
				patch.NotificationsEnabled = &settingsNotifications
			}
			if cmd.Flags().Changed("dark-mode") {
				patch.DarkMode = &settingsDarkMode
			}
			s, err := a.UpdateSettings(patch)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Settings updated: reset hour %d, notifications %v, dark mode %v\n",
				s.DailyResetHour, s.NotificationsEnabled, s.DarkMode)
			return nil
		})
	},
}

var settingsCatalogAddCmd = &cobra.Command{
	Use:   "catalog-add <exercise>",
	Short: "Add an exercise to the catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App, e *env) error {
			s, err := a.AddExerciseToCatalog(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Catalog now has %d exercises.\n", len(s.ExerciseList))
			return nil
		})
	},
}

func init() {
	settingsSetCmd.Flags().IntVar(&settingsResetHour, "reset-hour", 0, "Hour of day tasks reset (0-23)")
	settingsSetCmd.Flags().BoolVar(&settingsNotifications, "notifications", true, "Enable notifications")
	settingsSetCmd.Flags().BoolVar(&settingsDarkMode, "dark-mode", true, "Enable dark mode")
	settingsCmd.AddCommand(settingsSetCmd, settingsCatalogAddCmd)
	rootCmd.AddCommand(settingsCmd)
}
