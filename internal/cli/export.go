package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sadopc/fitsync/internal/app"
	"github.com/sadopc/fitsync/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export local data to files",
}

var exportOut string

var exportMealsCmd = &cobra.Command{
	Use:   "meals",
	Short: "Export the meal log to CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App, e *env) error {
			path := exportOut
			if path == "" {
				path = "meals.csv"
			}
			meals := a.Meals()
			if err := export.MealsToCSV(meals, path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d meals to %s\n", len(meals), path)
			return nil
		})
	},
}

var exportWorkoutsCmd = &cobra.Command{
	Use:   "workouts",
	Short: "Export the workout history to JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App, e *env) error {
			path := exportOut
			if path == "" {
				path = "workouts.json"
			}
			workouts := a.Workouts()
			if err := export.WorkoutsToJSON(workouts, path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d workouts to %s\n", len(workouts), path)
			return nil
		})
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Wipe all local data and restore defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App, e *env) error {
			a.ResetAllData()
			fmt.Fprintln(cmd.OutOrStdout(), "Local data wiped. Remote data is untouched.")
			return nil
		})
	},
}

func init() {
	exportCmd.PersistentFlags().StringVar(&exportOut, "out", "", "Output file path")
	exportCmd.AddCommand(exportMealsCmd, exportWorkoutsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(resetCmd)
}
