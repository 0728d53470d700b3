package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sadopc/fitsync/internal/app"
)

var workoutCmd = &cobra.Command{
	Use:   "workout",
	Short: "Compose and save workout sessions",
}

var (
	exerciseSets   int
	exerciseReps   int
	exerciseWeight float64
	exerciseNotes  string

	workoutDuration int
	workoutNotes    string
	workoutXP       int
)

var exerciseAddCmd = &cobra.Command{
	Use:   "exercise <name>",
	Short: "Add an exercise to the active workout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App, e *env) error {
			ex, err := a.AddExercise(app.AddExerciseInput{
				Name:   args[0],
				Sets:   exerciseSets,
				Reps:   exerciseReps,
				Weight: exerciseWeight,
				Notes:  exerciseNotes,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s: %dx%d @ %.1fkg (%s)\n", ex.Name, ex.Sets, ex.Reps, ex.Weight, ex.ID)
			return nil
		})
	},
}

var exerciseSetDoneCmd = &cobra.Command{
	Use:   "set-done <exercise-id>",
	Short: "Mark one more set of an exercise as done",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App, e *env) error {
			ex, err := a.CompleteSet(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %d/%d sets\n", ex.Name, ex.CompletedSets, ex.Sets)
			if ex.CompletedSets == ex.Sets {
				fmt.Fprintln(out, "Exercise complete!")
			}
			return nil
		})
	},
}

var exerciseRmCmd = &cobra.Command{
	Use:   "exercise-rm <exercise-id>",
	Short: "Remove an exercise from the active workout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App, e *env) error {
			if err := a.DeleteExercise(args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Removed.")
			return nil
		})
	},
}

var workoutActiveCmd = &cobra.Command{
	Use:   "active",
	Short: "Show the active workout composition",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App, e *env) error {
			exs := a.Exercises()
			if len(exs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No active workout. Add exercises with `fitsync workout exercise`.")
				return nil
			}
			for _, ex := range exs {
				fmt.Fprintf(cmd.OutOrStdout(), "%-25s %d/%d sets x %d reps @ %.1fkg  %s\n",
					ex.Name, ex.CompletedSets, ex.Sets, ex.Reps, ex.Weight, ex.ID)
			}
			return nil
		})
	},
}

var workoutSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Finalize the active workout into a saved session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App, e *env) error {
			w, err := a.SaveWorkout(app.SaveWorkoutInput{
				Duration: workoutDuration,
				Notes:    workoutNotes,
				TotalXP:  workoutXP,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved workout %s: %d exercises, %d min, +%d XP\n",
				w.ID, len(w.Exercises), w.Duration, w.TotalXP)
			return nil
		})
	},
}

var workoutListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved workout sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App, e *env) error {
			workouts := a.Workouts()
			if len(workouts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No saved workouts.")
				return nil
			}
			for _, w := range workouts {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %2d exercises  %3d min  %4d XP  %s\n",
					w.Date.Format("2006-01-02"), len(w.Exercises), w.Duration, w.TotalXP, w.ID)
			}
			return nil
		})
	},
}

var workoutRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a saved workout session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App, e *env) error {
			if err := a.DeleteWorkout(args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Deleted. Earned XP is kept.")
			return nil
		})
	},
}

func init() {
	exerciseAddCmd.Flags().IntVar(&exerciseSets, "sets", 3, "Number of sets")
	exerciseAddCmd.Flags().IntVar(&exerciseReps, "reps", 10, "Reps per set")
	exerciseAddCmd.Flags().Float64Var(&exerciseWeight, "weight", 0, "Weight (kg)")
	exerciseAddCmd.Flags().StringVar(&exerciseNotes, "notes", "", "Notes")

	workoutSaveCmd.Flags().IntVar(&workoutDuration, "duration", 0, "Duration in minutes (required)")
	workoutSaveCmd.Flags().StringVar(&workoutNotes, "notes", "", "Session notes")
	workoutSaveCmd.Flags().IntVar(&workoutXP, "xp", 0, "XP to grant (default 100)")

	workoutCmd.AddCommand(exerciseAddCmd, exerciseSetDoneCmd, exerciseRmCmd,
		workoutActiveCmd, workoutSaveCmd, workoutListCmd, workoutRmCmd)
	rootCmd.AddCommand(workoutCmd)
}
