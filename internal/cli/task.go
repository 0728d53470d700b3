package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sadopc/fitsync/internal/app"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage checklist tasks",
}

var (
	taskDueDate string
	taskXP      int
)

var taskAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App, e *env) error {
			t, err := a.AddTask(app.AddTaskInput{
				Title:    args[0],
				DueDate:  taskDueDate,
				XPReward: taskXP,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added task %s (%d XP on completion)\n", t.ID, t.XPReward)
			return nil
		})
	},
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App, e *env) error {
			tasks := a.Tasks()
			if len(tasks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tasks.")
				return nil
			}
			for _, t := range tasks {
				mark := " "
				if t.Completed {
					mark = "x"
				}
				due := t.DueDate
				if due == "" {
					due = "-"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "[%s] %-40s due %-12s %4d XP  %s\n",
					mark, t.Title, due, t.XPReward, t.ID)
			}
			return nil
		})
	},
}

var taskDoneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Toggle a task's completion",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App, e *env) error {
			t, err := a.ToggleTask(args[0])
			if err != nil {
				return err
			}
			if t.Completed {
				p := a.Profile()
				fmt.Fprintf(cmd.OutOrStdout(), "Completed %q (+%d XP, now level %d)\n", t.Title, t.XPReward, p.Level)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Reopened %q\n", t.Title)
			}
			return nil
		})
	},
}

var taskRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App, e *env) error {
			if err := a.DeleteTask(args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Deleted.")
			return nil
		})
	},
}

func init() {
	taskAddCmd.Flags().StringVar(&taskDueDate, "due", "", "Due date (YYYY-MM-DD)")
	taskAddCmd.Flags().IntVar(&taskXP, "xp", 0, "XP reward (default 50)")
	taskCmd.AddCommand(taskAddCmd, taskListCmd, taskDoneCmd, taskRmCmd)
	rootCmd.AddCommand(taskCmd)
}
