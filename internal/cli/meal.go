package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sadopc/fitsync/internal/app"
	"github.com/sadopc/fitsync/internal/model"
)

var mealCmd = &cobra.Command{
	Use:   "meal",
	Short: "Log and manage meals",
}

var (
	mealCalories int
	mealProtein  int
	mealCarbs    int
	mealFats     int
	mealType     string
)

var mealAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Log a meal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App, e *env) error {
			m, err := a.AddMeal(app.AddMealInput{
				Name:     args[0],
				Calories: mealCalories,
				Protein:  mealProtein,
				Carbs:    mealCarbs,
				Fats:     mealFats,
				MealType: model.MealType(mealType),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %q: %d kcal (+%d XP)\n", m.Name, m.Calories, model.MealXPBonus)
			return nil
		})
	},
}

var mealListCmd = &cobra.Command{
	Use:   "list",
	Short: "List logged meals",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App, e *env) error {
			meals := a.Meals()
			if len(meals) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No meals logged.")
				return nil
			}
			var calories, protein, carbs, fats int
			for _, m := range meals {
				kind := string(m.MealType)
				if kind == "" {
					kind = "-"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-30s %-10s %5d kcal  P%-4d C%-4d F%-4d  %s\n",
					m.Name, kind, m.Calories, m.Protein, m.Carbs, m.Fats, m.ID)
				calories += m.Calories
				protein += m.Protein
				carbs += m.Carbs
				fats += m.Fats
			}
			p := a.Profile()
			fmt.Fprintf(cmd.OutOrStdout(), "\nTotal: %d/%d kcal  P%d/%d  C%d/%d  F%d/%d\n",
				calories, p.CaloriesGoal, protein, p.ProteinGoal, carbs, p.CarbsGoal, fats, p.FatsGoal)
			return nil
		})
	},
}

var mealRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a logged meal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App, e *env) error {
			if err := a.DeleteMeal(args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Deleted.")
			return nil
		})
	},
}

func init() {
	mealAddCmd.Flags().IntVar(&mealCalories, "calories", 0, "Calories")
	mealAddCmd.Flags().IntVar(&mealProtein, "protein", 0, "Protein (g)")
	mealAddCmd.Flags().IntVar(&mealCarbs, "carbs", 0, "Carbs (g)")
	mealAddCmd.Flags().IntVar(&mealFats, "fats", 0, "Fats (g)")
	mealAddCmd.Flags().StringVar(&mealType, "type", "", "breakfast|lunch|dinner|snack")
	mealCmd.AddCommand(mealAddCmd, mealListCmd, mealRmCmd)
	rootCmd.AddCommand(mealCmd)
}
