package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sadopc/fitsync/internal/app"
	"github.com/sadopc/fitsync/internal/model"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Update profile name and nutrition goals",
}

var (
	profileName     string
	profileCalories int
	profileProtein  int
	profileCarbs    int
	profileFats     int
)

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change profile fields; XP and level are never set directly",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App, e *env) error {
			var patch model.ProfilePatch
			if cmd.Flags().Changed("name") {
				patch.Name = &profileName
			}
			if cmd.Flags().Changed("calories") {
				patch.CaloriesGoal = &profileCalories
			}
			if cmd.Flags().Changed("protein") {
				patch.ProteinGoal = &profileProtein
			}
			if cmd.Flags().Changed("carbs") {
				patch.CarbsGoal = &profileCarbs
			}
			if cmd.Flags().Changed("fats") {
				patch.FatsGoal = &profileFats
			}
			p, err := a.UpdateProfile(patch)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d kcal, P%dg C%dg F%dg\n",
				p.Name, p.CaloriesGoal, p.ProteinGoal, p.CarbsGoal, p.FatsGoal)
			return nil
		})
	},
}

func init() {
	profileSetCmd.Flags().StringVar(&profileName, "name", "", "Display name")
	profileSetCmd.Flags().IntVar(&profileCalories, "calories", 0, "Daily calories goal")
	profileSetCmd.Flags().IntVar(&profileProtein, "protein", 0, "Daily protein goal (g)")
	profileSetCmd.Flags().IntVar(&profileCarbs, "carbs", 0, "Daily carbs goal (g)")
	profileSetCmd.Flags().IntVar(&profileFats, "fats", 0, "Daily fats goal (g)")
	profileCmd.AddCommand(profileSetCmd)
	rootCmd.AddCommand(profileCmd)
}
