package cli

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sadopc/fitsync/internal/app"
	"github.com/sadopc/fitsync/internal/model"
)

var friendCmd = &cobra.Command{
	Use:   "friend",
	Short: "Manage the friends leaderboard",
}

var (
	friendXPFlag     int
	friendAvatarFlag string
)

var friendAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a friend to the leaderboard",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App, e *env) error {
			f, err := a.AddFriend(app.AddFriendInput{
				Name:   args[0],
				XP:     friendXPFlag,
				Avatar: friendAvatarFlag,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s: level %d %s (%s)\n", f.Name, f.Level, f.Tier, f.ID)
			return nil
		})
	},
}

var friendListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the leaderboard, user included",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App, e *env) error {
			type row struct {
				name string
				xp   int
				lvl  int
				tier string
				you  bool
			}
			p := a.Profile()
			rows := []row{{name: p.Name, xp: p.XP, lvl: p.Level, tier: model.TierForLevel(p.Level), you: true}}
			for _, f := range a.Friends() {
				rows = append(rows, row{name: f.Name, xp: f.XP, lvl: f.Level, tier: f.Tier})
			}
			sort.SliceStable(rows, func(i, j int) bool { return rows[i].xp > rows[j].xp })

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, leaderboardTitle.Render("Leaderboard"))
			for i, r := range rows {
				name := r.name
				if r.you {
					name += " (you)"
				}
				line := fmt.Sprintf("%2d. %-25s lvl %-3d %-9s %6d XP", i+1, name, r.lvl, r.tier, r.xp)
				if r.you {
					line = leaderboardSelf.Render(line)
				}
				fmt.Fprintln(out, line)
			}
			return nil
		})
	},
}

var friendXPCmd = &cobra.Command{
	Use:   "xp <id> <xp>",
	Short: "Set a friend's XP; level and tier are re-derived",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		xp, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("xp must be a number: %w", err)
		}
		return withApp(func(a *app.App, e *env) error {
			f, err := a.UpdateFriendXP(args[0], xp)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now level %d %s (%d XP)\n", f.Name, f.Level, f.Tier, f.XP)
			return nil
		})
	},
}

var friendRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a friend from the leaderboard",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App, e *env) error {
			if err := a.RemoveFriend(args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Removed.")
			return nil
		})
	},
}

func init() {
	friendAddCmd.Flags().IntVar(&friendXPFlag, "xp", 0, "Starting XP")
	friendAddCmd.Flags().StringVar(&friendAvatarFlag, "avatar", "", "Avatar URL")
	friendCmd.AddCommand(friendAddCmd, friendListCmd, friendXPCmd, friendRmCmd)
	rootCmd.AddCommand(friendCmd)
}
