package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/sadopc/fitsync/internal/app"
	"github.com/sadopc/fitsync/internal/model"
)

var (
	statusTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	statusLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusValue = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	xpBarFill   = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	xpBarEmpty  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))

	leaderboardTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	leaderboardSelf  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
)

func xpBar(xp int, width int) string {
	into := xp % model.XPPerLevel
	filled := into * width / model.XPPerLevel
	return xpBarFill.Render(strings.Repeat("█", filled)) +
		xpBarEmpty.Render(strings.Repeat("░", width-filled))
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show profile, XP, and sync state",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App, e *env) error {
			p := a.Profile()
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, statusTitle.Render(p.Name))
			fmt.Fprintf(out, "%s %s\n",
				statusLabel.Render("Level"),
				statusValue.Render(fmt.Sprintf("%d (%s)", p.Level, model.TierForLevel(p.Level))))
			fmt.Fprintf(out, "%s %s %s\n",
				statusLabel.Render("XP   "),
				xpBar(p.XP, 20),
				statusValue.Render(fmt.Sprintf("%d/%d", p.XP%model.XPPerLevel, model.XPPerLevel)))
			fmt.Fprintf(out, "%s %s\n",
				statusLabel.Render("Goals"),
				statusValue.Render(fmt.Sprintf("%d kcal, P%dg C%dg F%dg",
					p.CaloriesGoal, p.ProteinGoal, p.CarbsGoal, p.FatsGoal)))

			fmt.Fprintln(out)
			switch {
			case a.UserID() == "":
				fmt.Fprintln(out, statusLabel.Render("Mode "), statusValue.Render("local-only (not signed in)"))
			case !e.cfg.BackendConfigured():
				fmt.Fprintln(out, statusLabel.Render("Mode "), statusValue.Render("local-only (backend not configured)"))
			default:
				fmt.Fprintf(out, "%s %s\n", statusLabel.Render("Mode "),
					statusValue.Render("cloud sync as "+a.UserID()))
				if last := a.LastSync(); !last.IsZero() {
					fmt.Fprintf(out, "%s %s\n", statusLabel.Render("Sync "),
						statusValue.Render("last pulled "+last.Local().Format("2006-01-02 15:04:05")))
				}
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
