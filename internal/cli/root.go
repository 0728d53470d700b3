// Package cli wires the command surface over the state container. Commands
// are thin consumers: every mutation goes through app operations, never
// through the store or gateway directly.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sadopc/fitsync/internal/app"
	"github.com/sadopc/fitsync/internal/autosave"
	"github.com/sadopc/fitsync/internal/config"
	"github.com/sadopc/fitsync/internal/gateway"
	"github.com/sadopc/fitsync/internal/session"
	"github.com/sadopc/fitsync/internal/store"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "fitsync",
	Short: "fitsync tracks workouts, meals, and XP with optional cloud sync",
	Long: "fitsync is a local-first fitness tracker: tasks, meals, workouts, and a\n" +
		"gamified XP profile, kept on disk and synced to a configured backend when\n" +
		"you are signed in.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

// env carries everything a command may need beyond the container itself.
type env struct {
	cfg      config.Config
	sess     session.Session
	provider session.Provider
	saver    *autosave.Daemon
}

// withApp builds the full stack (config, store, gateway, container,
// autosave daemon), applies the persisted identity, runs fn, and tears
// down: draining remote writes and running the teardown flush.
func withApp(fn func(a *app.App, e *env) error) error {
	log := newLogger()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	st, err := store.New(cfg.DBPath(), log)
	if err != nil {
		return fmt.Errorf("open local store: %w", err)
	}
	defer st.Close()

	sess, err := session.Load(cfg.SessionPath())
	if err != nil {
		return err
	}

	var gw app.Gateway
	if cfg.BackendConfigured() {
		client, err := gateway.New(gateway.Config{
			BaseURL: cfg.BackendURL,
			APIKey:  cfg.BackendAPIKey,
			Logger:  log,
		})
		if err != nil {
			return err
		}
		gw = client
	}

	a := app.New(st, gw, log)

	provider := session.Static{ID: sess.UserID, Backend: cfg.BackendConfigured()}
	saver := autosave.New(a.FlushProfile, func() bool {
		return provider.Configured() && a.UserID() != ""
	}, autosave.Options{
		Interval: cfg.AutosaveInterval,
		Debounce: cfg.AutosaveDebounce,
		Logger:   log,
	})
	a.SetDirtyHook(saver.MarkDirty)
	saver.Start()

	a.SetIdentity(context.Background(), provider.UserID())

	runErr := fn(a, &env{cfg: cfg, sess: sess, provider: provider, saver: saver})

	a.WaitRemote()
	saver.Close()
	return runErr
}
