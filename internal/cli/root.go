// Package cli is the taskbook command tree.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/sandeepkv93/taskbook/internal/config"
	"github.com/sandeepkv93/taskbook/internal/logging"
	"github.com/sandeepkv93/taskbook/internal/storage"
	"github.com/sandeepkv93/taskbook/internal/tracker"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	now func() time.Time

	configPath string
	backend    string
	dataPath   string

	cfg     *config.Config
	log     *logrus.Logger
	closeFn func()
	tracker *tracker.Tracker
	loaded  tracker.LoadReport
}

// NewRootCmd creates the root command. Without a subcommand it starts the
// terminal UI.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{now: time.Now})
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "taskbook",
		Short:         "Personal task tracker with categories, priorities and reminders",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.finish()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, a)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "config file (default $HOME/.taskbook/taskbook.yaml)")
	flags.StringVar(&a.backend, "backend", "", "storage backend: json or sqlite")
	flags.StringVar(&a.dataPath, "data", "", "path of the data file for the selected backend")

	rootCmd.AddCommand(
		newTUICommand(a),
		newTaskCommand(a),
		newRegistryCommand(a, categoryRegistry),
		newRegistryCommand(a, priorityRegistry),
		newReminderCommand(a),
		newStatsCommand(a),
		newSearchCommand(a),
		newSweepCommand(a),
	)
	return rootCmd
}

func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.backend != "" {
		cfg.Data.Backend = a.backend
	}
	if a.dataPath != "" {
		if cfg.Data.Backend == storage.BackendSQLite {
			cfg.Data.SQLitePath = a.dataPath
		} else {
			cfg.Data.File = a.dataPath
		}
	}
	log, closeFn, err := logging.New(cfg.Logger)
	if err != nil {
		return err
	}
	a.cfg, a.log, a.closeFn = cfg, log, closeFn
	return nil
}

// open loads the tracker on first use. Subcommands that never touch state
// never read the store.
func (a *app) open(ctx context.Context) (*tracker.Tracker, error) {
	if a.tracker != nil {
		return a.tracker, nil
	}
	store, err := storage.Open(a.cfg.Data.Backend, a.cfg.Data.StorePath())
	if err != nil {
		return nil, err
	}
	tr, err := tracker.Open(ctx, store, tracker.Options{
		Logger:       a.log,
		Now:          a.now,
		UpcomingDays: a.cfg.Query.UpcomingDays,
		OnLoaded: func(r tracker.LoadReport) {
			a.loaded = r
			if len(r.Delayed) > 0 {
				a.log.WithFields(logrus.Fields{"delayed": len(r.Delayed), "swept": r.Swept}).Info("delayed tasks pending")
			}
		},
	})
	if err != nil {
		return nil, err
	}
	a.tracker = tr
	return tr, nil
}

func (a *app) finish() error {
	defer func() {
		if a.closeFn != nil {
			a.closeFn()
		}
	}()
	if a.tracker == nil {
		return nil
	}
	if err := a.tracker.SaveErr(); err != nil {
		return fmt.Errorf("changes were not saved: %w", err)
	}
	return nil
}
