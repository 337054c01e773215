package cli

import (
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskbook/internal/scheduler"
	"github.com/sandeepkv93/taskbook/internal/update"
	"github.com/spf13/cobra"
)

func newTUICommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, a)
		},
	}
}

func runTUI(cmd *cobra.Command, a *app) error {
	// Log lines on stderr would tear the alternate screen.
	if out := strings.TrimSpace(a.cfg.Logger.Output); out == "" || out == "stderr" {
		a.log.SetOutput(io.Discard)
	}

	ctx := cmd.Context()
	tr, err := a.open(ctx)
	if err != nil {
		return err
	}

	engine := scheduler.NewEngine(a.cfg.Reminders.SchedulerBuffer)
	engine.Start()
	defer engine.Stop()

	var notifier update.DesktopNotifier = update.NoopDesktopNotifier{}
	if a.cfg.Reminders.DesktopNotifications {
		notifier = update.ExecDesktopNotifier{}
	}

	m := update.NewModel(update.Options{
		Context:        ctx,
		Tracker:        tr,
		Scheduler:      engine,
		Notifier:       notifier,
		DesktopEnabled: a.cfg.Reminders.DesktopNotifications,
		NotifyHour:     a.cfg.Reminders.NotifyHour,
		Loaded:         a.loaded,
		Logger:         a.log,
		Now:            a.now,
	})
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = program.Run()
	return err
}
