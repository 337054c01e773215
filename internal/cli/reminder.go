package cli

import (
	"fmt"

	"github.com/sandeepkv93/taskbook/internal/commands"
	"github.com/sandeepkv93/taskbook/internal/model"
	"github.com/sandeepkv93/taskbook/internal/tracker"
	"github.com/sandeepkv93/taskbook/internal/views"
	"github.com/spf13/cobra"
)

func newReminderCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "reminder",
		Aliases: []string{"r"},
		Args:    cobra.NoArgs,
		Short:   "Manage task reminders",
	}
	cmd.AddCommand(
		newReminderAddCommand(a),
		newReminderUpdateCommand(a),
		newReminderDeleteCommand(a),
		newReminderListCommand(a),
		newReminderDueCommand(a),
	)
	return cmd
}

// reminderSpec resolves the --type/--on flag pair shared by add and update.
func reminderSpec(tr *tracker.Tracker, typ, on string) (model.ReminderType, model.Date, error) {
	rt, err := model.ParseReminderType(typ)
	if err != nil {
		return "", model.Date{}, err
	}
	if rt != model.ReminderCustom {
		return rt, model.Date{}, nil
	}
	if on == "" {
		return "", model.Date{}, model.ErrCustomDateRequired
	}
	d, err := commands.ResolveDate(on, tr.Today())
	return rt, d, err
}

func newReminderAddCommand(a *app) *cobra.Command {
	var typ, on string
	cmd := &cobra.Command{
		Use:   "add <task-id>",
		Short: "Add a reminder to a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := parseID(args[0])
			if err != nil {
				return err
			}
			tr, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			rt, custom, err := reminderSpec(tr, typ, on)
			if err != nil {
				return err
			}
			r, err := tr.AddReminder(cmd.Context(), taskID, rt, custom)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added reminder %d for task %d on %s\n", r.ID, r.TaskID, r.Date)
			return nil
		},
	}
	cmd.Flags().StringVarP(&typ, "type", "t", string(model.ReminderOneDay), `"1 day", "1 week", "1 month" or "Custom"`)
	cmd.Flags().StringVar(&on, "on", "", "date for a Custom reminder")
	return cmd
}

func newReminderUpdateCommand(a *app) *cobra.Command {
	var typ, on string
	cmd := &cobra.Command{
		Use:   "update <reminder-id>",
		Short: "Change the type or date of a reminder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			tr, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			rt, custom, err := reminderSpec(tr, typ, on)
			if err != nil {
				return err
			}
			r, err := tr.UpdateReminder(cmd.Context(), id, rt, custom)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "reminder %d now on %s\n", r.ID, r.Date)
			return nil
		},
	}
	cmd.Flags().StringVarP(&typ, "type", "t", string(model.ReminderOneDay), `"1 day", "1 week", "1 month" or "Custom"`)
	cmd.Flags().StringVar(&on, "on", "", "date for a Custom reminder")
	return cmd
}

func newReminderDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <reminder-id>",
		Aliases: []string{"rm"},
		Short:   "Delete a reminder",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			tr, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			if err := tr.DeleteReminder(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted reminder %d\n", id)
			return nil
		},
	}
}

func newReminderListCommand(a *app) *cobra.Command {
	var taskID int
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List reminders of all tasks or of one task",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			reminders := tr.Reminders()
			if taskID > 0 {
				if _, ok := tr.Task(taskID); !ok {
					return fmt.Errorf("%w: task %d", tracker.ErrNotFound, taskID)
				}
				reminders = tr.RemindersFor(taskID)
			}
			fmt.Fprintln(cmd.OutOrStdout(), views.ReminderTable(reminders, taskTitles(tr)))
			return nil
		},
	}
	cmd.Flags().IntVar(&taskID, "task", 0, "only reminders of this task")
	return cmd
}

func newReminderDueCommand(a *app) *cobra.Command {
	var on string
	cmd := &cobra.Command{
		Use:   "due",
		Short: "List reminders that fire on a day (default today)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			day, err := commands.ResolveDate(on, tr.Today())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), views.ReminderTable(tr.DueReminders(day), taskTitles(tr)))
			return nil
		},
	}
	cmd.Flags().StringVar(&on, "on", "today", "day to check")
	return cmd
}

func taskTitles(tr *tracker.Tracker) map[int]string {
	titles := make(map[int]string)
	for _, task := range tr.Tasks() {
		titles[task.ID] = task.Title
	}
	return titles
}
