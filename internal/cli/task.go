package cli

import (
	"fmt"
	"strconv"

	"github.com/sandeepkv93/taskbook/internal/commands"
	"github.com/sandeepkv93/taskbook/internal/model"
	"github.com/sandeepkv93/taskbook/internal/tracker"
	"github.com/sandeepkv93/taskbook/internal/views"
	"github.com/spf13/cobra"
)

func newTaskCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"t"},
		Args:    cobra.NoArgs,
		Short:   "Create, inspect and change tasks",
	}
	cmd.AddCommand(
		newTaskAddCommand(a),
		newTaskListCommand(a),
		newTaskShowCommand(a),
		newTaskUpdateCommand(a),
		newTaskDoneCommand(a),
		newTaskDeleteCommand(a),
	)
	return cmd
}

func newTaskAddCommand(a *app) *cobra.Command {
	var in tracker.TaskInput
	var due string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			in.Title = args[0]
			if in.Deadline, err = commands.ResolveDate(due, tr.Today()); err != nil {
				return err
			}
			task, err := tr.AddTask(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added task %d (%s, due %s)\n", task.ID, task.Status, task.Deadline)
			return nil
		},
	}
	cmd.Flags().StringVarP(&due, "due", "d", "tomorrow", "deadline: YYYY-MM-DD, today, tomorrow or +N days")
	cmd.Flags().StringVar(&in.Description, "description", "", "free-form description (markdown)")
	cmd.Flags().StringVar(&in.Category, "category", model.ProtectedCategory, "category name")
	cmd.Flags().StringVar(&in.Priority, "priority", model.ProtectedPriority, "priority name")
	return cmd
}

func newTaskListCommand(a *app) *cobra.Command {
	var category, priority, status string
	var upcoming, delayed bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks, optionally filtered",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			var tasks []model.Task
			switch {
			case upcoming:
				tasks = tr.Upcoming()
			case delayed:
				tasks = tr.Delayed()
			default:
				tasks = tr.Filter(category, priority, status)
			}
			fmt.Fprintln(cmd.OutOrStdout(), views.TaskTable(tasks))
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", tracker.FilterAll, "only this category")
	cmd.Flags().StringVar(&priority, "priority", tracker.FilterAll, "only this priority")
	cmd.Flags().StringVar(&status, "status", tracker.FilterAll, "only this status")
	cmd.Flags().BoolVar(&upcoming, "upcoming", false, "only unfinished tasks due within the upcoming window")
	cmd.Flags().BoolVar(&delayed, "delayed", false, "only delayed tasks")
	cmd.MarkFlagsMutuallyExclusive("upcoming", "delayed")
	return cmd
}

func newTaskShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one task with its reminders",
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
			task, ok := tr.Task(id)
			if !ok {
				return fmt.Errorf("%w: task %d", tracker.ErrNotFound, id)
			}
			fmt.Fprintln(cmd.OutOrStdout(), views.TaskDetail(task, 80))
			return nil
		},
	}
}

func newTaskUpdateCommand(a *app) *cobra.Command {
	var title, description, category, priority, due, status string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a task",
		Long: `Change fields of a task. Unset flags keep their current value.
A deadline in the past moves the task to Delayed unless the status is
Completed or Postponed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			tr, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			task, ok := tr.Task(id)
			if !ok {
				return fmt.Errorf("%w: task %d", tracker.ErrNotFound, id)
			}

			in := tracker.TaskInput{
				Title:       task.Title,
				Description: task.Description,
				Category:    task.Category,
				Priority:    task.Priority,
				Deadline:    task.Deadline,
			}
			flags := cmd.Flags()
			if flags.Changed("title") {
				in.Title = title
			}
			if flags.Changed("description") {
				in.Description = description
			}
			if flags.Changed("category") {
				in.Category = category
			}
			if flags.Changed("priority") {
				in.Priority = priority
			}
			if flags.Changed("due") {
				if in.Deadline, err = commands.ResolveDate(due, tr.Today()); err != nil {
					return err
				}
			}
			next := task.Status
			if flags.Changed("status") {
				if next, err = model.ParseStatus(status); err != nil {
					return err
				}
			}
			next = model.StatusForEdit(in.Deadline, next, tr.Today())

			updated, err := tr.UpdateTask(cmd.Context(), id, in, next)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated task %d (%s, due %s, %d reminders)\n",
				updated.ID, updated.Status, updated.Deadline, len(updated.Reminders))
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&title, "title", "", "new title")
	flags.StringVar(&description, "description", "", "new description")
	flags.StringVar(&category, "category", "", "new category")
	flags.StringVar(&priority, "priority", "", "new priority")
	flags.StringVarP(&due, "due", "d", "", "new deadline")
	flags.StringVarP(&status, "status", "s", "", "new status: Open, In Progress, Postponed, Delayed, Completed")
	return cmd
}

func newTaskDoneCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task completed and drop its reminders",
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
			if _, err := tr.CompleteTask(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "completed task %d\n", id)
			return nil
		},
	}
}

func newTaskDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a task and its reminders",
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
			if err := tr.DeleteTask(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted task %d\n", id)
			return nil
		},
	}
}

func parseID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}
