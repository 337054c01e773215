package cli

import (
	"context"
	"fmt"

	"github.com/sandeepkv93/taskbook/internal/tracker"
	"github.com/spf13/cobra"
)

// registry binds the category and priority commands to their tracker calls.
type registry struct {
	name    string
	list    func(*tracker.Tracker) []string
	add     func(*tracker.Tracker, context.Context, string) error
	remove  func(*tracker.Tracker, context.Context, string) (int, error)
	rename  func(*tracker.Tracker, context.Context, string, string) error
	removed string
}

var categoryRegistry = registry{
	name:    "category",
	list:    (*tracker.Tracker).Categories,
	add:     (*tracker.Tracker).AddCategory,
	remove:  (*tracker.Tracker).DeleteCategory,
	rename:  (*tracker.Tracker).RenameCategory,
	removed: "tasks deleted",
}

var priorityRegistry = registry{
	name:    "priority",
	list:    (*tracker.Tracker).Priorities,
	add:     (*tracker.Tracker).AddPriority,
	remove:  (*tracker.Tracker).DeletePriority,
	rename:  (*tracker.Tracker).RenamePriority,
	removed: "tasks moved to Default",
}

func newRegistryCommand(a *app, r registry) *cobra.Command {
	cmd := &cobra.Command{
		Use:   r.name,
		Args:  cobra.NoArgs,
		Short: fmt.Sprintf("Manage the %s list", r.name),
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:     "list",
			Aliases: []string{"ls"},
			Short:   fmt.Sprintf("List %s names", r.name),
			Args:    cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				tr, err := a.open(cmd.Context())
				if err != nil {
					return err
				}
				for _, name := range r.list(tr) {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "add <name>",
			Short: fmt.Sprintf("Add a %s", r.name),
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				tr, err := a.open(cmd.Context())
				if err != nil {
					return err
				}
				if err := r.add(tr, cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "added %s %q\n", r.name, args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:     "delete <name>",
			Aliases: []string{"rm"},
			Short:   fmt.Sprintf("Delete a %s", r.name),
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				tr, err := a.open(cmd.Context())
				if err != nil {
					return err
				}
				n, err := r.remove(tr, cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %s %q (%d %s)\n", r.name, args[0], n, r.removed)
				return nil
			},
		},
		&cobra.Command{
			Use:   "rename <old> <new>",
			Short: fmt.Sprintf("Rename a %s and retarget its tasks", r.name),
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				tr, err := a.open(cmd.Context())
				if err != nil {
					return err
				}
				if err := r.rename(tr, cmd.Context(), args[0], args[1]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "renamed %s %q to %q\n", r.name, args[0], args[1])
				return nil
			},
		},
	)
	return cmd
}
