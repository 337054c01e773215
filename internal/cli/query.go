package cli

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/taskbook/internal/tracker"
	"github.com/sandeepkv93/taskbook/internal/views"
	"github.com/spf13/cobra"
)

func newStatsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show task counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), views.StatsLine(tr.Stats()))
			return nil
		},
	}
}

func newSearchCommand(a *app) *cobra.Command {
	var category, priority string
	var ignoreCase bool

	cmd := &cobra.Command{
		Use:   "search <keyword>",
		Short: "Find tasks by keyword",
		Long: `Find tasks whose title or description contains the keyword (case-sensitive).
With --ignore-case, --category or --priority the keyword is matched against
titles only, ignoring case, and the other criteria must match exactly.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			keyword := strings.Join(args, " ")
			flags := cmd.Flags()
			if ignoreCase || flags.Changed("category") || flags.Changed("priority") {
				fmt.Fprintln(cmd.OutOrStdout(), views.TaskTable(tr.Find(tracker.Criteria{
					Keyword:  keyword,
					Category: category,
					Priority: priority,
				})))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), views.TaskTable(tr.Search(keyword)))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&ignoreCase, "ignore-case", "i", false, "match titles ignoring case")
	cmd.Flags().StringVar(&category, "category", "", "require this category")
	cmd.Flags().StringVar(&priority, "priority", "", "require this priority")
	return cmd
}

func newSweepCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Mark overdue tasks as delayed",
		Long: `Mark overdue tasks as delayed. This also happens every time the
task list is loaded; the command reports what is delayed now.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			moved := a.loaded.Swept + tr.SweepOverdue(cmd.Context())
			delayed := tr.Delayed()
			fmt.Fprintf(cmd.OutOrStdout(), "%d tasks moved to Delayed, %d delayed in total\n", moved, len(delayed))
			if len(delayed) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), views.TaskTable(delayed))
			}
			return nil
		},
	}
}
