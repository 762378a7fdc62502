package commands

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/sdvig/pkg/app"
	"tableflip.dev/sdvig/pkg/commands/options"
	"tableflip.dev/sdvig/pkg/runner/habit"
)

func addHabit(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "habit",
		Aliases: []string{"habits", "h"},
		Short:   "Track habits",
		Example: `
sdvig habit add stretch --every=weekdays
sdvig habit done <habit id>
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addHabitAdd(cmd)
	addHabitDone(cmd)
	addHabitRemove(cmd)
	addHabitList(cmd)
	addHabitShow(cmd)

	topLevel.AddCommand(cmd)
}

func addHabitAdd(parent *cobra.Command) {
	var every, minimum, at string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a habit",
		Example: `
sdvig habit add read --min="10 pages"
sdvig habit add gym --every=mon,wed,fri --at=07:00
sdvig habit add call parents --every=weekly:2
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a habit title")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, false, func(ctx context.Context, s *app.Store) error {
				r := habit.Add{
					Title:     strings.Join(args, " "),
					Frequency: every,
					MinAmount: minimum,
					Time:      at,
					Store:     s,
				}
				return r.Do(ctx)
			})
		},
	}

	cmd.Flags().StringVar(&every, "every", "daily", `One of "daily", "weekdays", "weekly:N" or a day list like "mon,thu".`)
	cmd.Flags().StringVar(&minimum, "min", "", "The smallest amount that still counts.")
	cmd.Flags().StringVar(&at, "at", "", "Preferred time of day, example: --at=07:30.")

	parent.AddCommand(cmd)
}

func addHabitDone(parent *cobra.Command) {
	do := &options.DateOptions{}

	cmd := &cobra.Command{
		Use:     "done <habit id>",
		Aliases: []string{"check", "x"},
		Short:   "Toggle today's check-in for a habit",
		Example: `
sdvig habit done <habit id>
sdvig habit done <habit id> --on=yesterday
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires a habit id")
			}
			return nil
		},
		ValidArgsFunction: habitCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, false, func(ctx context.Context, s *app.Store) error {
				date, err := do.GetOn(time.Now())
				if err != nil {
					return err
				}
				r := habit.Check{ID: args[0], Date: date, Store: s}
				return r.Do(ctx)
			})
		},
	}

	options.AddOnArgs(cmd, do)

	parent.AddCommand(cmd)
}

func addHabitRemove(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "rm <habit id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a habit",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires a habit id")
			}
			return nil
		},
		ValidArgsFunction: habitCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, false, func(ctx context.Context, s *app.Store) error {
				r := habit.Remove{ID: args[0], Store: s}
				return r.Do(ctx)
			})
		},
	}

	parent.AddCommand(cmd)
}

func addHabitList(parent *cobra.Command) {
	io := &options.IDOptions{}
	vo := &options.ViewOptions{}

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List habits with streaks and weekly completion",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd, false, func(ctx context.Context, s *app.Store) error {
				r := habit.List{ShowID: io.ShowID, DueOnly: vo.Due, Store: s}
				return r.Do(ctx)
			})
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.AddDueArgs(cmd, vo)

	parent.AddCommand(cmd)
}

func addHabitShow(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "show <habit id>",
		Short: "Show a habit's check-ins for this month",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires a habit id")
			}
			return nil
		},
		ValidArgsFunction: habitCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, false, func(ctx context.Context, s *app.Store) error {
				r := habit.Show{ID: args[0], Store: s}
				return r.Do(ctx)
			})
		},
	}

	parent.AddCommand(cmd)
}
