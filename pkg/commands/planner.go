package commands

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/sdvig/pkg/app"
	"tableflip.dev/sdvig/pkg/commands/options"
	"tableflip.dev/sdvig/pkg/runner/planner"
)

func requireID(noun string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) != 1 {
			return errors.New("requires " + noun + " id")
		}
		return nil
	}
}

func addEvent(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "event",
		Aliases: []string{"events", "e"},
		Short:   "Plan events",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addEventAdd(cmd)
	addEventToggle(cmd, "done", "Toggle an event as attended", func(id string, s *app.Store) runner {
		return &planner.CompleteEvent{ID: id, Store: s}
	})
	addEventToggle(cmd, "tomorrow", "Move an event to the next day", func(id string, s *app.Store) runner {
		return &planner.Tomorrow{ID: id, Store: s}
	})
	addEventToggle(cmd, "rm", "Delete an event", func(id string, s *app.Store) runner {
		return &planner.RemoveEvent{ID: id, Store: s}
	})
	addEventList(cmd)

	topLevel.AddCommand(cmd)
}

// runner is what every runner package exposes.
type runner interface {
	Do(ctx context.Context) error
}

func addEventAdd(parent *cobra.Command) {
	do := &options.DateOptions{}
	var at, note string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add an event",
		Example: `
sdvig event add a fun party --on=1999-12-31 --at=21:00
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires an event title")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, false, func(ctx context.Context, s *app.Store) error {
				date, err := do.GetOn(time.Now())
				if err != nil {
					return err
				}
				r := planner.AddEvent{
					Title: strings.Join(args, " "),
					Date:  date,
					Time:  at,
					Note:  note,
					Store: s,
				}
				return r.Do(ctx)
			})
		},
	}

	options.AddOnArgs(cmd, do)
	cmd.Flags().StringVar(&at, "at", "", "Start time, example: --at=18:30.")
	cmd.Flags().StringVar(&note, "note", "", "Free-form note.")

	parent.AddCommand(cmd)
}

func addEventToggle(parent *cobra.Command, use, short string, build func(string, *app.Store) runner) {
	cmd := &cobra.Command{
		Use:               use + " <event id>",
		Short:             short,
		Args:              requireID("an event"),
		ValidArgsFunction: eventCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, false, func(ctx context.Context, s *app.Store) error {
				return build(args[0], s).Do(ctx)
			})
		},
	}

	parent.AddCommand(cmd)
}

func addEventList(parent *cobra.Command) {
	io := &options.IDOptions{}
	vo := &options.ViewOptions{}

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List upcoming events, or a month agenda",
		Example: `
sdvig event ls
sdvig event ls --month=2024-07
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd, false, func(ctx context.Context, s *app.Store) error {
				r := planner.ListEvents{ShowID: io.ShowID, Month: vo.Month, Store: s}
				return r.Do(ctx)
			})
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.AddMonthArgs(cmd, vo)

	parent.AddCommand(cmd)
}

func addRoutine(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	var at string

	cmd := &cobra.Command{
		Use:     "routine",
		Aliases: []string{"routines", "r"},
		Short:   "Show today's routine",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd, false, func(ctx context.Context, s *app.Store) error {
				r := planner.ListRoutines{ShowID: io.ShowID, Store: s}
				return r.Do(ctx)
			})
		},
	}
	options.AddShowIDArgs(cmd, io)

	add := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a routine item",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a routine title")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, false, func(ctx context.Context, s *app.Store) error {
				r := planner.AddRoutine{Title: strings.Join(args, " "), Time: at, Store: s}
				return r.Do(ctx)
			})
		},
	}
	add.Flags().StringVar(&at, "at", "", "Time of day, example: --at=07:00.")

	done := &cobra.Command{
		Use:   "done <routine id>",
		Short: "Toggle a routine item for today",
		Args:  requireID("a routine"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, false, func(ctx context.Context, s *app.Store) error {
				r := planner.CheckRoutine{ID: args[0], Store: s}
				return r.Do(ctx)
			})
		},
	}

	cmd.AddCommand(add, done)
	topLevel.AddCommand(cmd)
}

func addIdea(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "idea",
		Aliases: []string{"ideas", "i"},
		Short:   "Keep an inbox of ideas",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	add := &cobra.Command{
		Use:   "add <text>",
		Short: "Capture an idea",
		Example: `
sdvig idea add a podcast about tiny habits
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires some text")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, false, func(ctx context.Context, s *app.Store) error {
				r := planner.AddIdea{Text: strings.Join(args, " "), Store: s}
				return r.Do(ctx)
			})
		},
	}

	io := &options.IDOptions{}
	var width int
	ls := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List ideas, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd, false, func(ctx context.Context, s *app.Store) error {
				r := planner.ListIdeas{ShowID: io.ShowID, Width: width, Store: s}
				return r.Do(ctx)
			})
		},
	}
	options.AddShowIDArgs(ls, io)
	ls.Flags().IntVar(&width, "width", 80, "Wrap text at this many columns.")

	rm := &cobra.Command{
		Use:     "rm <idea id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete an idea",
		Args:    requireID("an idea"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, false, func(ctx context.Context, s *app.Store) error {
				r := planner.RemoveIdea{ID: args[0], Store: s}
				return r.Do(ctx)
			})
		},
	}

	cmd.AddCommand(add, ls, rm)
	topLevel.AddCommand(cmd)
}
