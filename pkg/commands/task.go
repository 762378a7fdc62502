package commands

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/sdvig/pkg/app"
	"tableflip.dev/sdvig/pkg/commands/options"
	"tableflip.dev/sdvig/pkg/runner/task"
	"tableflip.dev/sdvig/pkg/timeutil"
)

func addTask(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"tasks", "t"},
		Short:   "Manage tasks",
		Example: `
sdvig task add call the bank --on=tomorrow
sdvig task ls
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addTaskAdd(cmd)
	addTaskDone(cmd)
	addTaskRemove(cmd)
	addTaskList(cmd)
	addTaskBreakdown(cmd)
	addTaskMigrate(cmd)

	topLevel.AddCommand(cmd)
}

func addTaskAdd(parent *cobra.Command) {
	do := &options.DateOptions{}
	po := &options.PriorityOptions{}
	var parentID, estimate string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Example: `
sdvig task add do this task
sdvig task add file taxes --on=2024-4-15 --priority --estimate=1h30m
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a task")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, false, func(ctx context.Context, s *app.Store) error {
				date, err := do.GetOn(time.Now())
				if err != nil {
					return err
				}
				minutes := 0
				if estimate != "" {
					if minutes, err = timeutil.ParseMinutes(estimate); err != nil {
						return err
					}
				}
				r := task.Add{
					Title:     strings.Join(args, " "),
					Date:      date,
					Important: po.Important,
					ParentID:  parentID,
					Estimate:  minutes,
					Store:     s,
				}
				return r.Do(ctx)
			})
		},
	}

	options.AddOnArgs(cmd, do)
	options.AddPriorityArgs(cmd, po)
	cmd.Flags().StringVar(&parentID, "parent", "", "Add as a subtask of this task id.")
	cmd.Flags().StringVar(&estimate, "estimate", "", "Time estimate, example: --estimate=45m.")
	_ = cmd.RegisterFlagCompletionFunc("parent", taskCompletions)

	parent.AddCommand(cmd)
}

func addTaskDone(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "done <task id>",
		Aliases: []string{"complete", "x"},
		Short:   "Toggle a task between open and done",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires a task id")
			}
			return nil
		},
		ValidArgsFunction: taskCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, false, func(ctx context.Context, s *app.Store) error {
				r := task.Complete{ID: args[0], Store: s}
				return r.Do(ctx)
			})
		},
	}

	parent.AddCommand(cmd)
}

func addTaskRemove(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "rm <task id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a task and its subtasks",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires a task id")
			}
			return nil
		},
		ValidArgsFunction: taskCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, false, func(ctx context.Context, s *app.Store) error {
				r := task.Remove{ID: args[0], Store: s}
				return r.Do(ctx)
			})
		},
	}

	parent.AddCommand(cmd)
}

func addTaskList(parent *cobra.Command) {
	io := &options.IDOptions{}
	vo := &options.ViewOptions{}

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List tasks for today, this week and someday",
		Example: `
sdvig task ls
sdvig task ls --archive --show-id
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd, false, func(ctx context.Context, s *app.Store) error {
				r := task.List{ShowID: io.ShowID, Archive: vo.Archive, Store: s}
				return r.Do(ctx)
			})
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.AddArchiveArgs(cmd, vo)

	parent.AddCommand(cmd)
}

func addTaskBreakdown(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "breakdown <task id> <subtask>...",
		Short: "Split a task into subtasks",
		Example: `
sdvig task breakdown 0b7c... "pack boxes" "book van" "change address"
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 2 {
				return errors.New("requires a task id and at least one subtask")
			}
			return nil
		},
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return taskCompletions(cmd, args, toComplete)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, false, func(ctx context.Context, s *app.Store) error {
				r := task.Breakdown{ParentID: args[0], Titles: args[1:], Store: s}
				return r.Do(ctx)
			})
		},
	}

	parent.AddCommand(cmd)
}

func addTaskMigrate(parent *cobra.Command) {
	io := &options.IDOptions{}
	do := &options.DateOptions{}
	var all, someday bool

	cmd := &cobra.Command{
		Use:   "migrate [task id]...",
		Short: "List overdue tasks or move them forward",
		Long: `Migrate lists open tasks dated before the current week. Given task ids,
or --all, it moves them to today, to --on, or to someday with --someday.`,
		Example: `
sdvig task migrate
sdvig task migrate --all
sdvig task migrate 0b7c... --on=tomorrow
`,
		ValidArgsFunction: taskCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, false, func(ctx context.Context, s *app.Store) error {
				to, err := do.GetOn(time.Now())
				if err != nil {
					return err
				}
				r := task.Migrate{
					IDs:     args,
					All:     all,
					To:      to,
					Someday: someday,
					ShowID:  io.ShowID,
					Store:   s,
				}
				return r.Do(ctx)
			})
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.AddOnArgs(cmd, do)
	cmd.Flags().BoolVar(&all, "all", false, "Migrate every overdue task.")
	cmd.Flags().BoolVar(&someday, "someday", false, "Clear the date instead.")

	parent.AddCommand(cmd)
}
