package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/sdvig/pkg/app"
	"tableflip.dev/sdvig/pkg/runner/report"
	"tableflip.dev/sdvig/pkg/timeutil"
)

func addReport(topLevel *cobra.Command) {
	var last string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Display recently completed tasks grouped by parent",
		Long: `Report lists completed tasks grouped by their top-level task within the
specified window, followed by habit check-ins, focus time and money movement.

Examples:
  sdvig report
  sdvig report --last 3d
  sdvig report --last 1w2d`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd, false, func(ctx context.Context, s *app.Store) error {
				r := report.Report{Window: last, Store: s}
				return r.Do(ctx)
			})
		},
	}

	cmd.Flags().StringVar(&last, "last", timeutil.DefaultWindow, "time window to include (for example 3d, 1w)")
	topLevel.AddCommand(cmd)
}
