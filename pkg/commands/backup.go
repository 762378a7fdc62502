package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/sdvig/pkg/app"
	"tableflip.dev/sdvig/pkg/runner/backup"
)

func addExport(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "export [dir]",
		Short: "Write a JSON backup of all data",
		Long: `Export writes sdvig-backup-YYYY-MM-DD.json into dir, the current
directory by default. Use "-" to write the backup to stdout. A store that
fails to load is exported as stored, so it can be kept before a reset.`,
		Example: `
sdvig export ~/backups
sdvig export - > backup.json
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, true, func(ctx context.Context, s *app.Store) error {
				r := backup.Export{Store: s}
				if len(args) == 1 {
					r.Dir = args[0]
				}
				return r.Do(ctx)
			})
		},
	}

	topLevel.AddCommand(cmd)
}

func addImport(topLevel *cobra.Command) {
	var yes bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace all data with a JSON backup",
		Long: `Import checks the backup first and only then replaces every stored key
with the backup's contents. It also works when the stored data can not be
loaded.`,
		Example: `
sdvig import sdvig-backup-2024-06-12.json --yes
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires a backup file")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, true, func(ctx context.Context, s *app.Store) error {
				r := backup.Import{File: args[0], Confirm: yes, Store: s}
				return r.Do(ctx)
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm replacing all data.")
	topLevel.AddCommand(cmd)
}

func addReset(topLevel *cobra.Command) {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase all data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd, true, func(ctx context.Context, s *app.Store) error {
				r := backup.Reset{Confirm: yes, Store: s}
				return r.Do(ctx)
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm erasing all data.")
	topLevel.AddCommand(cmd)
}
