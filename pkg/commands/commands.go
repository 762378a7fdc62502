package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"tableflip.dev/sdvig/pkg/app"
	"tableflip.dev/sdvig/pkg/commands/options"
	"tableflip.dev/sdvig/pkg/store"
)

var (
	output = &options.OutputOptions{}
	debug  bool

	cfg    store.Config
	logger = zap.NewNop()
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "sdvig",
		Short: base.Wrap80("Tasks, habits, routines and money, kept in a local store."),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				color.NoColor = true
			}
			c, err := store.LoadConfig()
			if err != nil {
				return err
			}
			cfg = c

			config := zap.NewProductionConfig()
			config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
			if debug || cfg.Debug() {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			l, err := config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "Log debug output to stderr.")
	options.AddOutputArg(cmd, output)

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addTask(topLevel)
	addHabit(topLevel)
	addWallet(topLevel)
	addTx(topLevel)
	addEvent(topLevel)
	addRoutine(topLevel)
	addIdea(topLevel)
	addTheme(topLevel)
	addDispatch(topLevel)
	addExport(topLevel)
	addImport(topLevel)
	addReset(topLevel)
	addReport(topLevel)
	addKey(topLevel)
	addCompletions(topLevel)
	addVersion(topLevel)
}

// withStore opens and hydrates the store, runs fn and closes the store,
// flushing whatever fn changed. A store that failed to load is only handed
// to fn when recovering is set.
func withStore(cmd *cobra.Command, recovering bool, fn func(context.Context, *app.Store) error) (err error) {
	cmd.SilenceUsage = true
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := app.Open(ctx, cfg, logger)
	if s == nil {
		return output.HandleError(err)
	}
	var loadErr *store.LoadError
	if err != nil {
		if !recovering || !errors.As(err, &loadErr) {
			_ = s.Close(ctx)
			return output.HandleError(fmt.Errorf("%w\nrestore a backup with `sdvig import <file> --yes` or erase with `sdvig reset --yes`", err))
		}
		logger.Warn("continuing with the default state", zap.Error(err))
	}
	defer func() {
		err = output.HandleError(multierr.Append(err, s.Close(ctx)))
	}()
	return fn(ctx, s)
}
