package commands

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/sdvig/pkg/app"
	"tableflip.dev/sdvig/pkg/runner/dispatch"
)

func addDispatch(topLevel *cobra.Command) {
	var printState bool

	cmd := &cobra.Command{
		Use:   "dispatch <json>",
		Short: "Apply a raw action envelope",
		Long: `Dispatch applies one {"type": ..., "payload": ...} action to the store.
Pass "-" to read the envelope from stdin.`,
		Example: `
sdvig dispatch '{"type":"TOGGLE_TASK","payload":"<task id>"}'
sdvig dispatch '{"type":"ADD_CATEGORY","payload":"books"}' --print
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires an action envelope")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			envelope := []byte(strings.Join(args, " "))
			if args[0] == "-" {
				b, err := io.ReadAll(os.Stdin)
				if err != nil {
					return err
				}
				envelope = b
			}
			return withStore(cmd, false, func(ctx context.Context, s *app.Store) error {
				r := dispatch.Dispatch{Envelope: envelope, Print: printState, Store: s}
				return r.Do(ctx)
			})
		},
	}

	cmd.Flags().BoolVar(&printState, "print", false, "Print the resulting state as JSON.")
	topLevel.AddCommand(cmd)
}

func addTheme(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:       "theme [light|dark]",
		Short:     "Show or set the color theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"light", "dark"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, false, func(ctx context.Context, s *app.Store) error {
				r := dispatch.Theme{Store: s}
				if len(args) == 1 {
					r.Theme = args[0]
				}
				return r.Do(ctx)
			})
		},
	}

	topLevel.AddCommand(cmd)
}
