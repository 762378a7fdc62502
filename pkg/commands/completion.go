package commands

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/sdvig/pkg/app"
	"tableflip.dev/sdvig/pkg/model"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(sdvig completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(sdvig completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

// completeIDs offers "id\ttitle" pairs picked from the stored state.
func completeIDs(toComplete string, pick func(*model.AppState) [][2]string) ([]string, cobra.ShellCompDirective) {
	ctx := context.Background()
	s, err := app.Open(ctx, cfg, logger)
	if s == nil {
		return nil, cobra.ShellCompDirectiveError
	}
	defer s.Close(ctx)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	var out []string
	for _, p := range pick(s.State()) {
		if strings.HasPrefix(p[0], toComplete) {
			out = append(out, p[0]+"\t"+p[1])
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

func taskCompletions(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return completeIDs(toComplete, func(st *model.AppState) [][2]string {
		out := make([][2]string, 0, len(st.Tasks))
		for _, t := range st.Tasks {
			out = append(out, [2]string{t.ID, t.Title})
		}
		return out
	})
}

func habitCompletions(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return completeIDs(toComplete, func(st *model.AppState) [][2]string {
		out := make([][2]string, 0, len(st.Habits))
		for _, h := range st.Habits {
			out = append(out, [2]string{h.ID, h.Title})
		}
		return out
	})
}

func walletCompletions(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return completeIDs(toComplete, func(st *model.AppState) [][2]string {
		out := make([][2]string, 0, len(st.Wallets))
		for _, w := range st.Wallets {
			out = append(out, [2]string{w.ID, w.Name})
		}
		return out
	})
}

func eventCompletions(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return completeIDs(toComplete, func(st *model.AppState) [][2]string {
		out := make([][2]string, 0, len(st.Events))
		for _, e := range st.Events {
			out = append(out, [2]string{e.ID, e.Date + " " + e.Title})
		}
		return out
	})
}
