package options

import (
	"github.com/spf13/cobra"
)

// ViewOptions
type ViewOptions struct {
	Archive bool
	Due     bool
	Month   string
}

func AddArchiveArgs(cmd *cobra.Command, o *ViewOptions) {
	cmd.Flags().BoolVarP(&o.Archive, "archive", "a", false,
		"Show completed items instead of open ones.")
}

func AddDueArgs(cmd *cobra.Command, o *ViewOptions) {
	cmd.Flags().BoolVarP(&o.Due, "due", "d", false,
		"Show only what is due today.")
}

func AddMonthArgs(cmd *cobra.Command, o *ViewOptions) {
	cmd.Flags().StringVarP(&o.Month, "month", "m", "",
		`Specify a month, example: --month="2024-06".`)
}
