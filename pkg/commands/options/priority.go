package options

import (
	"github.com/spf13/cobra"
)

// PriorityOptions
type PriorityOptions struct {
	Important bool
}

func AddPriorityArgs(cmd *cobra.Command, o *PriorityOptions) {
	cmd.Flags().BoolVarP(&o.Important, "priority", "*", false,
		"Mark the task important.")
}
