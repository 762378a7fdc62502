package options

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/sdvig/pkg/timeutil"
)

const (
	layoutISO      = "2006-1-2"
	layoutISOShort = "1/2"
)

// DateOptions
type DateOptions struct {
	OnString string
}

func AddOnArgs(cmd *cobra.Command, o *DateOptions) {
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Specify a date, example: --on="2020-2-28", --on="2/28" or --on=tomorrow.`)
}

// GetOn returns the date key for --on, or "" when it is not set.
func (o *DateOptions) GetOn(now time.Time) (string, error) {
	raw := strings.ToLower(strings.TrimSpace(o.OnString))
	switch raw {
	case "":
		return "", nil
	case "today":
		return timeutil.FormatDate(now), nil
	case "tomorrow":
		return timeutil.FormatDate(now.AddDate(0, 0, 1)), nil
	case "yesterday":
		return timeutil.FormatDate(now.AddDate(0, 0, -1)), nil
	}
	t, err := time.ParseInLocation(layoutISO, raw, now.Location())
	if err == nil {
		return timeutil.FormatDate(t), nil
	}
	// Let the year be the same.
	t, err = time.ParseInLocation(layoutISOShort, raw, now.Location())
	if err != nil {
		return "", fmt.Errorf("invalid date %q", o.OnString)
	}
	t = t.AddDate(now.Year(), 0, 0)
	// 1/3 said on 12/5 means next January.
	if t.Before(timeutil.StartOfDay(now)) {
		t = t.AddDate(1, 0, 0)
	}
	return timeutil.FormatDate(t), nil
}
