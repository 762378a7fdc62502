package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DefaultWindow is the report window used when none is given.
const DefaultWindow = "1w"

var (
	segmentPattern = regexp.MustCompile(`^\s*(\d+)\s*([a-z]*)`)

	minuteUnits = map[string]int{
		"":        1,
		"m":       1,
		"min":     1,
		"mins":    1,
		"minute":  1,
		"minutes": 1,
		"h":       60,
		"hr":      60,
		"hrs":     60,
		"hour":    60,
		"hours":   60,
	}
	dayUnits = map[string]int{
		"d":     1,
		"day":   1,
		"days":  1,
		"w":     7,
		"wk":    7,
		"wks":   7,
		"week":  7,
		"weeks": 7,
	}
)

// parseSegments sums "<n><unit>" segments using units as multipliers.
func parseSegments(input string, units map[string]int) (int, error) {
	remaining := strings.ToLower(strings.TrimSpace(input))
	total := 0
	for len(remaining) > 0 {
		matches := segmentPattern.FindStringSubmatch(remaining)
		if len(matches) != 3 {
			return 0, fmt.Errorf("invalid segment %q", strings.TrimSpace(remaining))
		}
		value, err := strconv.Atoi(matches[1])
		if err != nil {
			return 0, fmt.Errorf("invalid value %q: %w", matches[1], err)
		}
		mult, ok := units[matches[2]]
		if !ok {
			return 0, fmt.Errorf("unsupported unit %q", matches[2])
		}
		total += value * mult
		remaining = strings.TrimSpace(remaining[len(matches[0]):])
	}
	return total, nil
}

// ParseMinutes reads a task estimate or focus length such as "45", "45m",
// "2h" or "1h30m" as whole minutes.
func ParseMinutes(input string) (int, error) {
	if strings.TrimSpace(input) == "" {
		return 0, fmt.Errorf("minutes required")
	}
	n, err := parseSegments(input, minuteUnits)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("minutes must be greater than zero")
	}
	return n, nil
}

// FormatMinutes renders minutes as "1h30m", "2h" or "45m".
func FormatMinutes(m int) string {
	if m <= 0 {
		return "0m"
	}
	h, rest := m/60, m%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", rest)
	case rest == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh%dm", h, rest)
	}
}

// ParseWindow reads a day-granular window such as "3d", "1w" or "2w3d" and
// returns its length in days with a canonical label. Empty input means one
// week.
func ParseWindow(input string) (int, string, error) {
	if strings.TrimSpace(input) == "" {
		input = DefaultWindow
	}
	days, err := parseSegments(input, dayUnits)
	if err != nil {
		return 0, "", err
	}
	if days <= 0 {
		return 0, "", fmt.Errorf("window must be greater than zero")
	}
	return days, FormatWindow(days), nil
}

// FormatWindow renders a day count as weeks and days.
func FormatWindow(days int) string {
	if days <= 0 {
		return "0d"
	}
	var b strings.Builder
	if w := days / 7; w > 0 {
		fmt.Fprintf(&b, "%dw", w)
	}
	if d := days % 7; d > 0 {
		fmt.Fprintf(&b, "%dd", d)
	}
	return b.String()
}
