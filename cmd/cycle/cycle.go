// Package cycle implements the command that shows which billing cycle a
// date belongs to
package cycle

import (
	"fmt"
	"io"

	"fjacquet/cycle-spend/cmd/root"
	"fjacquet/cycle-spend/internal/cycle"
	"fjacquet/cycle-spend/internal/dateutils"

	"github.com/spf13/cobra"
)

// Cmd represents the cycle command
var Cmd = &cobra.Command{
	Use:   "cycle DATE...",
	Short: "Show the billing cycle a date belongs to",
	Long: `Print the billing cycle key of each date together with the first and
last day of that cycle, using the configured cycle start day.`,
	Example: `  cycle-spend cycle --cycle-start 16 2024-01-16 2024-01-17`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if root.AppContainer == nil {
			return fmt.Errorf("container is not initialized")
		}
		return Describe(cmd.OutOrStdout(), args, root.AppContainer.GetConfig().Cycle.StartDay)
	},
}

// Describe writes one line per date: the date, its cycle key and the
// cycle's date range. Any malformed date aborts before output is written.
func Describe(w io.Writer, dates []string, startDay int) error {
	if err := cycle.ValidateStartDay(startDay); err != nil {
		return err
	}

	lines := make([]string, 0, len(dates))
	for _, s := range dates {
		date, err := dateutils.ParseDate(s)
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", s, err)
		}
		key := cycle.KeyFor(date, startDay)
		first, last := cycle.Span(key, startDay)
		lines = append(lines, fmt.Sprintf("%s\t%s\t%s to %s\n",
			dateutils.ToISODate(date), key, dateutils.ToISODate(first), dateutils.ToISODate(last)))
	}

	for _, line := range lines {
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
	}
	return nil
}
