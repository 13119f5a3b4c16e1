// Package categorize handles transaction categorization commands
package categorize

import (
	"fmt"
	"io"
	"strings"

	"fjacquet/cycle-spend/cmd/root"
	"fjacquet/cycle-spend/internal/categorizer"

	"github.com/spf13/cobra"
)

// Cmd represents the categorize command
var Cmd = &cobra.Command{
	Use:   "categorize [description...]",
	Short: "Categorize transaction descriptions using the keyword rules",
	Long: `Categorize transaction descriptions against the category rules file.
Each description is matched case-insensitively; the first category with a
keyword contained in the description wins, otherwise it is Uncategorized.`,
	Example: `  cycle-spend categorize "UBER *TRIP HELP.UBER.COM"
  cycle-spend categorize --categories rules.yaml "SWIGGY" "AMAZON PAY"`,
	Args: cobra.MinimumNArgs(1),
	RunE: categorizeFunc,
}

func categorizeFunc(cmd *cobra.Command, args []string) error {
	root.Log.Debug("Categorize command called")

	if root.AppContainer == nil {
		return fmt.Errorf("container is not initialized")
	}
	strategy, err := root.AppContainer.GetCategorizer()
	if err != nil {
		return err
	}
	return Describe(cmd.OutOrStdout(), strategy, args)
}

// Describe writes the category of each description, with the keyword that
// matched.
func Describe(w io.Writer, strategy *categorizer.KeywordStrategy, descriptions []string) error {
	for _, desc := range descriptions {
		desc = strings.TrimSpace(desc)
		category, pattern, ok := strategy.Match(desc)
		var err error
		if ok {
			_, err = fmt.Fprintf(w, "%s\t%s\t(matched %q)\n", desc, category, pattern)
		} else {
			_, err = fmt.Fprintf(w, "%s\t%s\n", desc, strategy.Categorize(desc))
		}
		if err != nil {
			return err
		}
	}
	return nil
}
