package cmd

import (
	"github.com/huangsam/repograde/core"
	"github.com/huangsam/repograde/internal/contract"
	"github.com/spf13/cobra"
)

// rulesCmd prints the scoring model.
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Show how repositories are scored.",
	Long: `Display the scoring rules in evaluation order along with the level bands.

Every repository starts at the baseline. Each rule adds a bonus, subtracts a
penalty or leaves a note, and the total is clamped to 0-100.

Examples:
  # Print the rules as a table
  repograde rules

  # Machine-readable catalog
  repograde rules --output yaml`,
	Args: cobra.NoArgs,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return loadAndValidate(nil)
	},
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteRules(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot print rules", err)
		}
	},
}
