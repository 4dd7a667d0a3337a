package cmd

import (
	"github.com/huangsam/repograde/core"
	"github.com/huangsam/repograde/internal/contract"
	"github.com/spf13/cobra"
)

// analyzeCmd assesses one repository.
var analyzeCmd = &cobra.Command{
	Use:   "analyze <github-url>",
	Short: "Score a GitHub repository and suggest improvements.",
	Long: `Fetch a GitHub repository and assess its quality.

Looks at metadata, language mix, recent commits, the file tree and the README to produce:
- A score from 0 to 100 and a level (Beginner, Junior, Intermediate, Expert)
- A breakdown of every rule that moved the score
- A short summary of strengths and weaknesses
- A prioritized roadmap of improvements

Fetched data is cached (24h by default) so repeated runs do not spend API quota.
Set GITHUB_TOKEN to raise the GitHub API rate limit.

Examples:
  # Assess a repository
  repograde analyze https://github.com/spf13/cobra

  # Inspect fewer commits and emit JSON
  repograde analyze https://github.com/spf13/cobra --commit-limit 30 --output json

  # Export a flattened row for analytics
  repograde analyze https://github.com/spf13/cobra --output parquet --output-file cobra.parquet`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteAnalyze(rootCtx, cfg, newFetcher(cliLogger()), cacheManager); err != nil {
			contract.LogFatal("Cannot analyze repository", err)
		}
	},
}
