package cmd

import (
	"github.com/huangsam/repograde/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the repograde MCP server",
	Long:  `Launch an MCP server that allows AI agents to assess GitHub repositories via standard tools.`,
	Args:  cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Tool handlers suppress the normal header logs since stdio carries the protocol.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, newFetcher(cliLogger()), cacheManager)
	},
}
