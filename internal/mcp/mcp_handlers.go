package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/repograde/core"
	"github.com/huangsam/repograde/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	fetcher contract.RepoFetcher
	mgr     contract.CacheManager
}

func (h *toolHandler) handleAnalyzeRepository(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.RepoURL = request.GetString("repo_url", "")

	ref, err := contract.ParseRepoReference(cfg.RepoURL)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid repo_url: %v", err)), nil
	}
	cfg.Repo = ref

	if l := request.GetInt("commit_limit", 0); l != 0 {
		if l < 1 || l > contract.MaxCommitLimit {
			return mcp.NewToolResultError(fmt.Sprintf("commit_limit must be between 1 and %d (received %d)", contract.MaxCommitLimit, l)), nil
		}
		cfg.CommitLimit = l
	}

	result, _, err := core.GetAnalysisResult(core.WithSuppressHeader(ctx), cfg, h.fetcher, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleScoreRules(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jsonData, _ := json.MarshalIndent(core.RuleCatalog(), "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
