// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/repograde/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the repograde MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, fetcher contract.RepoFetcher, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Repograde Assessment Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		fetcher: fetcher,
		mgr:     mgr,
	}

	// --- 1. Tool: analyze_repository ---
	s.AddTool(mcp.NewTool("analyze_repository",
		mcp.WithDescription("Assess a GitHub repository and return its score, level, breakdown, summary, roadmap and metrics."),
		mcp.WithString("repo_url", mcp.Description("Repository URL, e.g. https://github.com/owner/repo."), mcp.Required()),
		mcp.WithNumber("commit_limit", mcp.Description("Number of recent commits to inspect (1-100). Defaults to the server setting.")),
	), h.handleAnalyzeRepository)

	// --- 2. Tool: score_rules ---
	s.AddTool(mcp.NewTool("score_rules",
		mcp.WithDescription("Describe the scoring model: baseline, rules in evaluation order and level bands."),
	), h.handleScoreRules)

	return s
}

// StartMCPServer starts the repograde MCP server over stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, fetcher contract.RepoFetcher, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, fetcher, mgr)
	return server.ServeStdio(s)
}
