package mcp_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/huangsam/repograde/core"
	"github.com/huangsam/repograde/internal/contract"
	mcp_internal "github.com/huangsam/repograde/internal/mcp"
	"github.com/huangsam/repograde/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func callTool(t *testing.T, fetcher contract.RepoFetcher, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	baseCfg := &contract.Config{CommitLimit: 100, CacheBackend: schema.NoneBackend}
	s := mcp_internal.NewMCPServer(baseCfg, fetcher, nil)

	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	require.NotNil(t, res)
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestAnalyzeRepositoryTool(t *testing.T) {
	raw := &schema.RawRepositoryData{
		Metadata: schema.RepoMetadata{Name: "widget", Owner: "octo"},
		Readme:   "# Widget\n",
	}
	ref := schema.RepoRef{Owner: "octo", Name: "widget"}

	t.Run("success with commit limit", func(t *testing.T) {
		fetcher := &contract.MockRepoFetcher{}
		fetcher.On("FetchRepository", mock.Anything, ref, 25).Return(raw, nil).Once()

		res := callTool(t, fetcher, "analyze_repository", map[string]any{
			"repo_url":     "https://github.com/octo/widget",
			"commit_limit": 25.0,
		})
		assert.False(t, res.IsError)

		var result schema.AnalysisResult
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &result))
		assert.Equal(t, core.Analyze(*raw).Score, result.Score)
		assert.Equal(t, "widget", result.Metrics.RepoInfo.Name)
		fetcher.AssertExpectations(t)
	})

	t.Run("defaults to configured commit limit", func(t *testing.T) {
		fetcher := &contract.MockRepoFetcher{}
		fetcher.On("FetchRepository", mock.Anything, ref, 100).Return(raw, nil).Once()

		res := callTool(t, fetcher, "analyze_repository", map[string]any{"repo_url": "https://github.com/octo/widget"})
		assert.False(t, res.IsError)
		fetcher.AssertExpectations(t)
	})

	t.Run("invalid url", func(t *testing.T) {
		fetcher := &contract.MockRepoFetcher{}
		res := callTool(t, fetcher, "analyze_repository", map[string]any{"repo_url": "https://example.com/octo/widget"})
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, resultText(t, res), "invalid repo_url")
		fetcher.AssertNotCalled(t, "FetchRepository", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("commit limit out of range", func(t *testing.T) {
		res := callTool(t, &contract.MockRepoFetcher{}, "analyze_repository", map[string]any{
			"repo_url":     "https://github.com/octo/widget",
			"commit_limit": 500.0,
		})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "commit_limit must be between 1 and 100")
	})

	t.Run("fetch failure", func(t *testing.T) {
		fetcher := &contract.MockRepoFetcher{}
		fetcher.On("FetchRepository", mock.Anything, ref, 100).Return(nil, contract.ErrRepositoryNotFound).Once()

		res := callTool(t, fetcher, "analyze_repository", map[string]any{"repo_url": "https://github.com/octo/widget"})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "repository not found")
	})
}

func TestScoreRulesTool(t *testing.T) {
	res := callTool(t, &contract.MockRepoFetcher{}, "score_rules", nil)
	assert.False(t, res.IsError)

	var catalog schema.RuleCatalog
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &catalog))
	assert.Equal(t, core.RuleCatalog(), catalog)
}
