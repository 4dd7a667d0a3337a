// Package core has the analysis pipeline and the orchestration around it.
package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/huangsam/repograde/internal/contract"
	"github.com/huangsam/repograde/internal/outwriter"
	"github.com/huangsam/repograde/schema"
)

// Analyze runs the pipeline on already-fetched facts. It performs no I/O and
// always produces a result.
func Analyze(raw schema.RawRepositoryData) schema.AnalysisResult {
	metrics := ExtractMetrics(raw)
	score := ScoreMetrics(metrics)
	return schema.ToResult(metrics, score, Summarize(metrics, score), BuildRoadmap(metrics, score))
}

// GetAnalysisResult fetches the configured repository (through the cache) and analyzes it.
// The pipeline is never invoked when fetching fails.
func GetAnalysisResult(ctx context.Context, cfg *contract.Config, fetcher contract.RepoFetcher, mgr contract.CacheManager) (*schema.AnalysisResult, time.Duration, error) {
	start := time.Now()
	if cfg.Repo == (schema.RepoRef{}) {
		return nil, 0, fmt.Errorf("%w: no repository given", contract.ErrInvalidReference)
	}

	if !shouldSuppressHeader(ctx) {
		outwriter.LogAnalysisHeader(cfg)
	}

	raw, err := cachedFetchRepository(ctx, cfg, fetcher, mgr)
	if err != nil {
		return nil, 0, fmt.Errorf("cannot fetch %s: %w", cfg.Repo, err)
	}
	if raw == nil {
		return nil, 0, errors.New("fetcher returned no repository data")
	}

	result := Analyze(*raw)
	return &result, time.Since(start), nil
}

// ExecuteAnalyze runs the analysis and prints results in the configured format.
// It serves as the main entry point for the 'analyze' command.
func ExecuteAnalyze(ctx context.Context, cfg *contract.Config, fetcher contract.RepoFetcher, mgr contract.CacheManager) error {
	result, duration, err := GetAnalysisResult(ctx, cfg, fetcher, mgr)
	if err != nil {
		return err
	}
	return outwriter.PrintAnalysis(result, cfg, duration)
}

// ExecuteRules displays the scoring rule catalog.
// This is a static display that does not fetch anything.
func ExecuteRules(_ context.Context, cfg *contract.Config) error {
	return outwriter.PrintRules(RuleCatalog(), cfg)
}
