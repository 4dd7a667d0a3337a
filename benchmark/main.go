// Package main provides a performance benchmarking tool for the repograde CLI.
// It measures analyze times across repositories of different sizes, running each
// repository with the cache disabled and then with a fresh SQLite cache, treating
// the first cached run as cold and averaging the rest as warm.
// Results are written to a CSV file for documentation.
//
// Prerequisites:
// - repograde binary installed and available in PATH
// - GITHUB_TOKEN set, since the no-cache phase spends API quota on every run
//
// Usage: go run benchmark/main.go [repo-url ...]
//
//	repo-url: GitHub repositories to analyze (defaults to a fixed set)
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-cache average, cold run and average of warm runs).
type BenchmarkResult struct {
	Repository  string
	NoCacheTime string
	ColdTime    string
	WarmTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	Timeout     time.Duration
	NoCacheRuns int
	CacheRuns   int
	CommitLimit int
	CacheFile   string
	TestRepos   []string
}

func main() {
	repos := os.Args[1:]
	if len(repos) == 0 {
		repos = []string{
			"https://github.com/spf13/cobra",
			"https://github.com/sharkdp/fd",
			"https://github.com/git/git",
			"https://github.com/kubernetes/kubernetes",
		}
	}

	tmpDir, err := os.MkdirTemp("", "repograde-benchmark-*")
	if err != nil {
		fmt.Printf("Failed to create temp dir: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	config := BenchmarkConfig{
		Timeout:     2 * time.Minute,
		NoCacheRuns: 3,
		CacheRuns:   4,
		CommitLimit: 100,
		CacheFile:   filepath.Join(tmpDir, "cache.db"),
		TestRepos:   repos,
	}

	if err := checkPrerequisites(); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the repograde binary exists.
func checkPrerequisites() error {
	if _, err := exec.LookPath("repograde"); err != nil {
		return fmt.Errorf("repograde binary not found in PATH")
	}
	if os.Getenv("GITHUB_TOKEN") == "" && os.Getenv("REPOGRADE_GITHUB_TOKEN") == "" {
		fmt.Printf("Warning: no GitHub token set, unauthenticated rate limits may cause failures\n")
	}
	return nil
}

// runBenchmarks executes the benchmark suite for every configured repository.
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d repos, %v timeout, no-cache: %d runs, cache: %d runs\n",
		len(config.TestRepos), config.Timeout, config.NoCacheRuns, config.CacheRuns)

	for _, repo := range config.TestRepos {
		results = append(results, runBenchmarkSuite(config, repo))
	}

	return results
}

// runBenchmarkSuite runs both no-cache and cache benchmarks for a repository.
func runBenchmarkSuite(config BenchmarkConfig, repo string) BenchmarkResult {
	fmt.Printf("Benchmarking %s\n", repo)

	// Every repository starts from an empty cache
	if err := clearCache(config); err != nil {
		fmt.Printf("Warning: failed to clear cache: %v\n", err)
	}

	runPhase := func(cacheBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, repo, cacheBackend, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avgTime = fmt.Sprintf("%.3fs", sum/float64(len(times)))
		}
		return cold, avgTime
	}

	// Phase 1: No-cache runs
	_, noCacheAvg := runPhase("none", config.NoCacheRuns, "No-cache")

	// Phase 2: Cache runs
	coldTime, warmAvg := runPhase("sqlite", config.CacheRuns, "Cache")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-cache average: %s, Cold time: %s, Warm average: %s\n", noCacheAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Repository:  repo,
		NoCacheTime: noCacheAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// clearCache removes the benchmark's private SQLite cache.
func clearCache(config BenchmarkConfig) error {
	cmd := exec.Command("repograde", "cache", "clear", "--cache-backend", "sqlite", "--cache-db-connect", config.CacheFile)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

// runBenchmark analyzes a repository multiple times with the given cache backend and returns cold time and warm times.
func runBenchmark(config BenchmarkConfig, repo, cacheBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := []string{
		"analyze", repo,
		"--output", "json",
		"--commit-limit", fmt.Sprint(config.CommitLimit),
		"--cache-backend", cacheBackend,
		"--cache-db-connect", config.CacheFile,
	}
	if cacheBackend == "none" {
		args = args[:len(args)-2]
	}

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("repograde", args...)

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.Output()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
			_ = cmd.Process.Kill()
			<-done
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if the JSON report carries a score.
func isSuccess(output []byte) bool {
	return strings.Contains(string(output), `"score"`)
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(os.TempDir(), fmt.Sprintf("repograde_benchmark_%s.csv", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"repo", "no_cache_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, result := range results {
		if err := writer.Write([]string{result.Repository, result.NoCacheTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, result := range results {
		fmt.Printf("  %-45s: No-cache: %s, Cold: %s, Warm: %s\n", result.Repository, result.NoCacheTime, result.ColdTime, result.WarmTime)
	}
}
