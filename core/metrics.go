package core

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/huangsam/repograde/schema"
)

// Heading and keyword detectors for README quality. These are coarse on purpose.
var (
	readmeHeadingRegex = regexp.MustCompile(`(?m)^#+ `)
	readmeSetupRegex   = regexp.MustCompile(`(?i)install|setup|build`)
	readmeUsageRegex   = regexp.MustCompile(`(?i)usage|run|execute`)
)

// testPathMarkers are substrings that mark a file as a test file.
var testPathMarkers = []string{".test.", ".spec.", "test_", "/tests/", "/__tests__/"}

// ExtractMetrics normalizes raw repository facts into a metrics record.
// It never fails: missing README, commits or tree entries yield zero values.
func ExtractMetrics(raw schema.RawRepositoryData) schema.MetricsRecord {
	files, folders := countEntries(raw.FileTree)
	return schema.MetricsRecord{
		RepoInfo: schema.RepoInfo{
			Name:        raw.Metadata.Name,
			Owner:       raw.Metadata.Owner,
			Description: raw.Metadata.Description,
			Size:        raw.Metadata.Size,
			Stars:       raw.Metadata.Stars,
			Forks:       raw.Metadata.Forks,
			OpenIssues:  raw.Metadata.OpenIssues,
		},
		Counts:    schema.CountMetrics{Files: files, Folders: folders},
		Languages: languageUsage(raw.Languages),
		Commits: schema.CommitMetrics{
			TotalFetched:     len(raw.Commits),
			FrequencyPerWeek: commitFrequency(raw.Commits),
		},
		Readme:    readmeMetrics(raw.Readme),
		Tests:     testMetrics(raw.FileTree),
		Structure: schema.StructureMetrics{Depth: maxDepth(raw.FileTree)},
	}
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// countEntries returns the number of file and directory entries.
func countEntries(tree []schema.TreeEntry) (files, folders int) {
	for _, entry := range tree {
		switch entry.Kind {
		case schema.FileEntry:
			files++
		case schema.DirectoryEntry:
			folders++
		}
	}
	return files, folders
}

// languageUsage converts byte counts into percentages of the total.
// Negative byte counts are treated as zero so every share stays in [0,100].
func languageUsage(languages map[string]int64) map[string]float64 {
	var total int64
	for _, bytes := range languages {
		total += max(bytes, 0)
	}

	usage := make(map[string]float64, len(languages))
	for lang, bytes := range languages {
		if total == 0 {
			usage[lang] = 0
			continue
		}
		usage[lang] = round2(100 * float64(max(bytes, 0)) / float64(total))
	}
	return usage
}

// commitFrequency returns commits per week over the span between the oldest and newest
// fetched commit. Spans shorter than a week count as one week.
func commitFrequency(commits []schema.Commit) float64 {
	if len(commits) == 0 {
		return 0
	}
	newest := commits[0].AuthorDate
	oldest := commits[len(commits)-1].AuthorDate
	daySpan := newest.Sub(oldest).Hours() / 24
	weeks := math.Max(daySpan/7, 1)
	return round2(float64(len(commits)) / weeks)
}

// readmeMetrics measures README presence, length and section structure.
func readmeMetrics(readme string) schema.ReadmeMetrics {
	if readme == "" {
		return schema.ReadmeMetrics{}
	}
	return schema.ReadmeMetrics{
		Exists:   true,
		Length:   utf8.RuneCountInString(readme),
		Sections: len(readmeHeadingRegex.FindAllStringIndex(readme, -1)),
		HasSetup: readmeSetupRegex.MatchString(readme),
		HasUsage: readmeUsageRegex.MatchString(readme),
	}
}

// isTestPath reports whether a path follows one of the test-file conventions.
func isTestPath(path string) bool {
	for _, marker := range testPathMarkers {
		if strings.Contains(path, marker) {
			return true
		}
	}
	return false
}

// testMetrics counts file entries that look like tests.
func testMetrics(tree []schema.TreeEntry) schema.TestMetrics {
	count := 0
	for _, entry := range tree {
		if entry.Kind == schema.FileEntry && isTestPath(entry.Path) {
			count++
		}
	}
	return schema.TestMetrics{Exists: count > 0, Count: count}
}

// maxDepth returns the largest number of path segments across all entries.
func maxDepth(tree []schema.TreeEntry) int {
	depth := 0
	for _, entry := range tree {
		depth = max(depth, strings.Count(entry.Path, "/")+1)
	}
	return depth
}
