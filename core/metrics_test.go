package core

import (
	"testing"
	"time"

	"github.com/huangsam/repograde/schema"
	"github.com/stretchr/testify/assert"
)

func TestExtractMetricsEmpty(t *testing.T) {
	m := ExtractMetrics(schema.RawRepositoryData{})

	assert.Equal(t, schema.CountMetrics{}, m.Counts)
	assert.NotNil(t, m.Languages)
	assert.Empty(t, m.Languages)
	assert.Equal(t, schema.CommitMetrics{}, m.Commits)
	assert.Equal(t, schema.ReadmeMetrics{}, m.Readme)
	assert.Equal(t, schema.TestMetrics{}, m.Tests)
	assert.Equal(t, 0, m.Structure.Depth)
}

func TestExtractMetricsRepoInfo(t *testing.T) {
	raw := schema.RawRepositoryData{
		Metadata: schema.RepoMetadata{
			Name:          "repograde",
			Owner:         "huangsam",
			Description:   "Repository quality checks",
			DefaultBranch: "main",
			Size:          1024,
			Stars:         42,
			Forks:         7,
			OpenIssues:    3,
		},
	}

	m := ExtractMetrics(raw)
	assert.Equal(t, schema.RepoInfo{
		Name:        "repograde",
		Owner:       "huangsam",
		Description: "Repository quality checks",
		Size:        1024,
		Stars:       42,
		Forks:       7,
		OpenIssues:  3,
	}, m.RepoInfo)
}

func TestExtractMetricsCounts(t *testing.T) {
	tree := []schema.TreeEntry{
		{Path: "README.md", Kind: schema.FileEntry},
		{Path: "src", Kind: schema.DirectoryEntry},
		{Path: "src/main.go", Kind: schema.FileEntry},
		{Path: "src/lib", Kind: schema.DirectoryEntry},
		{Path: "src/lib/util.go", Kind: schema.FileEntry},
	}

	m := ExtractMetrics(schema.RawRepositoryData{FileTree: tree})
	assert.Equal(t, schema.CountMetrics{Files: 3, Folders: 2}, m.Counts)
}

func TestLanguageUsage(t *testing.T) {
	tests := []struct {
		name     string
		input    map[string]int64
		expected map[string]float64
	}{
		{
			name:     "two languages",
			input:    map[string]int64{"Go": 750, "Shell": 250},
			expected: map[string]float64{"Go": 75, "Shell": 25},
		},
		{
			name:     "thirds are rounded",
			input:    map[string]int64{"A": 1, "B": 1, "C": 1},
			expected: map[string]float64{"A": 33.33, "B": 33.33, "C": 33.33},
		},
		{
			name:     "zero total",
			input:    map[string]int64{"Go": 0, "C": 0},
			expected: map[string]float64{"Go": 0, "C": 0},
		},
		{
			name:     "negative counts are ignored",
			input:    map[string]int64{"Go": -5, "C": 5},
			expected: map[string]float64{"Go": 0, "C": 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, languageUsage(tt.input))
		})
	}
}

func TestLanguageUsageSumsToHundred(t *testing.T) {
	inputs := []map[string]int64{
		{"Go": 1},
		{"Go": 123456, "JavaScript": 7890, "CSS": 12},
		{"A": 1, "B": 2, "C": 3, "D": 4, "E": 5, "F": 6, "G": 7},
		{"Python": 999999, "Shell": 1},
	}

	for _, input := range inputs {
		usage := languageUsage(input)
		assert.Len(t, usage, len(input))

		sum := 0.0
		for lang, pct := range usage {
			assert.Contains(t, input, lang)
			assert.GreaterOrEqual(t, pct, 0.0)
			assert.LessOrEqual(t, pct, 100.0)
			sum += pct
		}
		assert.InDelta(t, 100.0, sum, 0.1)
	}
}

func TestCommitFrequency(t *testing.T) {
	base := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	span := func(n int, total time.Duration) []schema.Commit {
		commits := make([]schema.Commit, n)
		for i := range n {
			var offset time.Duration
			if n > 1 {
				offset = total * time.Duration(i) / time.Duration(n-1)
			}
			commits[i] = schema.Commit{AuthorDate: base.Add(-offset)} // newest first
		}
		return commits
	}

	tests := []struct {
		name     string
		commits  []schema.Commit
		expected float64
	}{
		{"no commits", nil, 0},
		{"single commit", span(1, 0), 1},
		{"sub-week span counts as one week", span(3, 3*24*time.Hour), 3},
		{"two weeks", span(10, 14*24*time.Hour), 5},
		{"rounded to two decimals", span(7, 21*24*time.Hour), 2.33},
		{"sparse", span(2, 70*24*time.Hour), 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, commitFrequency(tt.commits))
		})
	}
}

func TestReadmeMetrics(t *testing.T) {
	tests := []struct {
		name     string
		readme   string
		expected schema.ReadmeMetrics
	}{
		{
			name:     "absent",
			readme:   "",
			expected: schema.ReadmeMetrics{},
		},
		{
			name:   "headings and keywords",
			readme: "# Title\n\n## Installation\nmake all\n### Usage\n",
			expected: schema.ReadmeMetrics{
				Exists: true, Length: 44, Sections: 3, HasSetup: true, HasUsage: true,
			},
		},
		{
			name:   "hash without space is not a heading",
			readme: "#NoSpace\ntext # inline\n",
			expected: schema.ReadmeMetrics{
				Exists: true, Length: 23, Sections: 0,
			},
		},
		{
			name:   "keywords are case insensitive",
			readme: "BUILD it, then EXECUTE it",
			expected: schema.ReadmeMetrics{
				Exists: true, Length: 25, HasSetup: true, HasUsage: true,
			},
		},
		{
			name:   "length counts characters",
			readme: "héllo",
			expected: schema.ReadmeMetrics{
				Exists: true, Length: 5,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, readmeMetrics(tt.readme))
		})
	}
}

func TestTestMetrics(t *testing.T) {
	tree := []schema.TreeEntry{
		{Path: "src/app.test.js", Kind: schema.FileEntry},
		{Path: "src/app.spec.ts", Kind: schema.FileEntry},
		{Path: "test_main.py", Kind: schema.FileEntry},
		{Path: "pkg/tests/helper.go", Kind: schema.FileEntry},
		{Path: "web/__tests__/view.jsx", Kind: schema.FileEntry},
		{Path: "src/main.go", Kind: schema.FileEntry},
		{Path: "pkg/tests/fixtures", Kind: schema.DirectoryEntry},
	}

	assert.Equal(t, schema.TestMetrics{Exists: true, Count: 5}, testMetrics(tree))
	assert.Equal(t, schema.TestMetrics{}, testMetrics(nil))
}

func TestIsTestPath(t *testing.T) {
	assert.True(t, isTestPath("a/b.test.ts"))
	assert.True(t, isTestPath("a/test_b.py"))
	assert.False(t, isTestPath("tests/root_level.go")) // marker requires a leading slash
	assert.False(t, isTestPath("src/contest.go"))
}

func TestMaxDepth(t *testing.T) {
	tree := []schema.TreeEntry{
		{Path: "a.txt", Kind: schema.FileEntry},
		{Path: "src/b.txt", Kind: schema.FileEntry},
		{Path: "src/lib/c.txt", Kind: schema.FileEntry},
	}
	assert.Equal(t, 3, maxDepth(tree))
	assert.Equal(t, 0, maxDepth(nil))

	dirs := []schema.TreeEntry{{Path: "a/b/c/d", Kind: schema.DirectoryEntry}}
	assert.Equal(t, 4, maxDepth(dirs))
}
