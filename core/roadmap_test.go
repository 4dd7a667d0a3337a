package core

import (
	"testing"

	"github.com/huangsam/repograde/schema"
	"github.com/stretchr/testify/assert"
)

func TestBuildRoadmap(t *testing.T) {
	tests := []struct {
		name     string
		metrics  schema.MetricsRecord
		score    int
		expected []string
	}{
		{
			name: "untested javascript project without readme",
			metrics: schema.MetricsRecord{
				Languages: map[string]float64{"JavaScript": 60, "Python": 40},
			},
			score: 15,
			expected: []string{
				"Create a README.md file",
				"Add a 'Project Description' section to explain what this does",
				"Include an 'Installation' and 'Usage' section",
				"Add a testing framework like Jest or Mocha",
				"Write a simple smoke test to verify app startup",
				"Aim for at least one commit per week to show activity",
				"Use descriptive commit messages (e.g., 'fix: login bug' vs 'update')",
			},
		},
		{
			name: "untested python project",
			metrics: schema.MetricsRecord{
				Languages: map[string]float64{"Python": 100},
				Readme:    schema.ReadmeMetrics{Exists: true, Length: 800, HasSetup: true},
				Commits:   schema.CommitMetrics{TotalFetched: 10, FrequencyPerWeek: 2},
			},
			score: 65,
			expected: []string{
				"Add 'pytest' for automated testing",
				"Write a simple smoke test to verify app startup",
				"Review code for potential refactoring opportunities",
				"Add a LICENSE file if open source",
			},
		},
		{
			name: "untested project in another language",
			metrics: schema.MetricsRecord{
				Languages: map[string]float64{"Go": 100},
				Readme:    schema.ReadmeMetrics{Exists: true, Length: 800, HasSetup: true},
				Commits:   schema.CommitMetrics{FrequencyPerWeek: 0.2},
			},
			score: 45,
			expected: []string{
				"Set up a basic unit testing framework",
				"Write a simple smoke test to verify app startup",
				"Aim for at least one commit per week to show activity",
				"Use descriptive commit messages (e.g., 'fix: login bug' vs 'update')",
			},
		},
		{
			name: "short readme without setup",
			metrics: schema.MetricsRecord{
				Readme:  schema.ReadmeMetrics{Exists: true, Length: 120},
				Tests:   schema.TestMetrics{Exists: true, Count: 3},
				Commits: schema.CommitMetrics{FrequencyPerWeek: 1.5},
			},
			score: 75,
			expected: []string{
				"Expand README with more details on features and setup",
				"Add clear 'Getting Started' instructions to the README",
				"Review code for potential refactoring opportunities",
				"Add a LICENSE file if open source",
			},
		},
		{
			name:    "healthy high scorer",
			metrics: expertMetrics(),
			score:   100,
			expected: []string{
				"Add a LICENSE file if open source",
			},
		},
		{
			name:    "healthy below refactor cap",
			metrics: expertMetrics(),
			score:   89,
			expected: []string{
				"Review code for potential refactoring opportunities",
				"Add a LICENSE file if open source",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildRoadmap(tt.metrics, schema.ScoreResult{Score: tt.score, Level: LevelForScore(tt.score)})
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestBuildRoadmapZeroShareLanguage(t *testing.T) {
	m := schema.MetricsRecord{Languages: map[string]float64{"TypeScript": 0, "Python": 12}}
	roadmap := BuildRoadmap(m, schema.ScoreResult{Score: 20})
	assert.Contains(t, roadmap, "Add 'pytest' for automated testing")
	assert.NotContains(t, roadmap, "Add a testing framework like Jest or Mocha")
}

func TestBuildRoadmapNeverEmpty(t *testing.T) {
	variants := []schema.MetricsRecord{{}, expertMetrics()}
	for _, m := range variants {
		for score := 0; score <= 100; score += 10 {
			assert.NotEmpty(t, BuildRoadmap(m, schema.ScoreResult{Score: score}))
		}
	}
}
