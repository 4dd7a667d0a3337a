package core

import "github.com/huangsam/repograde/schema"

// Roadmap thresholds.
const (
	shortReadmeLength = 500
	minRoadmapActions = 3
	refactorScoreCap  = 90
)

// Languages that select a framework-specific testing suggestion.
var (
	javascriptLanguages = []string{"JavaScript", "TypeScript"}
	pythonLanguages     = []string{"Python"}
)

// usesAny reports whether any of the given languages has a positive share.
func usesAny(usage map[string]float64, languages []string) bool {
	for _, lang := range languages {
		if usage[lang] > 0 {
			return true
		}
	}
	return false
}

// documentationActions covers README gaps.
func documentationActions(m schema.MetricsRecord) []string {
	if !m.Readme.Exists {
		return []string{
			"Create a README.md file",
			"Add a 'Project Description' section to explain what this does",
			"Include an 'Installation' and 'Usage' section",
		}
	}
	var actions []string
	if m.Readme.Length < shortReadmeLength {
		actions = append(actions, "Expand README with more details on features and setup")
	}
	if !m.Readme.HasSetup {
		actions = append(actions, "Add clear 'Getting Started' instructions to the README")
	}
	return actions
}

// reliabilityActions suggests a testing setup for untested repositories.
func reliabilityActions(m schema.MetricsRecord) []string {
	if m.Tests.Exists {
		return nil
	}
	var framework string
	switch {
	case usesAny(m.Languages, javascriptLanguages):
		framework = "Add a testing framework like Jest or Mocha"
	case usesAny(m.Languages, pythonLanguages):
		framework = "Add 'pytest' for automated testing"
	default:
		framework = "Set up a basic unit testing framework"
	}
	return []string{framework, "Write a simple smoke test to verify app startup"}
}

// processActions covers commit hygiene.
func processActions(m schema.MetricsRecord) []string {
	if m.Commits.FrequencyPerWeek >= sparseFrequency {
		return nil
	}
	return []string{
		"Aim for at least one commit per week to show activity",
		"Use descriptive commit messages (e.g., 'fix: login bug' vs 'update')",
	}
}

// BuildRoadmap returns improvement actions, highest priority first.
// Every category is evaluated; the fallback only pads short roadmaps.
func BuildRoadmap(m schema.MetricsRecord, s schema.ScoreResult) []string {
	roadmap := make([]string, 0, 8)
	roadmap = append(roadmap, documentationActions(m)...)
	roadmap = append(roadmap, reliabilityActions(m)...)
	roadmap = append(roadmap, processActions(m)...)

	if len(roadmap) < minRoadmapActions {
		if s.Score < refactorScoreCap {
			roadmap = append(roadmap, "Review code for potential refactoring opportunities")
		}
		roadmap = append(roadmap, "Add a LICENSE file if open source")
	}
	return roadmap
}
