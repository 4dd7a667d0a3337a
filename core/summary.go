package core

import (
	"strings"

	"github.com/huangsam/repograde/schema"
)

// Summary thresholds.
const (
	comprehensiveReadmeLength = 500
	thinReadmeLength          = 200
	activeFrequency           = 1.0
	sparseFrequency           = 0.5
	excellentScore            = 80
	solidScore                = 60
)

const encouragement = "Keep up the great work!"

// summaryStrengths lists positive phrases in the order they are reported.
func summaryStrengths(m schema.MetricsRecord, s schema.ScoreResult) []string {
	var strengths []string
	if s.Score >= excellentScore {
		strengths = append(strengths, "excellent overall structure and quality")
	}
	switch {
	case m.Readme.Exists && m.Readme.Length > comprehensiveReadmeLength:
		strengths = append(strengths, "comprehensive documentation")
	case m.Readme.Exists:
		strengths = append(strengths, "included documentation")
	}
	if m.Tests.Exists {
		strengths = append(strengths, "automated testing")
	}
	if m.Commits.FrequencyPerWeek > activeFrequency {
		strengths = append(strengths, "consistent development activity")
	}
	if m.Structure.Depth >= 2 {
		strengths = append(strengths, "a well-organized folder hierarchy")
	}
	return strengths
}

// summaryWeaknesses lists constructive criticism in the order it is reported.
func summaryWeaknesses(m schema.MetricsRecord) []string {
	var weaknesses []string
	switch {
	case !m.Readme.Exists:
		weaknesses = append(weaknesses, "lacks a README file, which is crucial for onboarding")
	case m.Readme.Length < thinReadmeLength:
		weaknesses = append(weaknesses, "could benefit from more detailed documentation")
	}
	if !m.Tests.Exists {
		weaknesses = append(weaknesses, "currently has no automated tests")
	}
	if m.Commits.FrequencyPerWeek < sparseFrequency {
		weaknesses = append(weaknesses, "shows sparse commit history")
	}
	return weaknesses
}

// Summarize composes a short paragraph of strengths followed by weaknesses.
func Summarize(m schema.MetricsRecord, s schema.ScoreResult) string {
	strengths := summaryStrengths(m, s)
	weaknesses := summaryWeaknesses(m)

	var sb strings.Builder
	switch {
	case s.Score >= excellentScore:
		sb.WriteString("This project demonstrates ")
		sb.WriteString(strings.Join(strengths, " and "))
		sb.WriteString(". ")
	case s.Score >= solidScore && len(strengths) > 0:
		sb.WriteString("The project has a solid foundation with ")
		sb.WriteString(strings.Join(strengths, " and "))
		sb.WriteString(". ")
	case s.Score >= solidScore:
		sb.WriteString("The project has a solid foundation. ")
	default:
		sb.WriteString("The project is off to a start")
		if len(strengths) > 0 {
			sb.WriteString(" with ")
			sb.WriteString(strings.Join(strengths, ", "))
		}
		sb.WriteString(". ")
	}

	if len(weaknesses) > 0 {
		sb.WriteString("To improve, consider addressing the following: ")
		sb.WriteString(strings.Join(weaknesses, ", and "))
		sb.WriteString(".")
	} else {
		sb.WriteString(encouragement)
	}
	return sb.String()
}
