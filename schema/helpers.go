package schema

import "sort"

// LanguageShare is a single language with its percentage of total bytes.
type LanguageShare struct {
	Language string  `json:"language"`
	Percent  float64 `json:"percent"`
}

// SortLanguages orders a language usage map by share, largest first.
// Ties are broken by name so the result is stable across runs.
func SortLanguages(usage map[string]float64) []LanguageShare {
	shares := make([]LanguageShare, 0, len(usage))
	for lang, pct := range usage {
		shares = append(shares, LanguageShare{Language: lang, Percent: pct})
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Percent != shares[j].Percent {
			return shares[i].Percent > shares[j].Percent
		}
		return shares[i].Language < shares[j].Language
	})
	return shares
}

// PrimaryLanguage returns the language with the largest share, or "" when there is none.
func PrimaryLanguage(usage map[string]float64) string {
	shares := SortLanguages(usage)
	if len(shares) == 0 || shares[0].Percent == 0 {
		return ""
	}
	return shares[0].Language
}

// ToResult assembles the composite result from the pipeline stages.
func ToResult(metrics MetricsRecord, score ScoreResult, summary string, roadmap []string) AnalysisResult {
	return AnalysisResult{
		Score:     score.Score,
		Level:     score.Level,
		Breakdown: score.Breakdown,
		Summary:   summary,
		Roadmap:   roadmap,
		Metrics:   metrics,
	}
}
