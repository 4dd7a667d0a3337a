package schema

// ScoreResult is the numeric score, its level and the ordered rule contributions.
type ScoreResult struct {
	Score     int      `json:"score" yaml:"score"`
	Level     Level    `json:"level" yaml:"level"`
	Breakdown []string `json:"breakdown" yaml:"breakdown"`
}

// AnalysisResult is the composite output of one pipeline run.
type AnalysisResult struct {
	Score     int           `json:"score" yaml:"score"`
	Level     Level         `json:"level" yaml:"level"`
	Breakdown []string      `json:"breakdown" yaml:"breakdown"`
	Summary   string        `json:"summary" yaml:"summary"`
	Roadmap   []string      `json:"roadmap" yaml:"roadmap"`
	Metrics   MetricsRecord `json:"metrics" yaml:"metrics"`
}

// ScoreRule documents one scoring rule for display purposes.
type ScoreRule struct {
	Order     int    `json:"order" yaml:"order"`
	Name      string `json:"name" yaml:"name"`
	Condition string `json:"condition" yaml:"condition"`
	Bonus     int    `json:"bonus" yaml:"bonus"`
	Penalty   int    `json:"penalty" yaml:"penalty"`
	Otherwise string `json:"otherwise,omitempty" yaml:"otherwise,omitempty"`
}

// LevelBand is a level with the inclusive lower edge of its score range.
type LevelBand struct {
	Level    Level `json:"level" yaml:"level"`
	MinScore int   `json:"minScore" yaml:"minScore"`
}

// RuleCatalog describes the whole scoring model: where scores start, how they are
// bounded, which rules move them and how they map to levels.
type RuleCatalog struct {
	Baseline int         `json:"baseline" yaml:"baseline"`
	MinScore int         `json:"minScore" yaml:"minScore"`
	MaxScore int         `json:"maxScore" yaml:"maxScore"`
	Rules    []ScoreRule `json:"rules" yaml:"rules"`
	Levels   []LevelBand `json:"levels" yaml:"levels"`
}
