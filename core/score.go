package core

import (
	"fmt"
	"slices"

	"github.com/huangsam/repograde/schema"
)

// Scoring constants.
const (
	baselineScore = 50
	minScore      = 0
	maxScore      = 100

	readmeBonus       = 10
	readmePenalty     = 15
	readmeDepthBonus  = 10
	readmeSetupBonus  = 5
	testsBonus        = 20
	testsPenalty      = 20
	commitsBonus      = 10
	commitsPenalty    = 5
	substanceBonus    = 10
	structureBonus    = 5
	structurePenalty  = 5
	minReadmeSections = 3
	minSubstantial    = 5  // files strictly above this count are substantial
	minFlatPenalized  = 10 // files strictly above this count are penalized when flat
)

// outcomeKind tags how a rule resolved for a given metrics record.
type outcomeKind int

const (
	skipOutcome    outcomeKind = iota // rule does not apply, no breakdown line
	bonusOutcome                      // points added
	penaltyOutcome                    // points removed
	noteOutcome                       // breakdown line with no point change
)

// ruleOutcome is the single decision a rule makes. Exclusive branches of one rule
// (e.g. README present vs. absent) are alternatives of the same outcome.
type ruleOutcome struct {
	kind   outcomeKind
	points int
	line   string
}

// delta returns the signed point change of the outcome.
func (o ruleOutcome) delta() int {
	switch o.kind {
	case bonusOutcome:
		return o.points
	case penaltyOutcome:
		return -o.points
	default:
		return 0
	}
}

func bonus(points int, label string) ruleOutcome {
	return ruleOutcome{kind: bonusOutcome, points: points, line: fmt.Sprintf("%s (+%d)", label, points)}
}

func penalty(points int, label string) ruleOutcome {
	return ruleOutcome{kind: penaltyOutcome, points: points, line: fmt.Sprintf("%s (-%d)", label, points)}
}

func note(line string) ruleOutcome {
	return ruleOutcome{kind: noteOutcome, line: line}
}

func skip() ruleOutcome {
	return ruleOutcome{kind: skipOutcome}
}

// scoreRule is one entry in the fixed evaluation order.
type scoreRule struct {
	def  schema.ScoreRule
	eval func(m *schema.MetricsRecord) ruleOutcome
}

// scoreRules is evaluated in order; the order only affects the breakdown sequence.
var scoreRules = []scoreRule{
	{
		def: schema.ScoreRule{Name: "README presence", Condition: "README exists", Bonus: readmeBonus, Penalty: readmePenalty},
		eval: func(m *schema.MetricsRecord) ruleOutcome {
			if m.Readme.Exists {
				return bonus(readmeBonus, "Has a README")
			}
			return penalty(readmePenalty, "No README found")
		},
	},
	{
		def: schema.ScoreRule{
			Name:      "README depth",
			Condition: fmt.Sprintf("README has at least %d sections", minReadmeSections),
			Bonus:     readmeDepthBonus,
			Otherwise: "noted as a short README",
		},
		eval: func(m *schema.MetricsRecord) ruleOutcome {
			if !m.Readme.Exists {
				return skip()
			}
			if m.Readme.Sections >= minReadmeSections {
				return bonus(readmeDepthBonus, "Detailed README sections")
			}
			return note(fmt.Sprintf("Short README (< %d sections)", minReadmeSections))
		},
	},
	{
		def: schema.ScoreRule{Name: "README setup guidance", Condition: "README mentions install, setup or build", Bonus: readmeSetupBonus},
		eval: func(m *schema.MetricsRecord) ruleOutcome {
			if m.Readme.Exists && m.Readme.HasSetup {
				return bonus(readmeSetupBonus, "Includes Setup instructions")
			}
			return skip()
		},
	},
	{
		def: schema.ScoreRule{Name: "Tests", Condition: "test files detected", Bonus: testsBonus, Penalty: testsPenalty},
		eval: func(m *schema.MetricsRecord) ruleOutcome {
			if m.Tests.Exists {
				return bonus(testsBonus, "Tests present")
			}
			return penalty(testsPenalty, "No automated tests detected")
		},
	},
	{
		def: schema.ScoreRule{
			Name:      "Commit consistency",
			Condition: "at least 1 commit per week",
			Bonus:     commitsBonus,
			Penalty:   commitsPenalty,
			Otherwise: "no penalty when no commits were fetched",
		},
		eval: func(m *schema.MetricsRecord) ruleOutcome {
			switch {
			case m.Commits.FrequencyPerWeek >= 1:
				return bonus(commitsBonus, "Consistent commit history")
			case m.Commits.TotalFetched > 0:
				return penalty(commitsPenalty, "Inconsistent or sparse commits")
			default:
				return skip()
			}
		},
	},
	{
		def: schema.ScoreRule{Name: "Codebase substance", Condition: fmt.Sprintf("more than %d files", minSubstantial), Bonus: substanceBonus},
		eval: func(m *schema.MetricsRecord) ruleOutcome {
			if m.Counts.Files > minSubstantial {
				return bonus(substanceBonus, "Substantial code base")
			}
			return skip()
		},
	},
	{
		def: schema.ScoreRule{
			Name:      "Structure organization",
			Condition: "folder depth of at least 2",
			Bonus:     structureBonus,
			Penalty:   structurePenalty,
			Otherwise: fmt.Sprintf("penalty only for flat trees with more than %d files", minFlatPenalized),
		},
		eval: func(m *schema.MetricsRecord) ruleOutcome {
			switch {
			case m.Structure.Depth >= 2:
				return bonus(structureBonus, "Organized folder structure")
			case m.Counts.Files > minFlatPenalized:
				return penalty(structurePenalty, "Flat directory structure for medium project")
			default:
				return skip()
			}
		},
	},
}

// ScoreMetrics maps a metrics record to a clamped score, its level and the
// ordered breakdown of rule contributions.
func ScoreMetrics(m schema.MetricsRecord) schema.ScoreResult {
	total := baselineScore
	breakdown := make([]string, 0, len(scoreRules))
	for _, rule := range scoreRules {
		outcome := rule.eval(&m)
		if outcome.kind == skipOutcome {
			continue
		}
		total += outcome.delta()
		breakdown = append(breakdown, outcome.line)
	}

	score := clampScore(total)
	return schema.ScoreResult{
		Score:     score,
		Level:     LevelForScore(score),
		Breakdown: breakdown,
	}
}

// clampScore bounds a running total to [0,100].
func clampScore(total int) int {
	return min(max(total, minScore), maxScore)
}

// levelBands is ordered from the highest lower edge down.
var levelBands = []schema.LevelBand{
	{Level: schema.ExpertLevel, MinScore: 80},
	{Level: schema.IntermediateLevel, MinScore: 60},
	{Level: schema.JuniorLevel, MinScore: 40},
	{Level: schema.BeginnerLevel, MinScore: minScore},
}

// LevelForScore maps a clamped score to its band. Lower edges are inclusive.
func LevelForScore(score int) schema.Level {
	for _, band := range levelBands {
		if score >= band.MinScore {
			return band.Level
		}
	}
	return schema.BeginnerLevel
}

// ScoringRules returns the rule catalog in evaluation order.
func ScoringRules() []schema.ScoreRule {
	rules := make([]schema.ScoreRule, len(scoreRules))
	for i, rule := range scoreRules {
		rules[i] = rule.def
		rules[i].Order = i + 1
	}
	return rules
}

// BaselineScore is the starting point before any rule applies.
func BaselineScore() int {
	return baselineScore
}

// RuleCatalog returns the full scoring model for display.
func RuleCatalog() schema.RuleCatalog {
	return schema.RuleCatalog{
		Baseline: baselineScore,
		MinScore: minScore,
		MaxScore: maxScore,
		Rules:    ScoringRules(),
		Levels:   slices.Clone(levelBands),
	}
}
