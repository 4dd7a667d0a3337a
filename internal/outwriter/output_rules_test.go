package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"github.com/huangsam/repograde/internal/contract"
	"github.com/huangsam/repograde/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCatalog() schema.RuleCatalog {
	return schema.RuleCatalog{
		Baseline: 50,
		MinScore: 0,
		MaxScore: 100,
		Rules: []schema.ScoreRule{
			{Order: 1, Name: "README presence", Condition: "README exists", Bonus: 10, Penalty: 15},
			{Order: 2, Name: "Codebase substance", Condition: "more than 5 files", Bonus: 10},
		},
		Levels: []schema.LevelBand{
			{Level: schema.ExpertLevel, MinScore: 80},
			{Level: schema.BeginnerLevel, MinScore: 0},
		},
	}
}

func TestSignedPoints(t *testing.T) {
	assert.Equal(t, "+10", signedPoints(10, "+"))
	assert.Equal(t, "-15", signedPoints(15, "-"))
	assert.Equal(t, "-", signedPoints(0, "+"))
}

func TestWriteRulesText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeRulesText(&buf, sampleCatalog(), &contract.Config{}))
	out := buf.String()

	assert.Contains(t, out, "Scoring Rules\n=============\n")
	assert.Contains(t, out, "starts at 50. The total is clamped to [0, 100].")
	assert.Contains(t, out, "README presence")
	assert.Contains(t, out, "+10")
	assert.Contains(t, out, "-15")
	assert.Contains(t, out, "Expert")
	assert.Contains(t, out, "score >= 80")
}

func TestWriteRulesTextWithEmoji(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeRulesText(&buf, sampleCatalog(), &contract.Config{UseEmojis: true}))
	assert.Contains(t, buf.String(), "📏 Scoring Rules")
}

func TestWriteRulesCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeRulesCSV(&buf, sampleCatalog()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"order", "name", "condition", "bonus", "penalty", "otherwise"}, records[0])
	assert.Equal(t, []string{"1", "README presence", "README exists", "10", "15", ""}, records[1])
}

func TestPrintRulesParquetUnsupported(t *testing.T) {
	err := PrintRules(sampleCatalog(), &contract.Config{Output: schema.ParquetOut, OutputFile: "rules.parquet"})
	assert.Error(t, err)
}

func TestRuleCatalogJSONShape(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, sampleCatalog()))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, float64(50), decoded["baseline"])
	assert.Len(t, decoded["rules"], 2)
	assert.Len(t, decoded["levels"], 2)
}
