package parquet

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/huangsam/repograde/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *schema.AnalysisResult {
	return &schema.AnalysisResult{
		Score:     85,
		Level:     schema.ExpertLevel,
		Breakdown: []string{"Has a README (+10)", "Tests present (+20)"},
		Summary:   "This project demonstrates automated testing. Keep up the great work!",
		Roadmap:   []string{"Add a LICENSE file if open source"},
		Metrics: schema.MetricsRecord{
			RepoInfo:  schema.RepoInfo{Owner: "huangsam", Name: "repograde", Stars: 12, Size: 340},
			Counts:    schema.CountMetrics{Files: 40, Folders: 9},
			Languages: map[string]float64{"Go": 92.5, "Shell": 7.5},
			Commits:   schema.CommitMetrics{TotalFetched: 100, FrequencyPerWeek: 3.25},
			Readme:    schema.ReadmeMetrics{Exists: true, Length: 1200, Sections: 6, HasSetup: true},
			Tests:     schema.TestMetrics{Exists: true, Count: 14},
			Structure: schema.StructureMetrics{Depth: 4},
		},
	}
}

func TestAnalysisRecordStructTags(t *testing.T) {
	s := parquet.SchemaOf(new(AnalysisRecord))
	require.NotNil(t, s)

	for _, column := range []string{"analyzed_at", "owner", "name", "score", "level", "summary", "files", "commits_per_week", "primary_language"} {
		_, ok := s.Lookup(column)
		assert.True(t, ok, "column %s should exist in schema", column)
	}
}

func TestFromResult(t *testing.T) {
	at := time.Date(2025, 6, 1, 10, 0, 0, 0, time.FixedZone("X", 3600))
	record := FromResult(sampleResult(), at)

	assert.Equal(t, at.UTC(), record.AnalyzedAt)
	assert.Equal(t, "huangsam", record.Owner)
	assert.Equal(t, "repograde", record.Name)
	assert.Equal(t, int32(85), record.Score)
	assert.Equal(t, "Expert", record.Level)
	assert.Equal(t, int32(40), record.Files)
	assert.Equal(t, int32(14), record.TestFiles)
	assert.Equal(t, "Go", record.PrimaryLanguage)
	assert.Equal(t, []LanguageShare{{"Go", 92.5}, {"Shell", 7.5}}, record.Languages)
}

func TestWriteAnalysisRecords(t *testing.T) {
	records := []AnalysisRecord{FromResult(sampleResult(), time.Unix(1700000000, 0))}

	var buf bytes.Buffer
	require.NoError(t, WriteAnalysisRecords(&buf, records))
	require.Positive(t, buf.Len())

	reader := parquet.NewGenericReader[AnalysisRecord](bytes.NewReader(buf.Bytes()))
	defer func() { _ = reader.Close() }()
	require.Equal(t, int64(1), reader.NumRows())

	rows := make([]AnalysisRecord, 1)
	n, err := reader.Read(rows)
	if err != nil && !errors.Is(err, io.EOF) {
		require.NoError(t, err)
	}
	require.Equal(t, 1, n)

	got := rows[0]
	assert.Equal(t, "repograde", got.Name)
	assert.Equal(t, int32(85), got.Score)
	assert.Equal(t, records[0].Breakdown, got.Breakdown)
	assert.Equal(t, records[0].Roadmap, got.Roadmap)
	assert.InDelta(t, 3.25, got.CommitsPerWeek, 0.0001)
	assert.True(t, got.ReadmeExists)
	assert.Len(t, got.Languages, 2)
	assert.True(t, got.AnalyzedAt.Equal(records[0].AnalyzedAt))
}

func TestWriteAnalysisRecordsEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteAnalysisRecords(&buf, nil))

	reader := parquet.NewGenericReader[AnalysisRecord](bytes.NewReader(buf.Bytes()))
	defer func() { _ = reader.Close() }()
	assert.Equal(t, int64(0), reader.NumRows())
}
