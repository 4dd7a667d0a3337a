// Package parquet provides the columnar export of analysis results using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"time"

	"github.com/huangsam/repograde/schema"
	"github.com/parquet-go/parquet-go"
)

// LanguageShare is one entry of the language breakdown.
type LanguageShare struct {
	Language string  `parquet:"language"`
	Percent  float64 `parquet:"percent"`
}

// AnalysisRecord is one analyzed repository flattened into a single row.
type AnalysisRecord struct {
	// AnalyzedAt is when the result was produced
	AnalyzedAt time.Time `parquet:"analyzed_at,snappy"`

	Owner       string `parquet:"owner,snappy"`
	Name        string `parquet:"name,snappy"`
	Description string `parquet:"description,snappy"`
	Stars       int32  `parquet:"stars,snappy"`
	Forks       int32  `parquet:"forks,snappy"`
	OpenIssues  int32  `parquet:"open_issues,snappy"`
	SizeKB      int32  `parquet:"size_kb,snappy"`

	Score     int32    `parquet:"score,snappy"`
	Level     string   `parquet:"level,snappy"`
	Breakdown []string `parquet:"breakdown,list"`
	Summary   string   `parquet:"summary,snappy"`
	Roadmap   []string `parquet:"roadmap,list"`

	Files           int32   `parquet:"files,snappy"`
	Folders         int32   `parquet:"folders,snappy"`
	CommitsFetched  int32   `parquet:"commits_fetched,snappy"`
	CommitsPerWeek  float64 `parquet:"commits_per_week,snappy"`
	ReadmeExists    bool    `parquet:"readme_exists"`
	ReadmeLength    int32   `parquet:"readme_length,snappy"`
	ReadmeSections  int32   `parquet:"readme_sections,snappy"`
	ReadmeHasSetup  bool    `parquet:"readme_has_setup"`
	ReadmeHasUsage  bool    `parquet:"readme_has_usage"`
	TestFiles       int32   `parquet:"test_files,snappy"`
	MaxDepth        int32   `parquet:"max_depth,snappy"`
	PrimaryLanguage string  `parquet:"primary_language,snappy"`

	Languages []LanguageShare `parquet:"languages,list"`
}

// FromResult flattens an analysis result into a record.
func FromResult(result *schema.AnalysisResult, analyzedAt time.Time) AnalysisRecord {
	m := result.Metrics
	shares := schema.SortLanguages(m.Languages)
	languages := make([]LanguageShare, len(shares))
	for i, share := range shares {
		languages[i] = LanguageShare{Language: share.Language, Percent: share.Percent}
	}

	return AnalysisRecord{
		AnalyzedAt:      analyzedAt.UTC(),
		Owner:           m.RepoInfo.Owner,
		Name:            m.RepoInfo.Name,
		Description:     m.RepoInfo.Description,
		Stars:           int32(m.RepoInfo.Stars),
		Forks:           int32(m.RepoInfo.Forks),
		OpenIssues:      int32(m.RepoInfo.OpenIssues),
		SizeKB:          int32(m.RepoInfo.Size),
		Score:           int32(result.Score),
		Level:           string(result.Level),
		Breakdown:       result.Breakdown,
		Summary:         result.Summary,
		Roadmap:         result.Roadmap,
		Files:           int32(m.Counts.Files),
		Folders:         int32(m.Counts.Folders),
		CommitsFetched:  int32(m.Commits.TotalFetched),
		CommitsPerWeek:  m.Commits.FrequencyPerWeek,
		ReadmeExists:    m.Readme.Exists,
		ReadmeLength:    int32(m.Readme.Length),
		ReadmeSections:  int32(m.Readme.Sections),
		ReadmeHasSetup:  m.Readme.HasSetup,
		ReadmeHasUsage:  m.Readme.HasUsage,
		TestFiles:       int32(m.Tests.Count),
		MaxDepth:        int32(m.Structure.Depth),
		PrimaryLanguage: schema.PrimaryLanguage(m.Languages),
		Languages:       languages,
	}
}

// WriteAnalysisRecords writes records as a Parquet file to w.
// The schema is derived from the AnalysisRecord struct tags.
func WriteAnalysisRecords(w io.Writer, records []AnalysisRecord) error {
	writer := parquet.NewGenericWriter[AnalysisRecord](w)
	if _, err := writer.Write(records); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	// Close flushes the footer, so its error matters
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}
