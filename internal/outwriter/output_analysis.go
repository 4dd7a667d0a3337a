package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/repograde/internal/contract"
	"github.com/huangsam/repograde/internal/parquet"
	"github.com/huangsam/repograde/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintAnalysis outputs one analysis result, dispatching based on the output format configured.
func PrintAnalysis(result *schema.AnalysisResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	case schema.YAMLOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeYAML(w, result)
		}, "Wrote YAML")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAnalysisCSV(w, result)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return parquet.WriteAnalysisRecords(w, []parquet.AnalysisRecord{parquet.FromResult(result, time.Now())})
		}, "Wrote Parquet")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAnalysisText(w, result, cfg, duration)
		}, "Wrote report")
	}
}

// levelLabel colors the level for terminals when enabled.
func levelLabel(level schema.Level, cfg *contract.Config) string {
	if cfg.UseColors {
		return contract.GetColorLabel(level)
	}
	return contract.GetPlainLabel(level)
}

// writeAnalysisText renders the human-readable report.
func writeAnalysisText(w io.Writer, result *schema.AnalysisResult, cfg *contract.Config, duration time.Duration) error {
	width := getTextWidth(cfg)
	info := result.Metrics.RepoInfo

	if _, err := fmt.Fprintf(w, "%s/%s\n", info.Owner, info.Name); err != nil {
		return err
	}
	if info.Description != "" {
		if _, err := fmt.Fprintln(w, wrapText(info.Description, width, "")); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "\nScore: %d/100 (%s)\n\n", result.Score, levelLabel(result.Level, cfg)); err != nil {
		return err
	}

	breakdown := make([][]string, len(result.Breakdown))
	for i, line := range result.Breakdown {
		breakdown[i] = []string{strconv.Itoa(i + 1), line}
	}
	if err := renderTable(w, []string{"#", "Breakdown"}, breakdown, tw.AlignLeft); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "\nSummary:\n%s\n\nRoadmap:\n", wrapText(result.Summary, width, textIndent)); err != nil {
		return err
	}
	for i, action := range result.Roadmap {
		if _, err := fmt.Fprintf(w, "%s%d. %s\n", textIndent, i+1, action); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}

	if err := renderTable(w, []string{"Metric", "Value"}, metricRows(result.Metrics), tw.AlignRight); err != nil {
		return err
	}

	if shares := schema.SortLanguages(result.Metrics.Languages); len(shares) > 0 {
		languages := make([][]string, len(shares))
		for i, share := range shares {
			languages[i] = []string{share.Language, fmt.Sprintf("%.2f%%", share.Percent)}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		if err := renderTable(w, []string{"Language", "Share"}, languages, tw.AlignRight); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "Analysis completed in %v. Cache backend: %s\n", duration.Round(time.Millisecond), cfg.CacheBackend)
	return err
}

// renderTable writes a bordered table with the given row alignment.
func renderTable(w io.Writer, headers []string, rows [][]string, align tw.Align) error {
	table := tablewriter.NewWriter(w)
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = align
	})
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

// metricRow is a labeled metric value shared by the text and CSV writers.
type metricRow struct {
	key   string
	label string
	value string
}

// metricList flattens a metrics record in display order.
func metricList(m schema.MetricsRecord) []metricRow {
	return []metricRow{
		{"files", "Files", strconv.Itoa(m.Counts.Files)},
		{"folders", "Folders", strconv.Itoa(m.Counts.Folders)},
		{"max_depth", "Max depth", strconv.Itoa(m.Structure.Depth)},
		{"commits_fetched", "Commits fetched", strconv.Itoa(m.Commits.TotalFetched)},
		{"commits_per_week", "Commits per week", strconv.FormatFloat(m.Commits.FrequencyPerWeek, 'f', 2, 64)},
		{"readme_exists", "README", strconv.FormatBool(m.Readme.Exists)},
		{"readme_length", "README length", strconv.Itoa(m.Readme.Length)},
		{"readme_sections", "README sections", strconv.Itoa(m.Readme.Sections)},
		{"readme_has_setup", "Setup guidance", strconv.FormatBool(m.Readme.HasSetup)},
		{"readme_has_usage", "Usage guidance", strconv.FormatBool(m.Readme.HasUsage)},
		{"test_files", "Test files", strconv.Itoa(m.Tests.Count)},
		{"stars", "Stars", strconv.Itoa(m.RepoInfo.Stars)},
		{"forks", "Forks", strconv.Itoa(m.RepoInfo.Forks)},
		{"open_issues", "Open issues", strconv.Itoa(m.RepoInfo.OpenIssues)},
	}
}

func metricRows(m schema.MetricsRecord) [][]string {
	list := metricList(m)
	rows := make([][]string, len(list))
	for i, row := range list {
		rows[i] = []string{row.label, row.value}
	}
	return rows
}

// writeAnalysisCSV writes the result in long form: one (section, key, value) row per fact.
func writeAnalysisCSV(w io.Writer, result *schema.AnalysisResult) error {
	header := []string{"section", "key", "value"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		info := result.Metrics.RepoInfo
		rows := [][]string{
			{"repo", "owner", info.Owner},
			{"repo", "name", info.Name},
			{"score", "score", strconv.Itoa(result.Score)},
			{"score", "level", contract.GetPlainLabel(result.Level)},
		}
		for i, line := range result.Breakdown {
			rows = append(rows, []string{"breakdown", strconv.Itoa(i + 1), line})
		}
		rows = append(rows, []string{"summary", "summary", strings.TrimSpace(result.Summary)})
		for i, action := range result.Roadmap {
			rows = append(rows, []string{"roadmap", strconv.Itoa(i + 1), action})
		}
		for _, metric := range metricList(result.Metrics) {
			rows = append(rows, []string{"metric", metric.key, metric.value})
		}
		for _, share := range schema.SortLanguages(result.Metrics.Languages) {
			rows = append(rows, []string{"language", share.Language, strconv.FormatFloat(share.Percent, 'f', 2, 64)})
		}

		for _, row := range rows {
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}
