package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/huangsam/repograde/internal/contract"
	"github.com/huangsam/repograde/schema"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintRules displays the scoring model.
// This is a static display that does not fetch anything.
func PrintRules(catalog schema.RuleCatalog, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, catalog)
		}, "Wrote JSON")
	case schema.YAMLOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeYAML(w, catalog)
		}, "Wrote YAML")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRulesCSV(w, catalog)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is only available for analysis results")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRulesText(w, catalog, cfg)
		}, "Wrote text")
	}
}

// signedPoints formats a point value with its sign, or a dash when the rule has none.
func signedPoints(points int, sign string) string {
	if points == 0 {
		return "-"
	}
	return sign + strconv.Itoa(points)
}

// writeRulesText displays the catalog in human-readable text format.
func writeRulesText(w io.Writer, catalog schema.RuleCatalog, cfg *contract.Config) error {
	title := "Scoring Rules"
	if cfg.UseEmojis {
		title = "📏 " + title
	}
	if _, err := fmt.Fprintf(w, "%s\n%s\n\n", title, strings.Repeat("=", len("Scoring Rules"))); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Every repository starts at %d. The total is clamped to [%d, %d].\n\n",
		catalog.Baseline, catalog.MinScore, catalog.MaxScore); err != nil {
		return err
	}

	rows := make([][]string, len(catalog.Rules))
	for i, rule := range catalog.Rules {
		rows[i] = []string{
			strconv.Itoa(rule.Order),
			rule.Name,
			rule.Condition,
			signedPoints(rule.Bonus, "+"),
			signedPoints(rule.Penalty, "-"),
			rule.Otherwise,
		}
	}
	if err := renderTable(w, []string{"#", "Rule", "Condition", "Bonus", "Penalty", "Otherwise"}, rows, tw.AlignLeft); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, "\nLevels:"); err != nil {
		return err
	}
	for _, band := range catalog.Levels {
		if _, err := fmt.Fprintf(w, "%s%-12s score >= %d\n", textIndent, levelLabel(band.Level, cfg), band.MinScore); err != nil {
			return err
		}
	}
	return nil
}

// writeRulesCSV writes one row per rule.
func writeRulesCSV(w io.Writer, catalog schema.RuleCatalog) error {
	header := []string{"order", "name", "condition", "bonus", "penalty", "otherwise"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, rule := range catalog.Rules {
			record := []string{
				strconv.Itoa(rule.Order),
				rule.Name,
				rule.Condition,
				strconv.Itoa(rule.Bonus),
				strconv.Itoa(rule.Penalty),
				rule.Otherwise,
			}
			if err := cw.Write(record); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}
