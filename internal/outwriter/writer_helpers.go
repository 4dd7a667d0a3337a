package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/huangsam/repograde/internal/contract"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Text layout bounds.
const (
	defaultTermWidth = 80 // used when the terminal size can't be detected (CI, pipes)
	maxTextWidth     = 100
	minTextWidth     = 40
	textIndent       = "  "
)

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// It accepts a writer function that takes an io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		_, _ = fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeYAML mirrors writeJSON for YAML output.
func writeYAML(w io.Writer, data any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return encoder.Close()
}

// writeCSVWithHeader handles the common pattern of creating a CSV writer,
// writing a header, and writing data rows.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	if err := writeRows(csvWriter); err != nil {
		return err
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// getTextWidth returns the width used to wrap free text.
// The width flag wins over terminal detection.
func getTextWidth(cfg *contract.Config) int {
	width := cfg.Width
	if width <= 0 {
		detected, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detected <= 0 {
			detected = defaultTermWidth
		}
		width = detected
	}
	return min(max(width, minTextWidth), maxTextWidth)
}

// wrapText breaks text on spaces so that no line exceeds width runes, then
// prefixes every line with indent. Words longer than width stay intact.
func wrapText(text string, width int, indent string) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	limit := max(width-len([]rune(indent)), 1)

	var sb strings.Builder
	lineLen := 0
	sb.WriteString(indent)
	for i, word := range words {
		wordLen := len([]rune(word))
		if i > 0 {
			if lineLen+1+wordLen > limit {
				sb.WriteString("\n")
				sb.WriteString(indent)
				lineLen = 0
			} else {
				sb.WriteString(" ")
				lineLen++
			}
		}
		sb.WriteString(word)
		lineLen += wordLen
	}
	return sb.String()
}
