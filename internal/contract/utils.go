package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/repograde/schema"
)

// Color variables for console output.
var (
	ExpertColor       = color.New(color.FgGreen, color.Bold) // top band stands out.
	IntermediateColor = color.New(color.FgCyan, color.Bold)
	JuniorColor       = color.New(color.FgYellow)
	BeginnerColor     = color.New(color.FgRed)
)

// GetPlainLabel returns the level as plain text. This is what CSV, JSON and
// YAML outputs use.
func GetPlainLabel(level schema.Level) string {
	return string(level)
}

// GetColorLabel returns a colored level label for console output (table).
func GetColorLabel(level schema.Level) string {
	text := GetPlainLabel(level)

	switch level {
	case schema.ExpertLevel:
		return ExpertColor.Sprint(text)
	case schema.IntermediateLevel:
		return IntermediateColor.Sprint(text)
	case schema.JuniorLevel:
		return JuniorColor.Sprint(text)
	default: // Beginner
		return BeginnerColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path means os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for cache storage.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".repograde_cache.db"
	}
	return filepath.Join(homeDir, ".repograde_cache.db")
}

// TruncateText shortens text to maxWidth runes with an ellipsis suffix.
// Requires maxWidth > 3 so there is room for the ellipsis and some content.
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
