// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"io"
	"os"

	"github.com/huangsam/repograde/internal/contract"
)

// LogAnalysisHeader prints a concise, 2-line header before an analysis starts.
// It goes to stderr so that machine-readable output on stdout stays clean.
func LogAnalysisHeader(cfg *contract.Config) {
	writeAnalysisHeader(os.Stderr, cfg)
}

func writeAnalysisHeader(w io.Writer, cfg *contract.Config) {
	repoIcon, sourceIcon := "", ""
	if cfg.UseEmojis {
		repoIcon, sourceIcon = "🔎 ", "🌐 "
	}

	// Line 1: which repository and how much history
	_, _ = fmt.Fprintf(w, "%sRepo: %s (commits: up to %d)\n", repoIcon, cfg.Repo, cfg.CommitLimit)

	// Line 2: where the facts come from
	_, _ = fmt.Fprintf(w, "%sSource: %s (cache: %s)\n", sourceIcon, cfg.APIBaseURL, cfg.CacheBackend)
}
