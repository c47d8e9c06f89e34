// Package cli provides styled terminal output for the bookmaster command.
// This file renders quick-scan analysis results and advisory findings.

package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/quietpress/bookmaster/internal/advisor"
	"github.com/quietpress/bookmaster/internal/analyzer"
)

// DisplayAnalysis writes a quick-scan report for one file to the console.
func DisplayAnalysis(w io.Writer, inputPath string, a *analyzer.Analysis, findings []advisor.Finding) {
	// Header
	fmt.Fprintln(w, strings.Repeat("=", 70))
	fmt.Fprintf(w, "ANALYSIS: %s\n", filepath.Base(inputPath))
	fmt.Fprintln(w, strings.Repeat("=", 70))

	// File info
	fmt.Fprintf(w, "Duration:    %s\n", formatDurationHMS(a.Duration))
	fmt.Fprintf(w, "Sample Rate: %d Hz\n", a.SampleRate)
	if a.IsEstimate {
		fmt.Fprintln(w, "Coverage:    partial (capped read; figures estimated from the scanned portion)")
	}
	fmt.Fprintln(w)

	// Levels section
	writeSection(w, "LEVELS")
	fmt.Fprintf(w, "  Loudness (est): %.1f dB\n", a.EstLUFS)
	fmt.Fprintf(w, "  Peak:           %.1f dBFS\n", a.Peak)
	fmt.Fprintf(w, "  Noise Floor:    %.1f dB\n", a.NoiseFloor)
	fmt.Fprintln(w)

	// Advice section
	if len(findings) > 0 {
		writeSection(w, "ADVICE")
		for _, f := range findings {
			fmt.Fprintf(w, "  %s %s\n", tierBadge(f.Tier), f.Message)
		}
		fmt.Fprintln(w)
	}
}

func writeSection(w io.Writer, title string) {
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("-", len(title)))
}

func tierBadge(t advisor.Tier) string {
	switch t {
	case advisor.TierWarn:
		return WarnStyle.Render("[warn]")
	case advisor.TierInfo:
		return InfoStyle.Render("[info]")
	default:
		return GoodStyle.Render("[good]")
	}
}

// formatDurationHMS formats a duration in seconds as H:MM:SS, or M:SS for
// short files.
func formatDurationHMS(seconds float64) string {
	total := int(seconds + 0.5)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
