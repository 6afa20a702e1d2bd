// Package outwriter has output and writer logic for all report surfaces.
package outwriter

import (
	"os"

	"github.com/faultline/faultline/internal/contract"
	"golang.org/x/term"
)

// getMaxTableNameWidth calculates the maximum width for service and client
// names in table output based on terminal width.
func getMaxTableNameWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default for narrow terminals and CI
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for rank, counts, tier label and table formatting; the
	// remainder is split between the service and client columns.
	available := (termWidth - 45) / 2
	if available < 15 {
		return 15
	}
	if available > 60 {
		return 60
	}
	return available
}

// truncateName truncates a display name to a maximum width with ellipsis suffix.
func truncateName(name string, maxWidth int) string {
	runes := []rune(name)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return name
}
