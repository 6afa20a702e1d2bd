package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/faultline/faultline/schema"
	"github.com/fatih/color"
)

// Color variables for console output.
var (
	criticalColor  = color.New(color.FgRed, color.Bold)     // standard danger
	unstableColor  = color.New(color.FgMagenta, color.Bold) // strong, distinct warning
	moderateColor  = color.New(color.FgYellow)              // standard caution, not bold
	healthyColor   = color.New(color.FgGreen)               // within budget / stable
	recurrentColor = color.New(color.FgRed, color.Bold)
)

// StabilityLabel returns the tier text for table output, colored when enabled.
func StabilityLabel(tier schema.StabilityTier, colored bool) string {
	text := string(tier)
	if !colored {
		return text
	}
	switch tier {
	case schema.CriticalMTBF:
		return criticalColor.Sprint(text)
	case schema.UnstableTier:
		return unstableColor.Sprint(text)
	case schema.ModerateTier:
		return moderateColor.Sprint(text)
	default: // Stable
		return healthyColor.Sprint(text)
	}
}

// RiskLabel returns the SLA tier text for table output, colored when enabled.
func RiskLabel(tier schema.RiskTier, colored bool) string {
	text := string(tier)
	if !colored {
		return text
	}
	switch tier {
	case schema.CriticalSLA:
		return criticalColor.Sprint(text)
	case schema.RiskHighTier:
		return unstableColor.Sprint(text)
	case schema.AttentionTier:
		return moderateColor.Sprint(text)
	default: // Safe
		return healthyColor.Sprint(text)
	}
}

// ReasonLabel returns the recurrence reason for table output, colored when enabled.
func ReasonLabel(reason schema.RecurrenceReason, colored bool) string {
	text := string(reason)
	if !colored || text == "" {
		return text
	}
	if reason == schema.ReasonTrimesterOnly {
		return moderateColor.Sprint(text)
	}
	return recurrentColor.Sprint(text)
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. Empty means stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
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

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for snapshot cache storage.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".faultline_cache.db"
	}
	return filepath.Join(homeDir, ".faultline_cache.db")
}
