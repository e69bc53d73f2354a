package contract

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Correlation strength label constants.
const (
	StrongValue   = "Strong"   // Strong value
	ModerateValue = "Moderate" // Moderate value
	WeakValue     = "Weak"     // Weak value
	NoneValue     = "None"     // No usable correlation
)

// Color variables for console output.
var (
	StrongColor   = color.New(color.FgRed, color.Bold) // StrongColor marks tightly coupled series.
	ModerateColor = color.New(color.FgYellow)          // ModerateColor marks a noticeable relationship.
	WeakColor     = color.New(color.FgCyan)            // WeakColor marks a faint relationship.
	NoneColor     = color.New(color.FgHiBlack)         // NoneColor marks missing or flat windows.
	EpochColor    = color.New(color.FgGreen, color.Bold)
)

// GetPlainLabel returns a plain text label for the strength of a correlation
// coefficient. NaN coefficients are labelled None.
func GetPlainLabel(r float64) string {
	a := math.Abs(r)
	switch {
	case math.IsNaN(r):
		return NoneValue
	case a >= 0.7:
		return StrongValue
	case a >= 0.4:
		return ModerateValue
	case a >= 0.2:
		return WeakValue
	default:
		return NoneValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
func GetColorLabel(r float64) string {
	text := GetPlainLabel(r)
	return ColorizeByLabel(text, text)
}

// ColorizeByLabel colors s with the color of the given strength label.
func ColorizeByLabel(s, label string) string {
	switch label {
	case StrongValue:
		return StrongColor.Sprint(s)
	case ModerateValue:
		return ModerateColor.Sprint(s)
	case WeakValue:
		return WeakColor.Sprint(s)
	default:
		return NoneColor.Sprint(s)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. It falls back to os.Stdout when no path is given.
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
		return ".paleoreel_cache.db"
	}
	return filepath.Join(homeDir, ".paleoreel_cache.db")
}

// TruncateName truncates a column or series name to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 so there is room for "..." and at least one character.
func TruncateName(name string, maxWidth int) string {
	runes := []rune(name)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return name
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
