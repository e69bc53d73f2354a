// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/huangsam/paleoreel/internal/contract"
	"github.com/huangsam/paleoreel/internal/parquet"
	"github.com/huangsam/paleoreel/schema"
	"golang.org/x/term"
)

// formatWriters holds the per-format writers of one result type.
type formatWriters struct {
	name    string                // used in error and success messages
	json    func(io.Writer) error // JSON document
	csv     func(io.Writer) error // CSV with header
	parquet func(path string) error
	table   func(io.Writer) error // human-readable table (default)
}

// dispatch writes results in the configured output format.
func dispatch(cfg *contract.Config, fw formatWriters) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, fw.json, "Wrote JSON "+fw.name); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, fw.csv, "Wrote CSV "+fw.name); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := fw.parquet(cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing parquet output: %w", err)
		}
		successf(cfg, "💾", "Wrote parquet %s to %s", fw.name, cfg.OutputFile)
	default:
		if err := writeWithFile(cfg.OutputFile, fw.table, "Wrote "+fw.name+" table"); err != nil {
			return fmt.Errorf("error writing %s table output: %w", fw.name, err)
		}
	}
	return nil
}

// parquetWriter adapts a row slice to the parquet slot of formatWriters.
func parquetWriter[T any](rows []T) func(string) error {
	return func(path string) error {
		return parquet.WriteFile(rows, path)
	}
}

// successf prints a status line on stderr, with an emoji prefix when enabled.
func successf(cfg *contract.Config, emoji, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if cfg.UseEmojis {
		msg = emoji + " " + msg
	}
	_, _ = fmt.Fprintln(os.Stderr, msg)
}

// colorizer returns a Sprint function for c, or plain fmt.Sprint when colors are off.
func colorizer(cfg *contract.Config, c *color.Color) func(...any) string {
	if cfg.UseColors {
		return c.SprintFunc()
	}
	return fmt.Sprint
}

// getMaxTableNameWidth calculates the maximum width for series names in table
// output based on terminal width and the space taken by the other columns.
func getMaxTableNameWidth(cfg *contract.Config, fixedWidth int) int {
	termWidth := cfg.Width // Absolute width override from flag/env
	if termWidth == 0 {
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for table borders, separators, and padding
	available := termWidth - fixedWidth - 20
	if available < 10 {
		return 10
	}
	if available > 40 {
		return 40
	}
	return available
}

// writeFooter prints the timing line under a table.
func writeFooter(w io.Writer, cfg *contract.Config, what string, count int, duration time.Duration) error {
	_, err := fmt.Fprintf(w, "%d %s in %v. Cache backend: %s\n", count, what, duration.Round(time.Microsecond), cfg.CacheBackend)
	return err
}
