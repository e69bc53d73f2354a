package outwriter

import (
	"fmt"
	"io"
	"time"

	"github.com/huangsam/paleoreel/internal/contract"
	"github.com/huangsam/paleoreel/schema"
)

// statusTimeFormat is the layout for cache entry times.
const statusTimeFormat = "2006-01-02 15:04:05"

// PrintCacheStatus prints cache status information as text or JSON.
func PrintCacheStatus(w io.Writer, status schema.CacheStatus, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeJSON(w, status)
	}

	lines := []string{
		fmt.Sprintf("Cache Backend: %s", status.Backend),
		fmt.Sprintf("Connected: %t", status.Connected),
	}
	if status.Connected {
		lines = append(lines, fmt.Sprintf("Total Entries: %d", status.TotalEntries))
		if status.TotalEntries > 0 {
			lines = append(lines,
				fmt.Sprintf("Last Entry: %s", status.LastEntryTime.Format(statusTimeFormat)),
				fmt.Sprintf("Oldest Entry: %s", status.OldestEntryTime.Format(statusTimeFormat)),
			)
		}
		lines = append(lines, fmt.Sprintf("Table Size: %d bytes", status.TableSizeBytes))
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// PrintRenderSummary reports where frames were written and how fast to play them.
func PrintRenderSummary(summary schema.RenderSummary, cfg *contract.Config, duration time.Duration) error {
	if summary.Frames == 0 {
		return fmt.Errorf("no frames rendered to %s", summary.Dir)
	}
	successf(cfg, "🎞️ ", "Rendered %d frames (from frame %d) to %s in %v",
		summary.Frames, summary.First, summary.Dir, duration.Round(time.Millisecond))
	successf(cfg, "⏱️ ", "Playback: %v per frame (%.2f fps)", summary.Interval, summary.FPS())
	return nil
}
