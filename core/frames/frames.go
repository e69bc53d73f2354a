// Package frames derives per-frame views of a time series for animation:
// text readouts, playback timing, sliding correlations and axis ranges.
package frames

import (
	"fmt"
	"math"
	"time"

	"github.com/huangsam/paleoreel/schema"
)

// DefaultPlaybackTotal is the playback length of a whole animation.
const DefaultPlaybackTotal = time.Minute

// PlaybackInterval returns the per-frame delay so that frames frames fill total.
// A non-positive total falls back to DefaultPlaybackTotal.
func PlaybackInterval(frames int, total time.Duration) (time.Duration, error) {
	if frames < 1 {
		return 0, schema.InvalidArgument(fmt.Sprintf("frame count must be at least 1 (received %d)", frames))
	}
	if total <= 0 {
		total = DefaultPlaybackTotal
	}
	return total / time.Duration(frames), nil
}

// NearestFrame returns the frame whose time coordinate is closest to t.
// Ties go to the earlier frame.
func NearestFrame(ts *schema.TimeSeries, t float64) (int, error) {
	if ts.Len() == 0 {
		return 0, schema.OutOfRange("time series has no rows")
	}
	if math.IsNaN(t) {
		return 0, schema.InvalidArgument("time coordinate is NaN")
	}
	best, bestDist := 0, math.Inf(1)
	for f, ft := range ts.Times {
		if d := math.Abs(ft - t); d < bestDist {
			best, bestDist = f, d
		}
	}
	return best, nil
}
