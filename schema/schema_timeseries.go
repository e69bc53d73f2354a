package schema

import "time"

// EpochFrame is the interval label and note shown at a single frame.
type EpochFrame struct {
	Frame   int     `json:"frame"`
	Time    float64 `json:"time"`
	Label   string  `json:"label"`
	Note    string  `json:"note,omitempty"`
	Matched bool    `json:"matched"` // false when no interval covers the frame
}

// ReadoutLine is one "<column>: <value>" entry of a text readout.
type ReadoutLine struct {
	Column    string  `json:"column"`
	Value     float64 `json:"-"`
	Available bool    `json:"available"`
	Text      string  `json:"text"`
}

// Readout holds the synchronized text readout for one frame.
type Readout struct {
	Frame int           `json:"frame"`
	Lines []ReadoutLine `json:"lines"`
}

// CorrelationFrame is the correlation matrix of all series over one sliding window.
// Matrix entries are NaN when a pair has too few observations or zero variance.
type CorrelationFrame struct {
	Frame  int         `json:"frame"`
	Start  int         `json:"start"` // first row of the window
	End    int         `json:"end"`   // one past the last row of the window
	Series []string    `json:"series"`
	Matrix [][]float64 `json:"-"`
}

// AxisRange is a closed value range for axis scaling.
type AxisRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Empty reports whether the range holds no observations.
func (r AxisRange) Empty() bool {
	return r.Min > r.Max
}

// RenderSummary describes a finished PNG frame export.
type RenderSummary struct {
	Dir      string        `json:"dir"`
	First    int           `json:"first"`  // first rendered frame
	Frames   int           `json:"frames"` // number of files written
	Interval time.Duration `json:"interval_ns"`
}

// FPS returns the playback rate implied by Interval.
func (s RenderSummary) FPS() float64 {
	if s.Interval <= 0 {
		return 0
	}
	return float64(time.Second) / float64(s.Interval)
}
