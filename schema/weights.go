package schema

import "fmt"

// Emphasis values used when building a weight table.
const (
	DefaultAlpha  = 1.0 // alpha outside of any interval and for relevant series
	DimmedAlpha   = 0.1 // alpha for non-relevant series inside an interval
	DefaultAlpha2 = 0.1 // background emphasis outside of any interval
	RaisedAlpha2  = 1.0 // background emphasis for relevant series
	DefaultWidth  = 1.0 // line width unless raised to the max width
)

// Weight is the emphasis triple for one series at one row.
type Weight struct {
	Alpha  float64 `json:"alpha"`
	Alpha2 float64 `json:"alpha2"`
	Width  float64 `json:"width"`
}

// WeightTable holds one Weight per (row, series) pair. It is built once,
// smoothed once and then only read.
type WeightTable struct {
	Series []string    `json:"series"`
	Times  []float64   `json:"times"`
	Alpha  [][]float64 `json:"alpha"`  // Alpha[row][series]
	Alpha2 [][]float64 `json:"alpha2"` // Alpha2[row][series]
	Width  [][]float64 `json:"width"`  // Width[row][series]
}

// NewWeightTable allocates a table of the given shape filled with the default weights.
func NewWeightTable(series []string, times []float64) *WeightTable {
	wt := &WeightTable{
		Series: append([]string(nil), series...),
		Times:  append([]float64(nil), times...),
		Alpha:  make([][]float64, len(times)),
		Alpha2: make([][]float64, len(times)),
		Width:  make([][]float64, len(times)),
	}
	for r := range times {
		wt.Alpha[r] = filled(len(series), DefaultAlpha)
		wt.Alpha2[r] = filled(len(series), DefaultAlpha2)
		wt.Width[r] = filled(len(series), DefaultWidth)
	}
	return wt
}

func filled(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// Len returns the number of rows (frames).
func (wt *WeightTable) Len() int {
	return len(wt.Times)
}

// Weight returns the emphasis triple for series s at frame f.
func (wt *WeightTable) Weight(f int, s string) (Weight, error) {
	r, c, err := wt.locate(f, s)
	if err != nil {
		return Weight{}, err
	}
	return Weight{Alpha: wt.Alpha[r][c], Alpha2: wt.Alpha2[r][c], Width: wt.Width[r][c]}, nil
}

// AlphaAt returns the primary emphasis for series s at frame f.
func (wt *WeightTable) AlphaAt(f int, s string) (float64, error) {
	w, err := wt.Weight(f, s)
	return w.Alpha, err
}

// Alpha2At returns the secondary emphasis for series s at frame f.
func (wt *WeightTable) Alpha2At(f int, s string) (float64, error) {
	w, err := wt.Weight(f, s)
	return w.Alpha2, err
}

// WidthAt returns the line width for series s at frame f.
func (wt *WeightTable) WidthAt(f int, s string) (float64, error) {
	w, err := wt.Weight(f, s)
	return w.Width, err
}

// Row returns the weights of every series at frame f, in series order.
func (wt *WeightTable) Row(f int) ([]Weight, error) {
	if err := CheckFrame(f, wt.Len()); err != nil {
		return nil, err
	}
	out := make([]Weight, len(wt.Series))
	for c := range wt.Series {
		out[c] = Weight{Alpha: wt.Alpha[f][c], Alpha2: wt.Alpha2[f][c], Width: wt.Width[f][c]}
	}
	return out, nil
}

func (wt *WeightTable) locate(f int, s string) (int, int, error) {
	if err := CheckFrame(f, wt.Len()); err != nil {
		return 0, 0, err
	}
	for c, name := range wt.Series {
		if name == s {
			return f, c, nil
		}
	}
	return 0, 0, InvalidArgument(fmt.Sprintf("unknown series %q", s))
}

// CheckFrame returns an OutOfRange error unless 0 <= f < n.
func CheckFrame(f, n int) error {
	if f < 0 || f >= n {
		return OutOfRange(fmt.Sprintf("frame %d outside [0, %d)", f, n))
	}
	return nil
}
