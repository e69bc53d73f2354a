package schema

import "math"

// WeightRecord is one (frame, series) entry of a weight table in long format.
type WeightRecord struct {
	Frame  int     `json:"frame"`
	Time   float64 `json:"time"`
	Series string  `json:"series"`
	Alpha  float64 `json:"alpha"`
	Alpha2 float64 `json:"alpha2"`
	Width  float64 `json:"width"`
}

// ReadoutRecord is one readout line in long format. Value is nil when the
// cell has no value at the frame.
type ReadoutRecord struct {
	Frame  int      `json:"frame"`
	Column string   `json:"column"`
	Value  *float64 `json:"value"`
	Text   string   `json:"text"`
}

// CorrelationCell is one series pair of a correlation frame. R is nil when
// the coefficient is undefined.
type CorrelationCell struct {
	Frame   int      `json:"frame"`
	Start   int      `json:"start"`
	End     int      `json:"end"`
	SeriesA string   `json:"series_a"`
	SeriesB string   `json:"series_b"`
	R       *float64 `json:"r"`
}

// FlattenWeights lists the weights of the named series for frames [from, to).
// Every series is listed when names is empty.
func FlattenWeights(wt *WeightTable, names []string, from, to int) ([]WeightRecord, error) {
	if len(names) == 0 {
		names = wt.Series
	}
	if from < 0 || to > wt.Len() || from > to {
		return nil, OutOfRange("frame range outside the weight table")
	}
	out := make([]WeightRecord, 0, (to-from)*len(names))
	for f := from; f < to; f++ {
		for _, name := range names {
			w, err := wt.Weight(f, name)
			if err != nil {
				return nil, err
			}
			out = append(out, WeightRecord{
				Frame:  f,
				Time:   wt.Times[f],
				Series: name,
				Alpha:  w.Alpha,
				Alpha2: w.Alpha2,
				Width:  w.Width,
			})
		}
	}
	return out, nil
}

// FlattenReadouts lists every line of every readout.
func FlattenReadouts(readouts []Readout) []ReadoutRecord {
	var out []ReadoutRecord
	for _, ro := range readouts {
		for _, line := range ro.Lines {
			rec := ReadoutRecord{Frame: ro.Frame, Column: line.Column, Text: line.Text}
			if line.Available {
				rec.Value = ptr(line.Value)
			}
			out = append(out, rec)
		}
	}
	return out
}

// FlattenCorrelations lists each distinct series pair (upper triangle without
// the diagonal) of every frame.
func FlattenCorrelations(frames []CorrelationFrame) []CorrelationCell {
	var out []CorrelationCell
	for _, cf := range frames {
		for i := range cf.Series {
			for j := i + 1; j < len(cf.Series); j++ {
				cell := CorrelationCell{
					Frame:   cf.Frame,
					Start:   cf.Start,
					End:     cf.End,
					SeriesA: cf.Series[i],
					SeriesB: cf.Series[j],
				}
				if r := cf.Matrix[i][j]; !math.IsNaN(r) {
					cell.R = ptr(r)
				}
				out = append(out, cell)
			}
		}
	}
	return out
}

func ptr(v float64) *float64 {
	return &v
}
