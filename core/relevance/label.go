package relevance

import "github.com/huangsam/paleoreel/schema"

// Match returns the last interval whose range contains t.
func Match(t float64, intervals schema.IntervalSet) (schema.Interval, bool) {
	for i := len(intervals) - 1; i >= 0; i-- {
		if intervals[i].Contains(t) {
			return intervals[i], true
		}
	}
	return schema.Interval{}, false
}

// MembershipLabel returns the label of the last interval containing t.
func MembershipLabel(t float64, intervals schema.IntervalSet) (string, bool) {
	iv, ok := Match(t, intervals)
	return iv.Label, ok
}

// MembershipNote returns the narrative note of the last interval containing t.
func MembershipNote(t float64, intervals schema.IntervalSet) (string, bool) {
	iv, ok := Match(t, intervals)
	return iv.Note, ok
}

// LabelAt returns the interval label for frame f of ts.
func LabelAt(ts *schema.TimeSeries, intervals schema.IntervalSet, f int) (string, bool, error) {
	if err := schema.CheckFrame(f, ts.Len()); err != nil {
		return "", false, err
	}
	label, ok := MembershipLabel(ts.Times[f], intervals)
	return label, ok, nil
}

// Epochs returns the label and note for every frame of ts.
func Epochs(ts *schema.TimeSeries, intervals schema.IntervalSet) []schema.EpochFrame {
	frames := make([]schema.EpochFrame, ts.Len())
	for f, t := range ts.Times {
		iv, ok := Match(t, intervals)
		frames[f] = schema.EpochFrame{
			Frame:   f,
			Time:    t,
			Label:   iv.Label,
			Note:    iv.Note,
			Matched: ok,
		}
	}
	return frames
}
