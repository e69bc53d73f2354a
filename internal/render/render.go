// Package render draws animation frames of a weighted time series to PNG
// using github.com/wcharczuk/go-chart/v2.
package render

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/huangsam/paleoreel/core/frames"
	"github.com/huangsam/paleoreel/core/relevance"
	"github.com/huangsam/paleoreel/schema"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// FileNameFormat names the PNG written for each frame.
const FileNameFormat = "frame_%05d.png"

// fillOpacity scales alpha2 into the opacity of the area under a line.
const fillOpacity = 0.25

// Palette is the series color cycle.
var Palette = []drawing.Color{
	drawing.ColorFromHex("1f77b4"),
	drawing.ColorFromHex("ff7f0e"),
	drawing.ColorFromHex("2ca02c"),
	drawing.ColorFromHex("d62728"),
	drawing.ColorFromHex("9467bd"),
	drawing.ColorFromHex("8c564b"),
	drawing.ColorFromHex("e377c2"),
	drawing.ColorFromHex("7f7f7f"),
	drawing.ColorFromHex("bcbd22"),
	drawing.ColorFromHex("17becf"),
}

var (
	backgroundColor = drawing.ColorFromHex("101418")
	foregroundColor = drawing.ColorFromHex("d0d4d8")
	gridColor       = drawing.ColorFromHex("3a4046")
	textColor       = drawing.ColorWhite
)

// Options controls frame size and content.
type Options struct {
	Width  int
	Height int
	Trail  int      // rows shown up to and including the current frame
	Series []string // series to draw (empty = all)
}

// RenderFrame draws frame f to w as a PNG.
func RenderFrame(w io.Writer, ts *schema.TimeSeries, wt *schema.WeightTable, intervals schema.IntervalSet, f int, opts Options) error {
	if err := schema.CheckFrame(f, ts.Len()); err != nil {
		return err
	}
	if wt.Len() != ts.Len() {
		return schema.InvalidArgument(fmt.Sprintf("weight table has %d rows, time series has %d", wt.Len(), ts.Len()))
	}
	if opts.Trail < 1 {
		return schema.InvalidArgument(fmt.Sprintf("trail must be at least 1 (received %d)", opts.Trail))
	}

	lo, hi := visibleRows(f, opts.Trail)
	series, err := frameSeries(ts, wt, f, lo, hi, opts.Series)
	if err != nil {
		return err
	}

	yRange, err := frames.ExpandingRange(ts, f, opts.Series)
	if err != nil {
		return err
	}

	iv, matched := relevance.Match(ts.Times[f], intervals)
	ch := chart.Chart{
		Width:      opts.Width,
		Height:     opts.Height,
		Title:      title(iv, matched),
		TitleStyle: chart.Style{FontColor: foregroundColor, FontSize: 14},
		Background: chart.Style{
			FillColor: backgroundColor,
			Padding:   chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16},
		},
		Canvas: chart.Style{FillColor: backgroundColor},
		XAxis: chart.XAxis{
			Name:      ts.TimeColumn,
			NameStyle: axisStyle(),
			Style:     axisStyle(),
			Range:     timeRange(ts, lo, hi),
		},
		YAxis: chart.YAxis{
			Style:          axisStyle(),
			Range:          valueRange(yRange),
			GridMajorStyle: chart.Style{StrokeColor: gridColor, StrokeWidth: 1},
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{
		chart.Legend(&ch, chart.Style{FillColor: backgroundColor, FontColor: foregroundColor, StrokeColor: gridColor}),
	}
	if matched && iv.Note != "" {
		ch.Elements = append(ch.Elements, noteElement(iv.Note))
	}

	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render frame %d: %w", f, err)
	}
	return nil
}

// frameSeries builds one styled line per series over rows lo..hi. Series
// without a value in the window are left out.
func frameSeries(ts *schema.TimeSeries, wt *schema.WeightTable, f, lo, hi int, names []string) ([]chart.Series, error) {
	if len(names) == 0 {
		names = ts.Series
	}
	var series []chart.Series
	for i, name := range names {
		c := ts.SeriesIndex(name)
		if c < 0 {
			return nil, schema.InvalidArgument(fmt.Sprintf("unknown series %q", name))
		}
		w, err := wt.Weight(f, name)
		if err != nil {
			return nil, err
		}
		xs, ys := points(ts, c, lo, hi)
		if len(xs) == 0 {
			continue
		}
		series = append(series, chart.ContinuousSeries{
			Name:    name,
			XValues: xs,
			YValues: ys,
			Style:   seriesStyle(Palette[i%len(Palette)], w),
		})
	}
	if len(series) == 0 {
		// go-chart needs a series to lay out the axes
		series = append(series, chart.ContinuousSeries{
			XValues: []float64{ts.Times[lo], ts.Times[hi]},
			YValues: []float64{0, 0},
			Style:   chart.Style{StrokeColor: drawing.ColorTransparent, StrokeWidth: 1},
		})
	}
	return series, nil
}

// RenderFrames writes frames [from, to) into dir, creating it when needed,
// and returns how many files were written.
func RenderFrames(ctx context.Context, dir string, ts *schema.TimeSeries, wt *schema.WeightTable, intervals schema.IntervalSet, from, to int, opts Options) (int, error) {
	if from < 0 || to > ts.Len() || from >= to {
		return 0, schema.OutOfRange(fmt.Sprintf("frame range [%d, %d) outside [0, %d)", from, to, ts.Len()))
	}
	return writeFrames(ctx, dir, to-from,
		func(i int) string { return fmt.Sprintf(FileNameFormat, from+i) },
		func(w io.Writer, i int) error { return RenderFrame(w, ts, wt, intervals, from+i, opts) },
	)
}

// writeFrames draws n PNG files into dir. A file whose drawing fails is removed.
func writeFrames(ctx context.Context, dir string, n int, name func(int) string, draw func(io.Writer, int) error) (int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("failed to create output directory: %w", err)
	}

	written := 0
	for i := range n {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		if err := writeFile(filepath.Join(dir, name(i)), func(w io.Writer) error { return draw(w, i) }); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

func writeFile(path string, draw func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create frame file: %w", err)
	}
	if err := draw(file); err != nil {
		_ = file.Close()
		_ = os.Remove(path)
		return err
	}
	return file.Close()
}

// visibleRows returns the inclusive row window [lo, hi] ending at frame f.
func visibleRows(f, trail int) (int, int) {
	return max(0, f-trail+1), f
}

// points collects the non-missing values of column c in rows lo..hi.
// A lone point is duplicated so the series still draws.
func points(ts *schema.TimeSeries, c, lo, hi int) ([]float64, []float64) {
	var xs, ys []float64
	for r := lo; r <= hi; r++ {
		v := ts.Values[r][c]
		if math.IsNaN(v) {
			continue
		}
		xs = append(xs, ts.Times[r])
		ys = append(ys, v)
	}
	if len(xs) == 1 {
		xs = append(xs, xs[0])
		ys = append(ys, ys[0])
	}
	return xs, ys
}

// seriesStyle maps a weight onto the line: alpha is the stroke opacity,
// width the stroke width and alpha2 the opacity of the area fill.
func seriesStyle(base drawing.Color, w schema.Weight) chart.Style {
	return chart.Style{
		StrokeColor: withAlpha(base, w.Alpha),
		StrokeWidth: w.Width,
		FillColor:   withAlpha(base, w.Alpha2*fillOpacity),
	}
}

func withAlpha(c drawing.Color, alpha float64) drawing.Color {
	alpha = min(max(alpha, 0), 1)
	c.A = uint8(math.Round(alpha * 255))
	return c
}

func axisStyle() chart.Style {
	return chart.Style{FontColor: foregroundColor, StrokeColor: gridColor}
}

// timeRange spans the visible rows. Time runs left to right even when the
// series is ordered by decreasing age.
func timeRange(ts *schema.TimeSeries, lo, hi int) *chart.ContinuousRange {
	first, last := ts.Times[lo], ts.Times[hi]
	r := padded(schema.AxisRange{Min: min(first, last), Max: max(first, last)})
	r.Descending = first > last
	return r
}

func valueRange(r schema.AxisRange) *chart.ContinuousRange {
	if r.Empty() {
		return &chart.ContinuousRange{Min: 0, Max: 1}
	}
	return padded(r)
}

// padded widens a degenerate range so the axis has a non-zero span.
func padded(r schema.AxisRange) *chart.ContinuousRange {
	if r.Max > r.Min {
		return &chart.ContinuousRange{Min: r.Min, Max: r.Max}
	}
	pad := math.Max(math.Abs(r.Min)*0.05, 0.5)
	return &chart.ContinuousRange{Min: r.Min - pad, Max: r.Max + pad}
}

// title is the current epoch label, or blank outside every interval.
func title(iv schema.Interval, matched bool) string {
	if !matched {
		return ""
	}
	return iv.Label
}

// noteElement draws the interval note under the title.
func noteElement(note string) chart.Renderable {
	return func(r chart.Renderer, box chart.Box, defaults chart.Style) {
		r.SetFont(defaults.Font)
		r.SetFontColor(foregroundColor)
		r.SetFontSize(10)
		r.Text(note, box.Left+8, box.Top+14)
	}
}
