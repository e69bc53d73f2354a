package render

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/huangsam/paleoreel/internal/contract"
	"github.com/huangsam/paleoreel/schema"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// HeatmapFileNameFormat names the PNG written for each correlation frame.
const HeatmapFileNameFormat = "corr_%05d.png"

// Endpoints of the coolwarm diverging scale at r = -1, 0 and 1.
var (
	coolColor    = drawing.Color{R: 59, G: 76, B: 192, A: 255}
	neutralColor = drawing.Color{R: 221, G: 221, B: 221, A: 255}
	warmColor    = drawing.Color{R: 180, G: 4, B: 38, A: 255}
)

const (
	heatmapTop    = 48 // title band
	heatmapBottom = 32 // column labels
	heatmapMargin = 16
)

// heatmapGrid places the cells of an n x n matrix on a width x height canvas.
type heatmapGrid struct {
	left, top, cell int
}

func newHeatmapGrid(n, width, height int) heatmapGrid {
	gutter := max(64, width/6)
	side := min(width-gutter-heatmapMargin, height-heatmapTop-heatmapBottom)
	cell := max(side/max(n, 1), 1)
	return heatmapGrid{left: gutter, top: heatmapTop, cell: cell}
}

// cellBox is the box of matrix entry (row, col).
func (g heatmapGrid) cellBox(row, col int) chart.Box {
	left := g.left + col*g.cell
	top := g.top + row*g.cell
	return chart.Box{Left: left, Top: top, Right: left + g.cell, Bottom: top + g.cell}
}

// Coolwarm maps a correlation coefficient onto the diverging scale. Values are
// clamped to [-1, 1]; NaN maps to the background.
func Coolwarm(r float64) drawing.Color {
	if math.IsNaN(r) {
		return backgroundColor
	}
	r = min(max(r, -1), 1)
	if r < 0 {
		return lerpColor(neutralColor, coolColor, -r)
	}
	return lerpColor(neutralColor, warmColor, r)
}

func lerpColor(a, b drawing.Color, t float64) drawing.Color {
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return drawing.Color{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}

// RenderCorrelationFrame draws the matrix of one correlation frame as a
// heatmap PNG titled with its row window.
func RenderCorrelationFrame(w io.Writer, cf schema.CorrelationFrame, opts Options) error {
	n := len(cf.Series)
	if n == 0 || len(cf.Matrix) != n {
		return schema.InvalidArgument(fmt.Sprintf("correlation frame %d has %d series and %d matrix rows", cf.Frame, n, len(cf.Matrix)))
	}

	r, err := newCanvas(opts)
	if err != nil {
		return err
	}

	g := newHeatmapGrid(n, opts.Width, opts.Height)
	r.SetStrokeColor(backgroundColor)
	r.SetStrokeWidth(1)
	for i, row := range cf.Matrix {
		for j, v := range row {
			fillBox(r, g.cellBox(i, j), Coolwarm(v))
		}
	}

	maxChars := max(g.cell/6, 3)
	r.SetFontColor(foregroundColor)
	r.SetFontSize(10)
	for i, name := range cf.Series {
		box := g.cellBox(i, i)
		text := contract.TruncateName(name, g.left/6)
		tb := r.MeasureText(text)
		r.Text(text, g.left-tb.Width()-6, box.Top+g.cell/2+tb.Height()/2)

		text = contract.TruncateName(name, maxChars)
		tb = r.MeasureText(text)
		r.Text(text, box.Left+(g.cell-tb.Width())/2, g.top+n*g.cell+tb.Height()+6)
	}

	r.SetFontSize(14)
	title := fmt.Sprintf("Correlation Matrix (Window: %d-%d)", cf.Start, cf.End)
	tb := r.MeasureText(title)
	r.Text(title, (opts.Width-tb.Width())/2, heatmapTop/2+tb.Height()/2)

	if err := r.Save(w); err != nil {
		return fmt.Errorf("failed to render correlation frame %d: %w", cf.Frame, err)
	}
	return nil
}

// RenderCorrelationFrames writes one heatmap per correlation frame into dir.
func RenderCorrelationFrames(ctx context.Context, dir string, corr []schema.CorrelationFrame, opts Options) (int, error) {
	return writeFrames(ctx, dir, len(corr),
		func(i int) string { return fmt.Sprintf(HeatmapFileNameFormat, corr[i].Frame) },
		func(w io.Writer, i int) error { return RenderCorrelationFrame(w, corr[i], opts) },
	)
}

// newCanvas returns a PNG renderer filled with the background color and set
// to the default font.
func newCanvas(opts Options) (chart.Renderer, error) {
	if opts.Width < 1 || opts.Height < 1 {
		return nil, schema.InvalidArgument(fmt.Sprintf("frame size must be positive (received %dx%d)", opts.Width, opts.Height))
	}
	r, err := chart.PNG(opts.Width, opts.Height)
	if err != nil {
		return nil, fmt.Errorf("failed to create canvas: %w", err)
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}
	r.SetStrokeColor(backgroundColor)
	r.SetStrokeWidth(0)
	fillBox(r, chart.Box{Right: opts.Width, Bottom: opts.Height}, backgroundColor)
	r.SetFont(font)
	return r, nil
}

// fillBox paints b with c and outlines it with the current stroke.
func fillBox(r chart.Renderer, b chart.Box, c drawing.Color) {
	r.SetFillColor(c)
	r.MoveTo(b.Left, b.Top)
	r.LineTo(b.Right, b.Top)
	r.LineTo(b.Right, b.Bottom)
	r.LineTo(b.Left, b.Bottom)
	r.Close()
	r.FillStroke()
}
