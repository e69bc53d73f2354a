// Package core wires the loader, table cache, relevance engine, frame
// analytics, writers and renderer into the paleoreel commands.
package core

import (
	"context"
	"fmt"
	"time"

	"github.com/huangsam/paleoreel/core/frames"
	"github.com/huangsam/paleoreel/core/relevance"
	"github.com/huangsam/paleoreel/internal/contract"
	"github.com/huangsam/paleoreel/internal/loader"
	"github.com/huangsam/paleoreel/internal/outwriter"
	"github.com/huangsam/paleoreel/internal/render"
	"github.com/huangsam/paleoreel/schema"
)

// ExecutorFunc defines the function signature for executing the different commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error

// inputs bundles what every command loads before doing its own work.
type inputs struct {
	series    *schema.TimeSeries
	intervals schema.IntervalSet
}

// loadInputs reads the time series (through the cache) and the interval file.
func loadInputs(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (*inputs, error) {
	ts, err := LoadSeries(ctx, cfg, mgr)
	if err != nil {
		return nil, err
	}
	intervals, err := loader.LoadIntervals(cfg.IntervalsPath)
	if err != nil {
		return nil, err
	}
	return &inputs{series: ts, intervals: intervals}, nil
}

// buildWeights runs the relevance engine over the full table.
func buildWeights(cfg *contract.Config, in *inputs) (*schema.WeightTable, error) {
	start := time.Now()
	wt, err := relevance.Build(in.series, in.intervals, cfg.MaxWidth, cfg.Window)
	if err != nil {
		return nil, err
	}
	contract.Log().EngineLogger(wt.Len(), len(wt.Series), len(in.intervals), cfg.Window, time.Since(start))
	return wt, nil
}

// ExecuteWeights builds the smoothed weight table and prints it in long format.
// It serves as the main entry point for the 'weights' command.
func ExecuteWeights(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	in, err := loadInputs(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	wt, err := buildWeights(cfg, in)
	if err != nil {
		return err
	}
	from, to, err := cfg.FrameRange(wt.Len())
	if err != nil {
		return err
	}
	records, err := schema.FlattenWeights(wt, cfg.Series, from, to)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	contract.Log().FrameLogger("weights", to-from, duration)
	return outwriter.PrintWeights(records, cfg, duration)
}

// ExecuteEpochs prints the interval label and note of every frame in range.
func ExecuteEpochs(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	in, err := loadInputs(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	from, to, err := cfg.FrameRange(in.series.Len())
	if err != nil {
		return err
	}
	epochs := relevance.Epochs(in.series, in.intervals)[from:to]
	duration := time.Since(start)
	contract.Log().FrameLogger("epochs", len(epochs), duration)
	return outwriter.PrintEpochs(epochs, cfg, duration)
}

// ExecuteReadout prints the text readout of one frame, or of every frame in
// range with --all-frames. --at selects the frame nearest to a time coordinate.
func ExecuteReadout(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	in, err := loadInputs(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	ts, err := in.series.Select(cfg.Series)
	if err != nil {
		return err
	}
	selected, err := readoutFrames(cfg, ts)
	if err != nil {
		return err
	}

	readouts := make([]schema.Readout, 0, len(selected))
	for _, f := range selected {
		if err := ctx.Err(); err != nil {
			return err
		}
		ro, err := frames.Readout(ts, f, cfg.Precision)
		if err != nil {
			return err
		}
		readouts = append(readouts, ro)
	}
	duration := time.Since(start)
	contract.Log().FrameLogger("readout", len(readouts), duration)
	return outwriter.PrintReadouts(readouts, cfg, duration)
}

// readoutFrames resolves which frames a readout covers.
// A single --frame past the last row is allowed and prints N/A values.
func readoutFrames(cfg *contract.Config, ts *schema.TimeSeries) ([]int, error) {
	switch {
	case cfg.AllFrames:
		from, to, err := cfg.FrameRange(ts.Len())
		if err != nil {
			return nil, err
		}
		out := make([]int, 0, to-from)
		for f := from; f < to; f++ {
			out = append(out, f)
		}
		return out, nil
	case cfg.HasAt:
		f, err := frames.NearestFrame(ts, cfg.At)
		if err != nil {
			return nil, err
		}
		return []int{f}, nil
	default:
		return []int{cfg.Frame}, nil
	}
}

// ExecuteCorrelation prints sliding-window correlation matrices.
// The frame range applies to correlation frames, not to rows.
func ExecuteCorrelation(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	in, err := loadInputs(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	ts, err := in.series.Select(cfg.Series)
	if err != nil {
		return err
	}
	corr, err := frames.SlidingCorrelation(ts, cfg.CorrWindow, cfg.Step)
	if err != nil {
		return err
	}
	if len(corr) > 0 {
		from, to, err := cfg.FrameRange(len(corr))
		if err != nil {
			return err
		}
		corr = corr[from:to]
	} else {
		contract.LogWarn("No correlation frames", fmt.Errorf("%d rows is fewer than the window of %d", ts.Len(), cfg.CorrWindow))
	}
	if cfg.OutDir != "" && len(corr) > 0 {
		if err := renderHeatmaps(ctx, cfg, corr, start); err != nil {
			return err
		}
	}
	duration := time.Since(start)
	contract.Log().FrameLogger("corr", len(corr), duration)
	return outwriter.PrintCorrelations(corr, cfg, duration)
}

// renderHeatmaps writes one correlation heatmap per frame to cfg.OutDir.
func renderHeatmaps(ctx context.Context, cfg *contract.Config, corr []schema.CorrelationFrame, start time.Time) error {
	opts := render.Options{Width: cfg.FrameWidth, Height: cfg.FrameHeight}
	n, err := render.RenderCorrelationFrames(ctx, cfg.OutDir, corr, opts)
	if err != nil {
		return err
	}
	interval, err := frames.PlaybackInterval(n, cfg.Duration)
	if err != nil {
		return err
	}
	summary := schema.RenderSummary{Dir: cfg.OutDir, First: corr[0].Frame, Frames: n, Interval: interval}
	return outwriter.PrintRenderSummary(summary, cfg, time.Since(start))
}

// ExecuteRender writes one PNG per frame in range to cfg.FramesDir() and reports
// the playback interval that fits them into cfg.Duration. With cfg.ReadoutFrames
// the frames are text readout panels of the selected series.
func ExecuteRender(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	in, err := loadInputs(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	wt, err := buildWeights(cfg, in)
	if err != nil {
		return err
	}
	from, to, err := cfg.FrameRange(wt.Len())
	if err != nil {
		return err
	}

	dir := cfg.FramesDir()
	opts := render.Options{
		Width:  cfg.FrameWidth,
		Height: cfg.FrameHeight,
		Trail:  cfg.Trail,
		Series: cfg.Series,
	}
	var n int
	if cfg.ReadoutFrames {
		ts, err := in.series.Select(cfg.Series)
		if err != nil {
			return err
		}
		n, err = render.RenderReadoutFrames(ctx, dir, ts, from, to, cfg.Precision, opts)
		if err != nil {
			return err
		}
	} else {
		n, err = render.RenderFrames(ctx, dir, in.series, wt, in.intervals, from, to, opts)
		if err != nil {
			return err
		}
	}
	interval, err := frames.PlaybackInterval(n, cfg.Duration)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	contract.Log().FrameLogger("render", n, duration)
	summary := schema.RenderSummary{Dir: dir, First: from, Frames: n, Interval: interval}
	return outwriter.PrintRenderSummary(summary, cfg, duration)
}
