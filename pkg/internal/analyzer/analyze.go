package analyzer

import (
	"context"
	"sync/atomic"

	"github.com/joeydtaylor/framefit/pkg/internal/fitter"
	"github.com/joeydtaylor/framefit/pkg/internal/histogram"
	"github.com/joeydtaylor/framefit/pkg/internal/kalman"
	"github.com/joeydtaylor/framefit/pkg/internal/moments"
	"github.com/joeydtaylor/framefit/pkg/internal/types"
	"github.com/joeydtaylor/framefit/pkg/logschema"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
)

// Analyze characterises all 16 channels of group across records. On cancellation
// the channels finished so far are returned alongside ctx.Err().
func (a *Analyzer) Analyze(ctx context.Context, records []types.SampleRecord, group types.ChannelGroup) ([types.ChannelsPerGroup]types.ChannelAnalysis, error) {
	var out [types.ChannelsPerGroup]types.ChannelAnalysis
	if ctx == nil {
		ctx = context.Background()
	}

	a.notifyStart()
	a.NotifyLoggers(types.InfoLevel, "Analyze: started",
		logschema.FieldComponent, a.componentMetadata,
		logschema.FieldEvent, "Analyze",
		logschema.FieldGroup, group.String(),
		logschema.FieldSamples, len(records),
		logschema.FieldModel, a.config.Model.String(),
		logschema.FieldWorkers, a.workers,
	)

	var done atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)

	for c := 0; c < types.ChannelsPerGroup; c++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := a.analyzeChannel(gctx, records, group, c)
			out[c] = res
			if err != nil {
				return err
			}
			a.notifyChannel(c, res.Fit)
			a.reportProgress(float64(done.Add(1)) / types.ChannelsPerGroup)
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		a.notifyError(err)
		a.NotifyLoggers(types.WarnLevel, "Analyze: stopped",
			logschema.FieldComponent, a.componentMetadata,
			logschema.FieldEvent, "Analyze",
			logschema.FieldResult, "CANCELLED",
			logschema.FieldGroup, group.String(),
			logschema.FieldError, err.Error(),
		)
		return out, err
	}
	a.notifyComplete()
	a.NotifyLoggers(types.InfoLevel, "Analyze: finished",
		logschema.FieldComponent, a.componentMetadata,
		logschema.FieldEvent, "Analyze",
		logschema.FieldResult, "SUCCESS",
		logschema.FieldGroup, group.String(),
	)
	return out, nil
}

func (a *Analyzer) analyzeChannel(ctx context.Context, records []types.SampleRecord, group types.ChannelGroup, c int) (types.ChannelAnalysis, error) {
	values := ChannelValues(records, group, c)
	res := types.ChannelAnalysis{
		Group:   group,
		Channel: c,
		Samples: len(values),
	}
	if len(values) > 0 {
		res.Mean = stat.Mean(values, nil)
	}

	if a.smoothing != nil && len(values) > 0 {
		cfg := *a.smoothing
		cfg.X0 = values[0]
		values = kalman.New(cfg).Smooth(values)
	}

	if a.config.Threshold.Enabled {
		var base *float64
		if a.baseline != nil {
			b := a.baseline[c]
			base = &b
		}
		values = histogram.Threshold(values, base, a.config.Threshold.KFactor)
	}
	res.Kept = len(values)

	res.Histogram = histogram.Build(values, a.bins)
	x, y := res.Histogram.X, res.Histogram.Y

	if !a.config.UseFit {
		res.Fit = MomentResult(a.config.Model, x, y)
		return res, nil
	}

	fit, err := a.fitter.Fit(ctx, x, y, a.config.Model)
	res.Fit = fit
	return res, err
}

// ChannelValues collects channel c of group across records as float64 counts.
func ChannelValues(records []types.SampleRecord, group types.ChannelGroup, c int) []float64 {
	values := make([]float64, len(records))
	for i := range records {
		values[i] = float64(records[i].Raw[group][c])
	}
	return values
}

// MomentResult describes (x, y) by its weighted moments without fitting. The curve
// is the Gaussian with those moments; an empty or zero-width distribution gives the
// empty result.
func MomentResult(model types.Model, x, y []float64) types.FitResult {
	m := moments.Calculate(x, y)
	if m.Peak <= 0 || m.Sigma <= 0 {
		return types.EmptyFitResult(model, len(x))
	}
	return types.FitResult{
		Model:     model,
		Curve:     fitter.Evaluate(types.ModelGaussian, []float64{m.Peak, m.Mean, m.Sigma}, x, nil),
		Centroid:  m.Mean,
		Width:     m.Sigma,
		Peak:      m.Peak,
		Amplitude: m.Peak,
		RMS:       moments.WeightedRMS(x, y, m.Mean),
		OK:        true,
	}
}

// Means returns the mean raw count of each channel of group, for sidecar output.
func Means(records []types.SampleRecord, group types.ChannelGroup) [types.ChannelsPerGroup]float64 {
	var out [types.ChannelsPerGroup]float64
	if len(records) == 0 {
		return out
	}
	for c := range out {
		out[c] = stat.Mean(ChannelValues(records, group, c), nil)
	}
	return out
}
