package fitter

import (
	"context"
	"math"

	"github.com/joeydtaylor/framefit/pkg/internal/mathx"
	"github.com/joeydtaylor/framefit/pkg/internal/moments"
	"github.com/joeydtaylor/framefit/pkg/internal/types"
	"github.com/joeydtaylor/framefit/pkg/logschema"
)

// InitialGuess derives starting parameters for model from the weighted moments of
// (x, y). ok is false when the moments cannot seed a fit.
func InitialGuess(model types.Model, x, y []float64) (params []float64, ok bool) {
	m := moments.Calculate(x, y)
	if m.Peak <= 0 || m.Sigma <= MinGuessSigma || !mathx.IsFinite(m.Mean) {
		return nil, false
	}
	if model == types.ModelHyperEMG {
		return []float64{
			m.Peak * m.Sigma * math.Sqrt(2*math.Pi),
			m.Mean,
			m.Sigma,
			m.Sigma / 2,
		}, true
	}
	return []float64{m.Peak, m.Mean, m.Sigma}, true
}

// Fit fits model to the distribution (x, y). The returned curve always has len(x)
// points. The error is non-nil only when ctx is cancelled mid-fit; the result then
// reflects the parameters reached so far.
func (f *Fitter) Fit(ctx context.Context, x, y []float64, model types.Model) (types.FitResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	guess, ok := InitialGuess(model, x, y)
	if !ok {
		f.NotifyLoggers(types.DebugLevel, "Fit skipped: unusable initial guess",
			logschema.FieldComponent, f.componentMetadata,
			logschema.FieldEvent, "Fit",
			logschema.FieldResult, "EMPTY",
			logschema.FieldModel, model.String(),
			logschema.FieldPoints, len(x),
		)
		return types.EmptyFitResult(model, len(x)), nil
	}

	return f.FitFrom(ctx, x, y, model, guess)
}

// FitFrom runs the LM loop from explicit starting parameters.
func (f *Fitter) FitFrom(ctx context.Context, x, y []float64, model types.Model, start []float64) (types.FitResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	np := ParamCount(model)
	if len(start) < np {
		return types.EmptyFitResult(model, len(x)), nil
	}

	ws := getWorkspace(len(x), np)
	defer putWorkspace(ws)

	copy(ws.params, start[:np])
	clampParams(model, ws.params)

	out, err := f.iterate(ctx, ws, model, x, y)

	res := f.result(model, ws.params, x)
	res.Iterations = out.iterations
	res.Converged = out.converged

	if f.hasLoggers() {
		f.NotifyLoggers(types.DebugLevel, "Fit finished",
			logschema.FieldComponent, f.componentMetadata,
			logschema.FieldEvent, "Fit",
			logschema.FieldResult, out.stopReason,
			logschema.FieldModel, model.String(),
			logschema.FieldIterations, out.iterations,
			logschema.FieldCentroid, res.Centroid,
			logschema.FieldWidth, res.Width,
		)
	}
	return res, err
}

func (f *Fitter) result(model types.Model, params []float64, x []float64) types.FitResult {
	curve := Evaluate(model, params, x, nil)

	peak := 0.0
	for i, v := range curve {
		if i == 0 || v > peak {
			peak = v
		}
	}

	mu := params[paramMu]
	res := types.FitResult{
		Model:     model,
		Curve:     curve,
		Centroid:  mu,
		Width:     math.Abs(params[paramSigma]),
		Peak:      peak,
		Amplitude: params[paramAmplitude],
		RMS:       moments.WeightedRMS(x, curve, mu),
		OK:        true,
	}
	if model == types.ModelHyperEMG {
		res.Tau = params[paramTau]
	}
	return res
}
