package analyzer

import (
	"github.com/joeydtaylor/framefit/pkg/internal/fitter"
	"github.com/joeydtaylor/framefit/pkg/internal/kalman"
	"github.com/joeydtaylor/framefit/pkg/internal/types"
)

// WithConfig selects the model, fit mode and threshold.
func WithConfig(cfg types.FitConfig) types.Option[*Analyzer] {
	return func(a *Analyzer) { a.config = cfg }
}

// WithWorkers bounds the number of channels analysed at once.
func WithWorkers(n int) types.Option[*Analyzer] {
	return func(a *Analyzer) {
		if n > 0 {
			a.workers = n
		}
	}
}

// WithBins fixes the histogram bin count; n <= 0 selects automatic binning.
func WithBins(n int) types.Option[*Analyzer] {
	return func(a *Analyzer) { a.bins = n }
}

// WithBaseline centres thresholding on fixed per-channel values, typically read
// from a sidecar means file, instead of each channel's own mean.
func WithBaseline(baseline [types.ChannelsPerGroup]float64) types.Option[*Analyzer] {
	return func(a *Analyzer) { a.baseline = &baseline }
}

// WithSmoothing runs each channel through its own Kalman filter before binning.
// Each filter starts from the channel's first reading.
func WithSmoothing(cfg kalman.Config) types.Option[*Analyzer] {
	return func(a *Analyzer) { a.smoothing = &cfg }
}

// WithFitter replaces the default fitter.
func WithFitter(f *fitter.Fitter) types.Option[*Analyzer] {
	return func(a *Analyzer) {
		if f != nil {
			a.fitter = f
		}
	}
}

// WithLogger registers loggers for the analyzer and its default fitter.
func WithLogger(l ...types.Logger) types.Option[*Analyzer] {
	return func(a *Analyzer) { a.ConnectLogger(l...) }
}

// WithSensor registers sensors for the analyzer.
func WithSensor(s ...types.Sensor) types.Option[*Analyzer] {
	return func(a *Analyzer) { a.ConnectSensor(s...) }
}

// WithProgress reports the fraction of channels finished. fn may be called from
// several workers at once.
func WithProgress(fn types.ProgressFunc) types.Option[*Analyzer] {
	return func(a *Analyzer) { a.progress = fn }
}

// WithComponentMetadata sets the analyzer name and id.
func WithComponentMetadata(name string, id string) types.Option[*Analyzer] {
	return func(a *Analyzer) { a.SetComponentMetadata(name, id) }
}
