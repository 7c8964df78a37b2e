package builder

import (
	"github.com/joeydtaylor/framefit/pkg/internal/analyzer"
	"github.com/joeydtaylor/framefit/pkg/internal/fitter"
	"github.com/joeydtaylor/framefit/pkg/internal/histogram"
	"github.com/joeydtaylor/framefit/pkg/internal/kalman"
	"github.com/joeydtaylor/framefit/pkg/internal/types"
)

type Analyzer = analyzer.Analyzer

type KalmanConfig = kalman.Config

// NewAnalyzer creates the per-channel analysis pipeline for one group.
func NewAnalyzer(options ...types.Option[*analyzer.Analyzer]) *analyzer.Analyzer {
	return analyzer.NewAnalyzer(options...)
}

// AnalyzerWithConfig sets the model, fit switch and threshold settings.
func AnalyzerWithConfig(cfg FitConfig) types.Option[*analyzer.Analyzer] {
	return analyzer.WithConfig(cfg)
}

// AnalyzerWithWorkers bounds the number of channels analysed concurrently.
func AnalyzerWithWorkers(n int) types.Option[*analyzer.Analyzer] {
	return analyzer.WithWorkers(n)
}

// AnalyzerWithBins fixes the histogram bin count. Zero or less picks one bin per count.
func AnalyzerWithBins(n int) types.Option[*analyzer.Analyzer] {
	return analyzer.WithBins(n)
}

// AnalyzerWithBaseline centres thresholding on per-channel means, usually read from a sidecar file.
func AnalyzerWithBaseline(baseline [ChannelsPerGroup]float64) types.Option[*analyzer.Analyzer] {
	return analyzer.WithBaseline(baseline)
}

// AnalyzerWithSmoothing runs each channel through a scalar Kalman filter before binning.
func AnalyzerWithSmoothing(cfg KalmanConfig) types.Option[*analyzer.Analyzer] {
	return analyzer.WithSmoothing(cfg)
}

func AnalyzerWithFitter(f *fitter.Fitter) types.Option[*analyzer.Analyzer] {
	return analyzer.WithFitter(f)
}

func AnalyzerWithLogger(l ...types.Logger) types.Option[*analyzer.Analyzer] {
	return analyzer.WithLogger(l...)
}

func AnalyzerWithSensor(s ...types.Sensor) types.Option[*analyzer.Analyzer] {
	return analyzer.WithSensor(s...)
}

func AnalyzerWithProgress(fn ProgressFunc) types.Option[*analyzer.Analyzer] {
	return analyzer.WithProgress(fn)
}

func AnalyzerWithComponentMetadata(name string, id string) types.Option[*analyzer.Analyzer] {
	return analyzer.WithComponentMetadata(name, id)
}

// DefaultKalmanConfig returns the random-walk filter settings used for smoothing.
func DefaultKalmanConfig() KalmanConfig {
	return kalman.DefaultConfig()
}

// ChannelMeans returns the mean raw count of every channel of group across records.
func ChannelMeans(records []SampleRecord, group ChannelGroup) [ChannelsPerGroup]float64 {
	return analyzer.Means(records, group)
}

// BuildHistogram bins values. bins <= 0 selects one bin per integer count.
func BuildHistogram(values []float64, bins int) Histogram {
	return histogram.Build(values, bins)
}
