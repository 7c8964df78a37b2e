package analyzer_test

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/joeydtaylor/framefit/pkg/internal/analyzer"
	"github.com/joeydtaylor/framefit/pkg/internal/kalman"
	"github.com/joeydtaylor/framefit/pkg/internal/sensor"
	"github.com/joeydtaylor/framefit/pkg/internal/types"
)

const spread = 3.0

func base(c int) float64 { return float64(1000 + 100*c) }

// bellRecords builds records whose channel c readings form a symmetric discrete
// bell of width ~spread around base(c), in every group.
func bellRecords() []types.SampleRecord {
	var offsets []int
	for k := -10; k <= 10; k++ {
		n := int(math.Round(50 * math.Exp(-float64(k*k)/(2*spread*spread))))
		for i := 0; i < n; i++ {
			offsets = append(offsets, k)
		}
	}

	recs := make([]types.SampleRecord, len(offsets))
	for i, k := range offsets {
		recs[i].SampleIndex = i%types.SamplesPerFrame + 1
		for g := 0; g < types.GroupCount; g++ {
			for c := 0; c < types.ChannelsPerGroup; c++ {
				recs[i].Raw[g][c] = uint16(int(base(c)) + k)
			}
		}
	}
	return recs
}

func TestAnalyzeGaussianFit(t *testing.T) {
	recs := bellRecords()
	a := analyzer.NewAnalyzer(analyzer.WithConfig(types.FitConfig{Model: types.ModelGaussian, UseFit: true}))

	out, err := a.Analyze(context.Background(), recs, types.GroupC)
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	for c, res := range out {
		if res.Channel != c || res.Group != types.GroupC {
			t.Fatalf("slot %d holds channel %d of %s", c, res.Channel, res.Group)
		}
		if res.Samples != len(recs) || res.Kept != len(recs) {
			t.Fatalf("channel %d: samples %d kept %d", c, res.Samples, res.Kept)
		}
		if !res.Fit.OK {
			t.Fatalf("channel %d: fit failed", c)
		}
		if math.Abs(res.Fit.Centroid-base(c)) > 0.05 {
			t.Fatalf("channel %d: centroid %v, want %v", c, res.Fit.Centroid, base(c))
		}
		if math.Abs(res.Fit.Width-spread) > 0.3 {
			t.Fatalf("channel %d: width %v, want about %v", c, res.Fit.Width, spread)
		}
		if len(res.Fit.Curve) != len(res.Histogram.X) {
			t.Fatalf("channel %d: curve length %d, histogram %d", c, len(res.Fit.Curve), len(res.Histogram.X))
		}
	}
}

func TestAnalyzeMomentsOnly(t *testing.T) {
	recs := bellRecords()
	out, err := analyzer.NewAnalyzer().Analyze(context.Background(), recs, types.GroupA)
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	for c, res := range out {
		if res.Fit.Iterations != 0 {
			t.Fatalf("moment-only analysis must not iterate")
		}
		if math.Abs(res.Fit.Centroid-base(c)) > 1e-9 {
			t.Fatalf("channel %d: centroid %v, want %v", c, res.Fit.Centroid, base(c))
		}
		if math.Abs(res.Mean-base(c)) > 1e-9 {
			t.Fatalf("channel %d: mean %v, want %v", c, res.Mean, base(c))
		}
		if res.Fit.Peak != 50 {
			t.Fatalf("channel %d: peak %v, want 50", c, res.Fit.Peak)
		}
	}
}

func TestAnalyzeWorkerCountDoesNotChangeResults(t *testing.T) {
	recs := bellRecords()
	cfg := types.FitConfig{Model: types.ModelHyperEMG, UseFit: true}

	serial, err := analyzer.NewAnalyzer(analyzer.WithConfig(cfg), analyzer.WithWorkers(1)).Analyze(context.Background(), recs, types.GroupB)
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	parallel, err := analyzer.NewAnalyzer(analyzer.WithConfig(cfg), analyzer.WithWorkers(16)).Analyze(context.Background(), recs, types.GroupB)
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	for c := range serial {
		if serial[c].Fit.Centroid != parallel[c].Fit.Centroid || serial[c].Fit.Width != parallel[c].Fit.Width {
			t.Fatalf("channel %d differs between pool sizes", c)
		}
	}
}

func TestAnalyzeThresholdWithBaseline(t *testing.T) {
	recs := bellRecords()
	var baseline [types.ChannelsPerGroup]float64
	for c := range baseline {
		baseline[c] = base(c)
	}

	a := analyzer.NewAnalyzer(
		analyzer.WithConfig(types.FitConfig{
			Model:     types.ModelGaussian,
			Threshold: types.ThresholdConfig{Enabled: true, KFactor: 1},
		}),
		analyzer.WithBaseline(baseline),
	)
	out, err := a.Analyze(context.Background(), recs, types.GroupD)
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	for c, res := range out {
		if res.Kept >= res.Samples || res.Kept == 0 {
			t.Fatalf("channel %d: threshold kept %d of %d", c, res.Kept, res.Samples)
		}
		if res.Histogram.X[0] < 0 {
			t.Fatalf("channel %d: kept values should sit above the baseline, got %v", c, res.Histogram.X[0])
		}
	}
}

func TestAnalyzeSmoothing(t *testing.T) {
	recs := bellRecords()
	a := analyzer.NewAnalyzer(analyzer.WithSmoothing(kalman.Config{A: 1, H: 1, Q: 1e-4, R: 10, P0: 1}))
	out, err := a.Analyze(context.Background(), recs, types.GroupA)
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	raw, _ := analyzer.NewAnalyzer().Analyze(context.Background(), recs, types.GroupA)
	for c := range out {
		if out[c].Fit.Width >= raw[c].Fit.Width {
			t.Fatalf("channel %d: smoothing should narrow the distribution (%v >= %v)", c, out[c].Fit.Width, raw[c].Fit.Width)
		}
	}
}

func TestAnalyzeSensorsAndProgress(t *testing.T) {
	recs := bellRecords()
	// Channel 0 carries a single value and yields the empty result.
	for i := range recs {
		recs[i].Raw[types.GroupA][0] = 7
	}

	var mu sync.Mutex
	var completed, failed int
	var last float64
	s := sensor.NewSensor(
		sensor.WithOnFitCompleteFunc(func(types.ComponentMetadata, int, types.FitResult) {
			mu.Lock()
			completed++
			mu.Unlock()
		}),
		sensor.WithOnFitFailedFunc(func(_ types.ComponentMetadata, channel int) {
			mu.Lock()
			failed++
			mu.Unlock()
		}),
	)
	a := analyzer.NewAnalyzer(
		analyzer.WithSensor(s),
		analyzer.WithProgress(func(f float64) {
			mu.Lock()
			last = math.Max(last, f)
			mu.Unlock()
		}),
	)

	out, err := a.Analyze(context.Background(), recs, types.GroupA)
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	if completed != 15 || failed != 1 {
		t.Fatalf("expected 15 completed and 1 failed, got %d and %d", completed, failed)
	}
	if last != 1 {
		t.Fatalf("expected progress to reach 1, got %v", last)
	}
	if out[0].Fit.OK || len(out[0].Fit.Curve) != len(out[0].Histogram.X) {
		t.Fatalf("channel 0 should hold the full-length empty result")
	}
}

func TestAnalyzeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := analyzer.NewAnalyzer(analyzer.WithConfig(types.FitConfig{UseFit: true}))
	_, err := a.Analyze(ctx, bellRecords(), types.GroupA)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestAnalyzeNoRecords(t *testing.T) {
	out, err := analyzer.NewAnalyzer().Analyze(context.Background(), nil, types.GroupA)
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	for c, res := range out {
		if res.Fit.OK || res.Samples != 0 {
			t.Fatalf("channel %d: expected empty result", c)
		}
	}
}

func TestMeans(t *testing.T) {
	recs := bellRecords()
	means := analyzer.Means(recs, types.GroupB)
	for c, m := range means {
		if math.Abs(m-base(c)) > 1e-9 {
			t.Fatalf("channel %d: mean %v, want %v", c, m, base(c))
		}
	}
	if analyzer.Means(nil, types.GroupB) != [types.ChannelsPerGroup]float64{} {
		t.Fatalf("expected zero means without records")
	}
}
