package fitter_test

import (
	"context"
	"math"
	"sync"
	"testing"

	"github.com/joeydtaylor/framefit/pkg/internal/fitter"
	"github.com/joeydtaylor/framefit/pkg/internal/types"
)

func gaussianSamples(n int, a, mu, sigma float64) ([]float64, []float64) {
	x := make([]float64, n)
	y := make([]float64, n)
	for i := range x {
		x[i] = float64(i)
		d := x[i] - mu
		y[i] = a * math.Exp(-d*d/(2*sigma*sigma))
	}
	return x, y
}

func within(got, want, rel float64) bool {
	return math.Abs(got-want) <= rel*math.Abs(want)
}

func TestGaussianFitRecoversParameters(t *testing.T) {
	x, y := gaussianSamples(100, 50, 40.3, 6.2)

	res, err := fitter.NewFitter().Fit(context.Background(), x, y, types.ModelGaussian)
	if err != nil {
		t.Fatalf("Fit() error: %v", err)
	}
	if !res.OK {
		t.Fatalf("expected a successful fit")
	}
	if !within(res.Centroid, 40.3, 0.01) {
		t.Fatalf("centroid = %v, want 40.3", res.Centroid)
	}
	if !within(res.Width, 6.2, 0.01) {
		t.Fatalf("width = %v, want 6.2", res.Width)
	}
	if !within(res.Peak, 50, 0.01) {
		t.Fatalf("peak = %v, want 50", res.Peak)
	}
	if len(res.Curve) != len(x) {
		t.Fatalf("curve length = %d, want %d", len(res.Curve), len(x))
	}
	if res.RMS <= 0 {
		t.Fatalf("expected positive rms, got %v", res.RMS)
	}
}

func TestGaussianFitConverges(t *testing.T) {
	x, y := gaussianSamples(80, 120, 30, 4)

	res, err := fitter.NewFitter().Fit(context.Background(), x, y, types.ModelGaussian)
	if err != nil {
		t.Fatalf("Fit() error: %v", err)
	}
	if !res.Converged {
		t.Fatalf("expected convergence, stopped after %d iterations", res.Iterations)
	}
	if res.Iterations >= fitter.DefaultMaxIterations {
		t.Fatalf("expected early stop, used %d iterations", res.Iterations)
	}
}

func TestFitInvalidGuessReturnsEmptyResult(t *testing.T) {
	cases := map[string][]float64{
		"zero":     {0, 0, 0, 0, 0},
		"negative": {-1, -2, -3, -2, -1},
		"spike":    {0, 0, 5, 0, 0},
	}
	x := []float64{1, 2, 3, 4, 5}

	for name, y := range cases {
		t.Run(name, func(t *testing.T) {
			for _, model := range []types.Model{types.ModelGaussian, types.ModelHyperEMG} {
				res, err := fitter.NewFitter().Fit(context.Background(), x, y, model)
				if err != nil {
					t.Fatalf("Fit() error: %v", err)
				}
				if res.OK {
					t.Fatalf("expected empty result for %s", model)
				}
				if len(res.Curve) != len(x) {
					t.Fatalf("curve length = %d, want %d", len(res.Curve), len(x))
				}
				for _, v := range res.Curve {
					if v != 0 {
						t.Fatalf("expected all-zero curve, got %v", res.Curve)
					}
				}
			}
		})
	}
}

func TestHyperEMGFitProducesFiniteCurve(t *testing.T) {
	x, y := gaussianSamples(120, 80, 60, 5)

	res, err := fitter.NewFitter().Fit(context.Background(), x, y, types.ModelHyperEMG)
	if err != nil {
		t.Fatalf("Fit() error: %v", err)
	}
	if !res.OK {
		t.Fatalf("expected hyper-EMG fit to run")
	}
	if len(res.Curve) != len(x) {
		t.Fatalf("curve length = %d, want %d", len(res.Curve), len(x))
	}
	for i, v := range res.Curve {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("curve[%d] is not finite: %v", i, v)
		}
	}
	if res.Width < fitter.ParamFloor || res.Tau < fitter.ParamFloor || res.Amplitude < fitter.ParamFloor {
		t.Fatalf("parameters fell below floor: %+v", res)
	}
}

func TestFitCancelledContext(t *testing.T) {
	x, y := gaussianSamples(60, 10, 30, 3)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := fitter.NewFitter().Fit(ctx, x, y, types.ModelGaussian)
	if err == nil {
		t.Fatalf("expected context error")
	}
	if len(res.Curve) != len(x) {
		t.Fatalf("curve length = %d, want %d", len(res.Curve), len(x))
	}
	if !within(res.Centroid, 30, 0.05) {
		t.Fatalf("cancelled fit should keep the moment guess, centroid = %v", res.Centroid)
	}
}

func TestConcurrentFitsMatchSequential(t *testing.T) {
	f := fitter.NewFitter()
	ctx := context.Background()

	type input struct{ x, y []float64 }
	inputs := make([]input, 16)
	want := make([]types.FitResult, 16)
	for i := range inputs {
		x, y := gaussianSamples(50+i*3, 10+float64(i), 20+float64(i), 2+0.25*float64(i))
		inputs[i] = input{x, y}
		res, err := f.Fit(ctx, x, y, types.ModelGaussian)
		if err != nil {
			t.Fatalf("Fit() error: %v", err)
		}
		want[i] = res
	}

	got := make([]types.FitResult, 16)
	var wg sync.WaitGroup
	for i := range inputs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i], _ = f.Fit(ctx, inputs[i].x, inputs[i].y, types.ModelGaussian)
		}(i)
	}
	wg.Wait()

	for i := range got {
		if got[i].Centroid != want[i].Centroid || got[i].Width != want[i].Width {
			t.Fatalf("fit %d differs under concurrency: got %+v want %+v", i, got[i].Centroid, want[i].Centroid)
		}
	}
}

func TestEvaluateLength(t *testing.T) {
	x := []float64{0, 1, 2, 3}
	curve := fitter.Evaluate(types.ModelGaussian, []float64{1, 1.5, 1}, x, nil)
	if len(curve) != len(x) {
		t.Fatalf("curve length = %d, want %d", len(curve), len(x))
	}
	if curve[1] != curve[2] {
		t.Fatalf("expected symmetric curve about 1.5, got %v", curve)
	}
}

func TestSingularSystemKeepsStartingParameters(t *testing.T) {
	x, y := gaussianSamples(5, 10, 2, 1)
	start := []float64{10, 1e6, 2}

	res, err := fitter.NewFitter(fitter.WithDamping(0)).FitFrom(context.Background(), x, y, types.ModelGaussian, start)
	if err != nil {
		t.Fatalf("FitFrom() error: %v", err)
	}
	if res.Iterations != 0 || res.Converged {
		t.Fatalf("expected the first solve to stop the loop, got iterations=%d converged=%v", res.Iterations, res.Converged)
	}
	if res.Centroid != start[1] || res.Width != start[2] || res.Amplitude != start[0] {
		t.Fatalf("parameters moved: centroid=%v width=%v amplitude=%v", res.Centroid, res.Width, res.Amplitude)
	}
	if len(res.Curve) != len(x) {
		t.Fatalf("curve length = %d, want %d", len(res.Curve), len(x))
	}
}
