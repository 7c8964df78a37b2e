// Package kalman provides a scalar Kalman filter with a constant process model.
package kalman

// Config holds the model and the initial estimate.
type Config struct {
	A  float64 // state transition
	H  float64 // measurement gain
	Q  float64 // process noise variance
	R  float64 // measurement noise variance
	X0 float64 // initial state
	P0 float64 // initial error covariance
}

// DefaultConfig tracks a slowly varying level through noisy readings.
func DefaultConfig() Config {
	return Config{A: 1, H: 1, Q: 1e-3, R: 1, X0: 0, P0: 1}
}

// Filter is stateful and not safe for concurrent use; give each goroutine its own.
type Filter struct {
	a, h float64
	q, r float64
	x, p float64
}

// New returns a filter initialised from cfg.
func New(cfg Config) *Filter {
	return &Filter{a: cfg.A, h: cfg.H, q: cfg.Q, r: cfg.R, x: cfg.X0, p: cfg.P0}
}

// Step folds in measurement z and returns the corrected estimate.
func (f *Filter) Step(z float64) float64 {
	f.x = f.a * f.x
	f.p = f.a*f.a*f.p + f.q

	denom := f.h*f.h*f.p + f.r
	if denom == 0 {
		return f.x
	}
	k := f.p * f.h / denom
	f.x += k * (z - f.h*f.x)
	f.p = (1 - k*f.h) * f.p
	return f.x
}

// SetQ replaces the process noise variance.
func (f *Filter) SetQ(q float64) { f.q = q }

// SetR replaces the measurement noise variance.
func (f *Filter) SetR(r float64) { f.r = r }

// State returns the current estimate and its error covariance.
func (f *Filter) State() (x, p float64) {
	return f.x, f.p
}

// Smooth runs Step over values and returns the estimates in a new slice.
func (f *Filter) Smooth(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = f.Step(v)
	}
	return out
}
