package fitter

import "github.com/joeydtaylor/framefit/pkg/internal/types"

// WithLogger registers loggers for the fitter.
func WithLogger(l ...types.Logger) types.Option[*Fitter] {
	return func(f *Fitter) {
		f.ConnectLogger(l...)
	}
}

// WithMaxIterations overrides the LM iteration cap.
func WithMaxIterations(n int) types.Option[*Fitter] {
	return func(f *Fitter) {
		if n > 0 {
			f.maxIterations = n
		}
	}
}

// WithDamping overrides the fixed damping term.
func WithDamping(lambda float64) types.Option[*Fitter] {
	return func(f *Fitter) {
		if lambda >= 0 {
			f.damping = lambda
		}
	}
}

// WithStepTolerance overrides the convergence threshold on parameter updates.
func WithStepTolerance(tol float64) types.Option[*Fitter] {
	return func(f *Fitter) {
		if tol > 0 {
			f.stepTolerance = tol
		}
	}
}

// WithComponentMetadata sets the fitter name and id.
func WithComponentMetadata(name string, id string) types.Option[*Fitter] {
	return func(f *Fitter) {
		f.SetComponentMetadata(name, id)
	}
}
