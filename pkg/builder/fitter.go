package builder

import (
	"github.com/joeydtaylor/framefit/pkg/internal/fitter"
	"github.com/joeydtaylor/framefit/pkg/internal/types"
)

type Fitter = fitter.Fitter

// NewFitter creates a Levenberg-Marquardt fitter. It is safe for concurrent Fit calls.
func NewFitter(options ...types.Option[*fitter.Fitter]) *fitter.Fitter {
	return fitter.NewFitter(options...)
}

func FitterWithLogger(l ...types.Logger) types.Option[*fitter.Fitter] {
	return fitter.WithLogger(l...)
}

// FitterWithMaxIterations caps the LM iterations per fit.
func FitterWithMaxIterations(n int) types.Option[*fitter.Fitter] {
	return fitter.WithMaxIterations(n)
}

// FitterWithDamping sets the constant LM damping factor.
func FitterWithDamping(lambda float64) types.Option[*fitter.Fitter] {
	return fitter.WithDamping(lambda)
}

func FitterWithStepTolerance(tol float64) types.Option[*fitter.Fitter] {
	return fitter.WithStepTolerance(tol)
}

func FitterWithComponentMetadata(name string, id string) types.Option[*fitter.Fitter] {
	return fitter.WithComponentMetadata(name, id)
}

// EvaluateModel samples a model curve with the given parameters over x.
func EvaluateModel(model Model, params []float64, x []float64) []float64 {
	return fitter.Evaluate(model, params, x, nil)
}
