// Package fitter fits Gaussian and Hyper-EMG peak shapes to binned distributions
// with a damped Gauss-Newton (Levenberg–Marquardt) loop.
//
// Every fit starts from the weighted moments of the distribution. An unusable
// starting point produces the defined empty result rather than an error; the only
// error a fit returns is the cancellation of its context, in which case the
// result still describes the last accepted parameters.
package fitter

import (
	"sync"

	"github.com/joeydtaylor/framefit/pkg/internal/types"
	"github.com/joeydtaylor/framefit/pkg/internal/utils"
)

const (
	// DefaultMaxIterations caps the LM loop.
	DefaultMaxIterations = 100
	// DefaultDamping is the fixed λ added to the normal-equation diagonal.
	DefaultDamping = 0.001
	// DefaultStepTolerance stops the loop once every update is smaller.
	DefaultStepTolerance = 1e-6
	// DiffStep is the forward-difference step of the numeric Jacobian.
	DiffStep = 1e-5
	// MinGuessSigma rejects degenerate starting widths.
	MinGuessSigma = 1e-9
	// ParamFloor is the lower bound for amplitude, sigma and tau of the Hyper-EMG.
	ParamFloor = 1e-6
)

// Fitter runs curve fits. A Fitter holds configuration only and is safe for
// concurrent use; scratch buffers are taken from a pool per call.
type Fitter struct {
	componentMetadata types.ComponentMetadata
	loggers           []types.Logger
	loggersLock       sync.Mutex

	maxIterations int
	damping       float64
	stepTolerance float64
}

// NewFitter constructs a Fitter with default LM settings and applies options.
func NewFitter(options ...types.Option[*Fitter]) *Fitter {
	f := &Fitter{
		componentMetadata: types.ComponentMetadata{
			Type: "FITTER",
			ID:   utils.GenerateUniqueHash(),
		},
		loggers:       make([]types.Logger, 0),
		maxIterations: DefaultMaxIterations,
		damping:       DefaultDamping,
		stepTolerance: DefaultStepTolerance,
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	return f
}

// GetComponentMetadata returns the fitter metadata.
func (f *Fitter) GetComponentMetadata() types.ComponentMetadata {
	return f.componentMetadata
}

// SetComponentMetadata sets the fitter name and id.
func (f *Fitter) SetComponentMetadata(name string, id string) {
	f.componentMetadata = types.ComponentMetadata{Name: name, ID: id, Type: f.componentMetadata.Type}
}

// ConnectLogger registers loggers for the fitter.
func (f *Fitter) ConnectLogger(loggers ...types.Logger) {
	f.loggersLock.Lock()
	defer f.loggersLock.Unlock()
	for _, l := range loggers {
		if l != nil {
			f.loggers = append(f.loggers, l)
		}
	}
}

// ParamCount returns the number of free parameters of a model.
func ParamCount(model types.Model) int {
	if model == types.ModelHyperEMG {
		return 4
	}
	return 3
}
