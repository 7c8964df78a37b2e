// Package analyzer characterises the value distribution of every channel in one
// sensor layer. The 16 channels are independent and are analysed on a bounded
// worker pool, each worker writing only its own result slot.
package analyzer

import (
	"runtime"
	"sync"

	"github.com/joeydtaylor/framefit/pkg/internal/fitter"
	"github.com/joeydtaylor/framefit/pkg/internal/kalman"
	"github.com/joeydtaylor/framefit/pkg/internal/types"
	"github.com/joeydtaylor/framefit/pkg/internal/utils"
)

// Analyzer holds configuration only; Analyze may be called concurrently.
type Analyzer struct {
	componentMetadata types.ComponentMetadata

	loggers     []types.Logger
	loggersLock sync.Mutex
	sensors     []types.Sensor

	config    types.FitConfig
	workers   int
	bins      int
	baseline  *[types.ChannelsPerGroup]float64
	smoothing *kalman.Config
	progress  types.ProgressFunc
	fitter    *fitter.Fitter
}

// NewAnalyzer constructs an Analyzer. Without options it reports weighted moments
// of auto-binned histograms on min(16, GOMAXPROCS) workers.
func NewAnalyzer(options ...types.Option[*Analyzer]) *Analyzer {
	a := &Analyzer{
		componentMetadata: types.ComponentMetadata{
			Type: "ANALYZER",
			ID:   utils.GenerateUniqueHash(),
		},
		config:  types.FitConfig{Model: types.ModelGaussian},
		workers: min(types.ChannelsPerGroup, runtime.GOMAXPROCS(0)),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(a)
	}
	if a.fitter == nil {
		a.fitter = fitter.NewFitter(fitter.WithLogger(a.snapshotLoggers()...))
	}
	return a
}

// GetComponentMetadata returns the analyzer metadata.
func (a *Analyzer) GetComponentMetadata() types.ComponentMetadata {
	return a.componentMetadata
}

// SetComponentMetadata sets the analyzer name and id.
func (a *Analyzer) SetComponentMetadata(name string, id string) {
	a.componentMetadata = types.ComponentMetadata{Name: name, ID: id, Type: a.componentMetadata.Type}
}

// ConnectLogger registers loggers for the analyzer.
func (a *Analyzer) ConnectLogger(loggers ...types.Logger) {
	a.loggersLock.Lock()
	defer a.loggersLock.Unlock()
	for _, l := range loggers {
		if l != nil {
			a.loggers = append(a.loggers, l)
		}
	}
}

// ConnectSensor registers sensors for the analyzer.
func (a *Analyzer) ConnectSensor(sensors ...types.Sensor) {
	for _, s := range sensors {
		if s != nil {
			a.sensors = append(a.sensors, s)
		}
	}
}

// Config returns the fitting configuration in use.
func (a *Analyzer) Config() types.FitConfig {
	return a.config
}

// Workers returns the size of the channel worker pool.
func (a *Analyzer) Workers() int {
	return a.workers
}
