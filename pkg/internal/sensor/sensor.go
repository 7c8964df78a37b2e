package sensor

import (
	"sync"

	"github.com/joeydtaylor/framefit/pkg/internal/types"
	"github.com/joeydtaylor/framefit/pkg/internal/utils"
)

// Sensor provides callback hooks for decode and analysis telemetry.
type Sensor struct {
	componentMetadata types.ComponentMetadata

	OnStart         []func(types.ComponentMetadata)
	OnComplete      []func(types.ComponentMetadata)
	OnFrameDecoded  []func(types.ComponentMetadata, uint16)
	OnFrameDropped  []func(types.ComponentMetadata, int)
	OnSampleDecoded []func(types.ComponentMetadata, types.SampleRecord)
	OnFitComplete   []func(types.ComponentMetadata, int, types.FitResult)
	OnFitFailed     []func(types.ComponentMetadata, int)
	OnProgress      []func(types.ComponentMetadata, float64)
	OnError         []func(types.ComponentMetadata, error)

	callbackLock sync.Mutex
	loggers      []types.Logger
	loggersLock  sync.Mutex
	meters       []types.Meter
	metersLock   sync.Mutex
}

// NewSensor constructs a Sensor with optional configuration.
func NewSensor(options ...types.Option[types.Sensor]) types.Sensor {
	s := &Sensor{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "SENSOR",
		},
	}

	for _, opt := range s.decorateCallbacks(options...) {
		if opt == nil {
			continue
		}
		opt(s)
	}

	return s
}

// GetComponentMetadata returns the sensor metadata.
func (s *Sensor) GetComponentMetadata() types.ComponentMetadata {
	return s.componentMetadata
}

// SetComponentMetadata sets the sensor name and id.
func (s *Sensor) SetComponentMetadata(name string, id string) {
	s.componentMetadata.Name = name
	s.componentMetadata.ID = id
}
