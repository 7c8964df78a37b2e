// Package meter counts decode and analysis events for one run and samples host
// load on demand.
package meter

import (
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/joeydtaylor/framefit/pkg/internal/sensor"
	"github.com/joeydtaylor/framefit/pkg/internal/types"
	"github.com/joeydtaylor/framefit/pkg/internal/utils"
)

// DefaultCPUSampleInterval is the window cpu.Percent averages over in Snapshot.
const DefaultCPUSampleInterval = 200 * time.Millisecond

type Meter struct {
	componentMetadata types.ComponentMetadata

	counts     map[string]*uint64
	countsLock sync.RWMutex
	progress   atomic.Uint64

	startTime         time.Time
	cpuSampleInterval time.Duration
	hostStats         bool

	loggers     []types.Logger
	loggersLock sync.Mutex
}

// NewMeter constructs a Meter with every framefit counter at zero.
func NewMeter(options ...types.Option[*Meter]) *Meter {
	m := &Meter{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "METER",
		},
		counts:            make(map[string]*uint64),
		startTime:         time.Now(),
		cpuSampleInterval: DefaultCPUSampleInterval,
		hostStats:         true,
	}
	for _, name := range []string{
		types.MetricFramesDecoded,
		types.MetricFramesDropped,
		types.MetricSamplesDecoded,
		types.MetricFitsCompleted,
		types.MetricFitsFailed,
		types.MetricErrors,
	} {
		m.counts[name] = new(uint64)
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(m)
	}
	return m
}

// Sensor returns a sensor whose built-in callbacks update this meter.
func (m *Meter) Sensor() types.Sensor {
	return sensor.NewSensor(sensor.WithMeter(m))
}

func (m *Meter) counter(name string) *uint64 {
	m.countsLock.RLock()
	c, ok := m.counts[name]
	m.countsLock.RUnlock()
	if ok {
		return c
	}

	m.countsLock.Lock()
	defer m.countsLock.Unlock()
	if c, ok = m.counts[name]; !ok {
		c = new(uint64)
		m.counts[name] = c
	}
	return c
}

// IncrementCount adds one to the named counter.
func (m *Meter) IncrementCount(name string) {
	atomic.AddUint64(m.counter(name), 1)
}

// AddCount adds n to the named counter.
func (m *Meter) AddCount(name string, n uint64) {
	atomic.AddUint64(m.counter(name), n)
}

// GetCount returns the named counter.
func (m *Meter) GetCount(name string) uint64 {
	return atomic.LoadUint64(m.counter(name))
}

// SetProgress records a completion fraction clamped to [0, 1].
func (m *Meter) SetProgress(fraction float64) {
	m.progress.Store(math.Float64bits(utils.Clamp(fraction, 0, 1)))
}

// GetProgress returns the last recorded completion fraction.
func (m *Meter) GetProgress() float64 {
	return math.Float64frombits(m.progress.Load())
}
