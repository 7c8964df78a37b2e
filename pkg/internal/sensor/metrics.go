package sensor

import "github.com/joeydtaylor/framefit/pkg/internal/types"

func (s *Sensor) snapshotMeters() []types.Meter {
	s.metersLock.Lock()
	meters := append([]types.Meter(nil), s.meters...)
	s.metersLock.Unlock()
	return meters
}

func (s *Sensor) incrementMeterCounters(metric string) {
	for _, m := range s.snapshotMeters() {
		m.IncrementCount(metric)
	}
}

// decorateCallbacks prepends the meter-updating callbacks so they run before user callbacks.
func (s *Sensor) decorateCallbacks(options ...types.Option[types.Sensor]) []types.Option[types.Sensor] {
	builtins := []types.Option[types.Sensor]{
		WithOnFrameDecodedFunc(func(types.ComponentMetadata, uint16) {
			s.incrementMeterCounters(types.MetricFramesDecoded)
		}),
		WithOnFrameDroppedFunc(func(types.ComponentMetadata, int) {
			s.incrementMeterCounters(types.MetricFramesDropped)
		}),
		WithOnSampleDecodedFunc(func(types.ComponentMetadata, types.SampleRecord) {
			s.incrementMeterCounters(types.MetricSamplesDecoded)
		}),
		WithOnFitCompleteFunc(func(types.ComponentMetadata, int, types.FitResult) {
			s.incrementMeterCounters(types.MetricFitsCompleted)
		}),
		WithOnFitFailedFunc(func(types.ComponentMetadata, int) {
			s.incrementMeterCounters(types.MetricFitsFailed)
		}),
		WithOnProgressFunc(func(_ types.ComponentMetadata, fraction float64) {
			for _, m := range s.snapshotMeters() {
				m.SetProgress(fraction)
			}
		}),
		WithOnErrorFunc(func(types.ComponentMetadata, error) {
			s.incrementMeterCounters(types.MetricErrors)
		}),
	}
	return append(builtins, options...)
}
