package sensor

import "github.com/joeydtaylor/framefit/pkg/internal/types"

// WithOnStartFunc registers a callback for component start.
func WithOnStartFunc(callback ...func(c types.ComponentMetadata)) types.Option[types.Sensor] {
	return func(s types.Sensor) { s.RegisterOnStart(callback...) }
}

// WithOnCompleteFunc registers a callback for component completion.
func WithOnCompleteFunc(callback ...func(c types.ComponentMetadata)) types.Option[types.Sensor] {
	return func(s types.Sensor) { s.RegisterOnComplete(callback...) }
}

// WithOnFrameDecodedFunc registers a callback fired once per complete frame.
func WithOnFrameDecodedFunc(callback ...func(c types.ComponentMetadata, seq uint16)) types.Option[types.Sensor] {
	return func(s types.Sensor) { s.RegisterOnFrameDecoded(callback...) }
}

// WithOnFrameDroppedFunc registers a callback fired when a truncated frame is discarded.
func WithOnFrameDroppedFunc(callback ...func(c types.ComponentMetadata, pendingChars int)) types.Option[types.Sensor] {
	return func(s types.Sensor) { s.RegisterOnFrameDropped(callback...) }
}

// WithOnSampleDecodedFunc registers a callback fired for each decoded record.
func WithOnSampleDecodedFunc(callback ...func(c types.ComponentMetadata, rec types.SampleRecord)) types.Option[types.Sensor] {
	return func(s types.Sensor) { s.RegisterOnSampleDecoded(callback...) }
}

// WithOnFitCompleteFunc registers a callback fired when a channel fit produced a result.
func WithOnFitCompleteFunc(callback ...func(c types.ComponentMetadata, channel int, res types.FitResult)) types.Option[types.Sensor] {
	return func(s types.Sensor) { s.RegisterOnFitComplete(callback...) }
}

// WithOnFitFailedFunc registers a callback fired when a channel yields the empty result.
func WithOnFitFailedFunc(callback ...func(c types.ComponentMetadata, channel int)) types.Option[types.Sensor] {
	return func(s types.Sensor) { s.RegisterOnFitFailed(callback...) }
}

// WithOnProgressFunc registers a progress callback.
func WithOnProgressFunc(callback ...func(c types.ComponentMetadata, fraction float64)) types.Option[types.Sensor] {
	return func(s types.Sensor) { s.RegisterOnProgress(callback...) }
}

// WithOnErrorFunc registers an error callback.
func WithOnErrorFunc(callback ...func(c types.ComponentMetadata, err error)) types.Option[types.Sensor] {
	return func(s types.Sensor) { s.RegisterOnError(callback...) }
}

// WithLogger attaches loggers to the sensor.
func WithLogger(loggers ...types.Logger) types.Option[types.Sensor] {
	return func(s types.Sensor) { s.ConnectLogger(loggers...) }
}

// WithMeter attaches meters updated by the sensor's built-in callbacks.
func WithMeter(meters ...types.Meter) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		if ms, ok := s.(*Sensor); ok {
			ms.ConnectMeter(meters...)
		}
	}
}
