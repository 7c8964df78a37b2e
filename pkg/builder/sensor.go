package builder

import (
	"github.com/joeydtaylor/framefit/pkg/internal/sensor"
	"github.com/joeydtaylor/framefit/pkg/internal/types"
)

type Sensor = types.Sensor

// NewSensor creates a sensor carrying the given callbacks.
func NewSensor(options ...types.Option[types.Sensor]) types.Sensor {
	return sensor.NewSensor(options...)
}

// SensorWithOnStartFunc registers a callback for the start of a decode or analysis run.
func SensorWithOnStartFunc(callback ...func(ComponentMetadata)) types.Option[types.Sensor] {
	return sensor.WithOnStartFunc(callback...)
}

// SensorWithOnCompleteFunc registers a callback for the end of a run.
func SensorWithOnCompleteFunc(callback ...func(ComponentMetadata)) types.Option[types.Sensor] {
	return sensor.WithOnCompleteFunc(callback...)
}

// SensorWithOnFrameDecodedFunc registers a callback per decoded frame.
func SensorWithOnFrameDecodedFunc(callback ...func(c ComponentMetadata, seq uint16)) types.Option[types.Sensor] {
	return sensor.WithOnFrameDecodedFunc(callback...)
}

// SensorWithOnFrameDroppedFunc registers a callback for a truncated trailing frame.
func SensorWithOnFrameDroppedFunc(callback ...func(c ComponentMetadata, pendingChars int)) types.Option[types.Sensor] {
	return sensor.WithOnFrameDroppedFunc(callback...)
}

func SensorWithOnSampleDecodedFunc(callback ...func(c ComponentMetadata, rec SampleRecord)) types.Option[types.Sensor] {
	return sensor.WithOnSampleDecodedFunc(callback...)
}

// SensorWithOnFitCompleteFunc registers a callback per successful channel fit.
func SensorWithOnFitCompleteFunc(callback ...func(c ComponentMetadata, channel int, res FitResult)) types.Option[types.Sensor] {
	return sensor.WithOnFitCompleteFunc(callback...)
}

func SensorWithOnFitFailedFunc(callback ...func(c ComponentMetadata, channel int)) types.Option[types.Sensor] {
	return sensor.WithOnFitFailedFunc(callback...)
}

// SensorWithOnProgressFunc registers a coarse progress callback.
func SensorWithOnProgressFunc(callback ...func(c ComponentMetadata, fraction float64)) types.Option[types.Sensor] {
	return sensor.WithOnProgressFunc(callback...)
}

func SensorWithOnErrorFunc(callback ...func(c ComponentMetadata, err error)) types.Option[types.Sensor] {
	return sensor.WithOnErrorFunc(callback...)
}

func SensorWithLogger(loggers ...types.Logger) types.Option[types.Sensor] {
	return sensor.WithLogger(loggers...)
}

// SensorWithMeter wires the sensor's builtin counters to the given meters.
func SensorWithMeter(meters ...types.Meter) types.Option[types.Sensor] {
	return sensor.WithMeter(meters...)
}
