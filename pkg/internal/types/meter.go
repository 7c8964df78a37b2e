package types

import "time"

const (
	MetricFramesDecoded  = "frames_decoded"
	MetricFramesDropped  = "frames_dropped"
	MetricSamplesDecoded = "samples_decoded"
	MetricFitsCompleted  = "fits_completed"
	MetricFitsFailed     = "fits_failed"
	MetricErrors         = "errors"
)

// MeterSnapshot is a point-in-time copy of meter state.
type MeterSnapshot struct {
	Counts         map[string]uint64 `json:"counts"`
	Progress       float64           `json:"progress"`
	Elapsed        time.Duration     `json:"elapsed"`
	CPUPercent     float64           `json:"cpuPercent"`
	MemoryPercent  float64           `json:"memoryPercent"`
	GoroutineCount int               `json:"goroutines"`
}

// Meter accumulates counters for one decode or analysis run.
type Meter interface {
	GetComponentMetadata() ComponentMetadata
	IncrementCount(name string)
	AddCount(name string, n uint64)
	GetCount(name string) uint64
	SetProgress(fraction float64)
	GetProgress() float64
	Snapshot() MeterSnapshot
	Sensor() Sensor
}
