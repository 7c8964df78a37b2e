package builder

import (
	"io"
	"time"

	"github.com/joeydtaylor/framefit/pkg/internal/meter"
	"github.com/joeydtaylor/framefit/pkg/internal/types"
)

type Meter = meter.Meter

type MeterSnapshot = types.MeterSnapshot

// Counter names kept by the meter.
const (
	MetricFramesDecoded  = types.MetricFramesDecoded
	MetricFramesDropped  = types.MetricFramesDropped
	MetricSamplesDecoded = types.MetricSamplesDecoded
	MetricFitsCompleted  = types.MetricFitsCompleted
	MetricFitsFailed     = types.MetricFitsFailed
	MetricErrors         = types.MetricErrors
)

// NewMeter creates a run meter. Connect meter.Sensor() to the components it should count.
func NewMeter(options ...types.Option[*meter.Meter]) *meter.Meter {
	return meter.NewMeter(options...)
}

func MeterWithLogger(l ...types.Logger) types.Option[*meter.Meter] {
	return meter.WithLogger(l...)
}

// MeterWithCPUSampleInterval sets how long Snapshot samples host CPU usage.
func MeterWithCPUSampleInterval(d time.Duration) types.Option[*meter.Meter] {
	return meter.WithCPUSampleInterval(d)
}

// MeterWithHostStats enables or disables the gopsutil host readings in Snapshot.
func MeterWithHostStats(enabled bool) types.Option[*meter.Meter] {
	return meter.WithHostStats(enabled)
}

func MeterWithComponentMetadata(name string, id string) types.Option[*meter.Meter] {
	return meter.WithComponentMetadata(name, id)
}

// RenderMeterSnapshot writes a human readable summary of snap.
func RenderMeterSnapshot(w io.Writer, snap MeterSnapshot) error {
	return meter.Render(w, snap)
}
