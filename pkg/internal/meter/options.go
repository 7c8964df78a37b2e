package meter

import (
	"time"

	"github.com/joeydtaylor/framefit/pkg/internal/types"
)

// WithLogger registers loggers for the run summary.
func WithLogger(l ...types.Logger) types.Option[*Meter] {
	return func(m *Meter) { m.ConnectLogger(l...) }
}

// WithCPUSampleInterval sets the window host CPU use is averaged over.
func WithCPUSampleInterval(d time.Duration) types.Option[*Meter] {
	return func(m *Meter) {
		if d >= 0 {
			m.cpuSampleInterval = d
		}
	}
}

// WithHostStats enables or disables the host CPU and RAM sample in Snapshot.
func WithHostStats(enabled bool) types.Option[*Meter] {
	return func(m *Meter) { m.hostStats = enabled }
}

// WithComponentMetadata sets the meter name and id.
func WithComponentMetadata(name string, id string) types.Option[*Meter] {
	return func(m *Meter) { m.SetComponentMetadata(name, id) }
}
