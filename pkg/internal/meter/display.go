package meter

import (
	"fmt"
	"io"
	"runtime"
	"sort"
	"sync/atomic"
	"time"

	"github.com/joeydtaylor/framefit/pkg/internal/types"
	"github.com/joeydtaylor/framefit/pkg/logschema"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
)

// Snapshot copies every counter and, unless disabled, samples host CPU and RAM use.
// Sampling blocks for the configured CPU interval.
func (m *Meter) Snapshot() types.MeterSnapshot {
	snap := types.MeterSnapshot{
		Counts:         make(map[string]uint64),
		Progress:       m.GetProgress(),
		Elapsed:        time.Since(m.startTime),
		GoroutineCount: runtime.NumGoroutine(),
	}

	m.countsLock.RLock()
	for name, c := range m.counts {
		snap.Counts[name] = atomic.LoadUint64(c)
	}
	m.countsLock.RUnlock()

	if m.hostStats {
		if cpuPercentages, err := cpu.Percent(m.cpuSampleInterval, false); err == nil && len(cpuPercentages) > 0 {
			snap.CPUPercent = cpuPercentages[0]
		}
		if memStats, err := mem.VirtualMemory(); err == nil {
			snap.MemoryPercent = memStats.UsedPercent
		}
	}
	return snap
}

// Render writes a human-readable summary of snap.
func Render(w io.Writer, snap types.MeterSnapshot) error {
	names := make([]string, 0, len(snap.Counts))
	for name := range snap.Counts {
		names = append(names, name)
	}
	sort.Strings(names)

	if _, err := fmt.Fprintf(w, "Elapsed: %s, Progress: %d%%, Goroutines: %d, CPU: %.2f%%, RAM: %.2f%%\n",
		snap.Elapsed.Truncate(time.Millisecond),
		int(snap.Progress*100),
		snap.GoroutineCount,
		snap.CPUPercent,
		snap.MemoryPercent,
	); err != nil {
		return err
	}
	for _, name := range names {
		if _, err := fmt.Fprintf(w, "%s: %d\n", name, snap.Counts[name]); err != nil {
			return err
		}
	}
	return nil
}

// LogSummary writes snap to the connected loggers at info level.
func (m *Meter) LogSummary(snap types.MeterSnapshot) {
	m.loggersLock.Lock()
	loggers := append([]types.Logger(nil), m.loggers...)
	m.loggersLock.Unlock()

	kv := []interface{}{
		logschema.FieldComponent, m.componentMetadata,
		logschema.FieldEvent, "Summary",
		logschema.FieldProgress, snap.Progress,
		"elapsed", snap.Elapsed.String(),
		"cpu_percent", snap.CPUPercent,
		"ram_percent", snap.MemoryPercent,
	}
	for name, v := range snap.Counts {
		kv = append(kv, name, v)
	}
	for _, l := range loggers {
		if l.GetLevel() <= types.InfoLevel {
			l.Info("Meter: run summary", kv...)
		}
	}
}
