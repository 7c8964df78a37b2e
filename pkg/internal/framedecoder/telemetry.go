package framedecoder

import (
	"github.com/joeydtaylor/framefit/pkg/internal/types"
	"github.com/joeydtaylor/framefit/pkg/internal/utils"
	"github.com/joeydtaylor/framefit/pkg/logschema"
)

// NotifyLoggers emits a log event to all configured loggers.
func (d *Decoder) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	d.loggersLock.Lock()
	loggers := append([]types.Logger(nil), d.loggers...)
	d.loggersLock.Unlock()

	for _, logger := range loggers {
		if logger == nil || logger.GetLevel() > level {
			continue
		}
		switch level {
		case types.DebugLevel:
			logger.Debug(msg, keysAndValues...)
		case types.InfoLevel:
			logger.Info(msg, keysAndValues...)
		case types.WarnLevel:
			logger.Warn(msg, keysAndValues...)
		default:
			logger.Error(msg, keysAndValues...)
		}
	}
}

func (d *Decoder) notifyStart() {
	for _, s := range d.sensors {
		s.InvokeOnStart(d.componentMetadata)
	}
}

func (d *Decoder) notifyComplete() {
	for _, s := range d.sensors {
		s.InvokeOnComplete(d.componentMetadata)
	}
}

func (d *Decoder) notifyError(err error) {
	for _, s := range d.sensors {
		s.InvokeOnError(d.componentMetadata, err)
	}
}

func (d *Decoder) notifyFrame(seq uint16) {
	for _, s := range d.sensors {
		s.InvokeOnFrameDecoded(d.componentMetadata, seq)
	}
}

func (d *Decoder) notifySample(rec types.SampleRecord) {
	for _, s := range d.sensors {
		s.InvokeOnSampleDecoded(d.componentMetadata, rec)
	}
}

func (d *Decoder) notifyDropped(pending int) {
	for _, s := range d.sensors {
		s.InvokeOnFrameDropped(d.componentMetadata, pending)
	}
	d.NotifyLoggers(types.DebugLevel, "Decoder: dropped truncated frame",
		logschema.FieldComponent, d.componentMetadata,
		logschema.FieldEvent, "Close",
		logschema.FieldPending, pending,
	)
}

// reportProgress publishes bytes read over the configured total. done forces 1.
func (d *Decoder) reportProgress(done bool) {
	if d.progressFn == nil && len(d.sensors) == 0 {
		return
	}
	var fraction float64
	switch {
	case done:
		fraction = 1
	case d.progressTotal > 0:
		fraction = utils.Clamp(float64(d.stats.Bytes)/float64(d.progressTotal), 0, 1)
	default:
		return
	}
	if d.progressFn != nil {
		d.progressFn(fraction)
	}
	for _, s := range d.sensors {
		s.InvokeOnProgress(d.componentMetadata, fraction)
	}
}
