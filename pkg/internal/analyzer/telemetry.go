package analyzer

import "github.com/joeydtaylor/framefit/pkg/internal/types"

// NotifyLoggers emits a log event to all configured loggers.
func (a *Analyzer) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	for _, logger := range a.snapshotLoggers() {
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

func (a *Analyzer) snapshotLoggers() []types.Logger {
	a.loggersLock.Lock()
	loggers := append([]types.Logger(nil), a.loggers...)
	a.loggersLock.Unlock()
	return loggers
}

func (a *Analyzer) notifyStart() {
	for _, s := range a.sensors {
		s.InvokeOnStart(a.componentMetadata)
	}
}

func (a *Analyzer) notifyComplete() {
	for _, s := range a.sensors {
		s.InvokeOnComplete(a.componentMetadata)
	}
}

func (a *Analyzer) notifyError(err error) {
	for _, s := range a.sensors {
		s.InvokeOnError(a.componentMetadata, err)
	}
}

func (a *Analyzer) notifyChannel(channel int, res types.FitResult) {
	for _, s := range a.sensors {
		if res.OK {
			s.InvokeOnFitComplete(a.componentMetadata, channel, res)
		} else {
			s.InvokeOnFitFailed(a.componentMetadata, channel)
		}
	}
}

func (a *Analyzer) reportProgress(fraction float64) {
	if a.progress != nil {
		a.progress(fraction)
	}
	for _, s := range a.sensors {
		s.InvokeOnProgress(a.componentMetadata, fraction)
	}
}
