package fitter

import "github.com/joeydtaylor/framefit/pkg/internal/types"

// NotifyLoggers sends a structured log entry to every connected logger at or above level.
func (f *Fitter) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	f.loggersLock.Lock()
	defer f.loggersLock.Unlock()

	for _, logger := range f.loggers {
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

func (f *Fitter) hasLoggers() bool {
	f.loggersLock.Lock()
	defer f.loggersLock.Unlock()
	return len(f.loggers) > 0
}
