package internallogger

import (
	"strings"

	"github.com/joeydtaylor/framefit/pkg/internal/types"
	"go.uber.org/zap/zapcore"
)

var levelPairs = [...]struct {
	names []string
	level types.LogLevel
	zap   zapcore.Level
}{
	{[]string{"debug"}, types.DebugLevel, zapcore.DebugLevel},
	{[]string{"info"}, types.InfoLevel, zapcore.InfoLevel},
	{[]string{"warn", "warning"}, types.WarnLevel, zapcore.WarnLevel},
	{[]string{"error"}, types.ErrorLevel, zapcore.ErrorLevel},
	{[]string{"dpanic"}, types.DPanicLevel, zapcore.DPanicLevel},
	{[]string{"panic"}, types.PanicLevel, zapcore.PanicLevel},
	{[]string{"fatal"}, types.FatalLevel, zapcore.FatalLevel},
}

// ParseLevel maps a level name, as given to --log-level or LOG_LEVEL, to a
// types.LogLevel. Matching ignores case and surrounding space; unknown names
// map to InfoLevel.
func ParseLevel(name string) types.LogLevel {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, p := range levelPairs {
		for _, n := range p.names {
			if n == name {
				return p.level
			}
		}
	}
	return types.InfoLevel
}

// ConvertLevel converts a types.LogLevel to a zap level.
func ConvertLevel(level types.LogLevel) zapcore.Level {
	for _, p := range levelPairs {
		if p.level == level {
			return p.zap
		}
	}
	return zapcore.InfoLevel
}

func convertZapLevel(level zapcore.Level) types.LogLevel {
	for _, p := range levelPairs {
		if p.zap == level {
			return p.level
		}
	}
	return types.InfoLevel
}
