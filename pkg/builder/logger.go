package builder

import (
	internalLogger "github.com/joeydtaylor/framefit/pkg/internal/internallogger"
	"github.com/joeydtaylor/framefit/pkg/internal/types"
	"github.com/joeydtaylor/framefit/pkg/logschema"
)

type LoggerOption = internalLogger.LoggerOption

type Logger = types.Logger

type SinkConfig = types.SinkConfig

type SinkType = types.SinkType

const (
	FileSink   = types.FileSink
	StdoutSink = types.StdoutSink
	StderrSink = types.StderrSink
)

// NewLogger returns a zap backed logger. Output goes to stderr by default.
func NewLogger(options ...LoggerOption) types.Logger {
	return internalLogger.NewLogger(options...)
}

// LoggerWithLevel configures the logger to use the specified log level.
func LoggerWithLevel(levelStr string) LoggerOption {
	return internalLogger.LoggerWithLevel(levelStr)
}

// LoggerWithDevelopment switches to console output.
func LoggerWithDevelopment(dev bool) LoggerOption {
	return internalLogger.LoggerWithDevelopment(dev)
}

// LoggerWithOutputPaths replaces the default stderr destination.
func LoggerWithOutputPaths(paths ...string) LoggerOption {
	return internalLogger.LoggerWithOutputPaths(paths...)
}

// LoggerWithFields attaches fields to every log line.
func LoggerWithFields(fields map[string]interface{}) LoggerOption {
	return internalLogger.LoggerWithFields(fields)
}

// LoggerWithSchema overrides the log schema identifier field.
func LoggerWithSchema(schema string) LoggerOption {
	return internalLogger.LoggerWithSchema(schema)
}

func LoggerWithoutCaller() LoggerOption {
	return internalLogger.LoggerWithoutCaller()
}

// ParseLogLevel maps "debug", "info", ... to a LogLevel. Unknown names map to InfoLevel.
func ParseLogLevel(name string) LogLevel {
	return internalLogger.ParseLevel(name)
}

// Log schema constants for the standard framefit log format.
const (
	LogSchemaID    = logschema.SchemaID
	LogSchemaField = logschema.FieldSchema
)

// LogLevel is exported from the internal types package.
type LogLevel = types.LogLevel

// Export log levels to be accessible under the builder package
const (
	DebugLevel  = types.DebugLevel
	InfoLevel   = types.InfoLevel
	WarnLevel   = types.WarnLevel
	ErrorLevel  = types.ErrorLevel
	DPanicLevel = types.DPanicLevel
	PanicLevel  = types.PanicLevel
	FatalLevel  = types.FatalLevel
)
