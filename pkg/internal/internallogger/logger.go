// Package internallogger adapts zap to the types.Logger interface used by
// every framefit component.
package internallogger

import (
	"os"
	"sync"

	"github.com/joeydtaylor/framefit/pkg/logschema"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerOption mutates the zap configuration, the starting level and the caller skip.
type LoggerOption func(*zap.Config, *zapcore.Level, *int)

// ZapLoggerAdapter implements types.Logger on top of a zap tee of a base core
// plus any sinks added at runtime.
type ZapLoggerAdapter struct {
	mu          sync.Mutex
	logger      *zap.Logger
	atomicLevel zap.AtomicLevel
	encConfig   zapcore.EncoderConfig
	encoding    string
	baseCore    zapcore.Core
	baseFields  []zap.Field
	callerDepth int
	callerOn    bool
	sinks       map[string]sinkEntry
}

// NewLogger builds a logger writing JSON to stderr unless the options say otherwise.
// stdout is left to the data a command produces.
func NewLogger(options ...LoggerOption) *ZapLoggerAdapter {
	config := zap.NewProductionConfig()
	config.OutputPaths = []string{"stderr"}
	config.InitialFields = map[string]interface{}{logschema.FieldSchema: logschema.SchemaID}
	level := zapcore.InfoLevel
	callerDepth := 2

	for _, option := range options {
		option(&config, &level, &callerDepth)
	}

	z := &ZapLoggerAdapter{
		atomicLevel: zap.NewAtomicLevelAt(level),
		encConfig:   schemaEncoderConfig(),
		encoding:    config.Encoding,
		baseFields:  initialFields(config.InitialFields),
		callerDepth: callerDepth,
		callerOn:    !config.DisableCaller,
		sinks:       make(map[string]sinkEntry),
	}
	if config.Development {
		z.encConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	ws, _, err := zap.Open(config.OutputPaths...)
	if err != nil {
		ws = zapcore.Lock(os.Stderr)
	}
	z.baseCore = zapcore.NewCore(z.newEncoder(), ws, z.atomicLevel)

	z.mu.Lock()
	z.rebuildLoggerLocked()
	z.mu.Unlock()
	return z
}

func (z *ZapLoggerAdapter) newEncoder() zapcore.Encoder {
	if z.encoding == "console" {
		return zapcore.NewConsoleEncoder(z.encConfig)
	}
	return zapcore.NewJSONEncoder(z.encConfig)
}
