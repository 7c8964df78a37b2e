package internallogger

import (
	"github.com/joeydtaylor/framefit/pkg/logschema"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerWithLevel sets the starting level from its name. Unknown names fall back to info.
func LoggerWithLevel(levelStr string) LoggerOption {
	return func(cfg *zap.Config, lvl *zapcore.Level, callerDepth *int) {
		converted := ConvertLevel(ParseLevel(levelStr))
		cfg.Level = zap.NewAtomicLevelAt(converted)
		*lvl = converted
	}
}

// LoggerWithDevelopment switches to the human readable console encoder.
func LoggerWithDevelopment(dev bool) LoggerOption {
	return func(cfg *zap.Config, lvl *zapcore.Level, callerDepth *int) {
		cfg.Development = dev
		if dev {
			cfg.Encoding = "console"
		} else {
			cfg.Encoding = "json"
		}
	}
}

// LoggerWithOutputPaths replaces the base core's destinations. Paths follow zap.Open.
func LoggerWithOutputPaths(paths ...string) LoggerOption {
	return func(cfg *zap.Config, lvl *zapcore.Level, callerDepth *int) {
		if len(paths) == 0 {
			return
		}
		cfg.OutputPaths = append([]string(nil), paths...)
	}
}

// LoggerWithFields attaches fields to every log line.
func LoggerWithFields(fields map[string]interface{}) LoggerOption {
	return func(cfg *zap.Config, lvl *zapcore.Level, callerDepth *int) {
		if cfg.InitialFields == nil {
			cfg.InitialFields = map[string]interface{}{}
		}
		for key, value := range fields {
			if key == "" {
				continue
			}
			cfg.InitialFields[key] = value
		}
	}
}

// LoggerWithSchema overrides the log schema identifier field.
func LoggerWithSchema(schema string) LoggerOption {
	return func(cfg *zap.Config, lvl *zapcore.Level, callerDepth *int) {
		if cfg.InitialFields == nil {
			cfg.InitialFields = map[string]interface{}{}
		}
		cfg.InitialFields[logschema.FieldSchema] = schema
	}
}

// LoggerWithoutCaller drops the caller annotation.
func LoggerWithoutCaller() LoggerOption {
	return func(cfg *zap.Config, lvl *zapcore.Level, callerDepth *int) {
		cfg.DisableCaller = true
	}
}

// ZapAdapterWithCallerSkip adds frames to skip on top of the adapter's own.
func ZapAdapterWithCallerSkip(skip int) LoggerOption {
	return func(cfg *zap.Config, lvl *zapcore.Level, callerDepth *int) {
		*callerDepth += skip
	}
}
