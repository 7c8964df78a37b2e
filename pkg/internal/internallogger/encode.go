package internallogger

import (
	"sort"
	"time"

	"github.com/joeydtaylor/framefit/pkg/internal/types"
	"github.com/joeydtaylor/framefit/pkg/logschema"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func schemaEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:       logschema.FieldTimestamp,
		LevelKey:      logschema.FieldLevel,
		NameKey:       logschema.FieldLogger,
		CallerKey:     logschema.FieldCaller,
		MessageKey:    logschema.FieldMessage,
		StacktraceKey: logschema.FieldStack,
		LineEnding:    zapcore.DefaultLineEnding,
		EncodeLevel:   zapcore.LowercaseLevelEncoder,
		EncodeTime: func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(t.UTC().Format(time.RFC3339Nano))
		},
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

// initialFields turns the configured constant fields into zap fields in key order.
func initialFields(fields map[string]interface{}) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		if k != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	out := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		out = append(out, logField(k, fields[k]))
	}
	return out
}

// logField flattens framefit values into loggable shapes. Fit results drop
// their curve; sample records keep only their position in the stream.
func logField(key string, value interface{}) zap.Field {
	switch v := value.(type) {
	case types.ComponentMetadata:
		return zap.Any(key, componentFields(v))
	case *types.ComponentMetadata:
		if v == nil {
			return zap.Any(key, nil)
		}
		return zap.Any(key, componentFields(*v))
	case error:
		return zap.NamedError(key, v)
	case types.ChannelGroup:
		return zap.String(key, v.String())
	case types.Model:
		return zap.String(key, v.String())
	case types.FitResult:
		return zap.Object(key, fitSummary(v))
	case *types.FitResult:
		if v == nil {
			return zap.Any(key, nil)
		}
		return zap.Object(key, fitSummary(*v))
	case types.SampleRecord:
		return zap.Object(key, zapcore.ObjectMarshalerFunc(func(enc zapcore.ObjectEncoder) error {
			enc.AddUint16(logschema.FieldSequence, v.PacketSequence)
			enc.AddInt("sample", v.SampleIndex)
			return nil
		}))
	}
	return zap.Any(key, value)
}

func componentFields(meta types.ComponentMetadata) map[string]string {
	return map[string]string{
		"id":   meta.ID,
		"type": meta.Type,
		"name": meta.Name,
	}
}

func fitSummary(res types.FitResult) zapcore.ObjectMarshalerFunc {
	return func(enc zapcore.ObjectEncoder) error {
		enc.AddString(logschema.FieldModel, res.Model.String())
		enc.AddBool("ok", res.OK)
		enc.AddBool("converged", res.Converged)
		enc.AddInt(logschema.FieldIterations, res.Iterations)
		enc.AddFloat64(logschema.FieldCentroid, res.Centroid)
		enc.AddFloat64(logschema.FieldWidth, res.Width)
		enc.AddFloat64("peak", res.Peak)
		enc.AddInt(logschema.FieldPoints, len(res.Curve))
		if res.Model == types.ModelHyperEMG {
			enc.AddFloat64("tau", res.Tau)
		}
		return nil
	}
}
