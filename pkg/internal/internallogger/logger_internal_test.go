package internallogger

import (
	"testing"

	"github.com/joeydtaylor/framefit/pkg/internal/types"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLog_WritesFields(t *testing.T) {
	logger := NewLogger()
	core, obs := observer.New(zapcore.DebugLevel)

	logger.mu.Lock()
	logger.logger = zap.New(core)
	logger.mu.Unlock()

	logger.Log(types.InfoLevel, "msg", "a", "b", "c", 3, "orphan")

	entries := obs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].Context
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}

	if fields[0].Key != "a" || fields[1].Key != "c" {
		t.Fatalf("unexpected field keys: %v, %v", fields[0].Key, fields[1].Key)
	}
}

func TestLog_IgnoresNonStringKeys(t *testing.T) {
	logger := NewLogger()
	core, obs := observer.New(zapcore.DebugLevel)

	logger.mu.Lock()
	logger.logger = zap.New(core)
	logger.mu.Unlock()

	logger.Log(types.InfoLevel, "msg", 123, "skip", "k", "v")

	entries := obs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].Context
	if len(fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(fields))
	}
	if fields[0].Key != "k" {
		t.Fatalf("expected field key 'k', got %q", fields[0].Key)
	}
}

func TestLog_RespectsCoreLevel(t *testing.T) {
	logger := NewLogger()
	core, obs := observer.New(zapcore.WarnLevel)

	logger.mu.Lock()
	logger.logger = zap.New(core)
	logger.mu.Unlock()

	logger.Log(types.InfoLevel, "info")
	logger.Log(types.WarnLevel, "warn")

	entries := obs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Entry.Level != zapcore.WarnLevel {
		t.Fatalf("expected warn entry, got %v", entries[0].Entry.Level)
	}
}

func TestLog_NilLoggerNoPanic(t *testing.T) {
	logger := NewLogger()
	logger.mu.Lock()
	logger.logger = nil
	logger.mu.Unlock()

	logger.Log(types.InfoLevel, "msg")
}

func TestFlush_NilLogger(t *testing.T) {
	logger := NewLogger()
	logger.mu.Lock()
	logger.logger = nil
	logger.mu.Unlock()

	if err := logger.Flush(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestConvertLevel_Defaults(t *testing.T) {
	if got := ConvertLevel(types.LogLevel(99)); got != zapcore.InfoLevel {
		t.Fatalf("expected default zapcore.InfoLevel, got %v", got)
	}
	if got := convertZapLevel(zapcore.Level(99)); got != types.InfoLevel {
		t.Fatalf("expected default types.InfoLevel, got %v", got)
	}
}

func TestParseLogLevel(t *testing.T) {
	cases := map[string]types.LogLevel{
		"debug":   types.DebugLevel,
		"info":    types.InfoLevel,
		"warn":    types.WarnLevel,
		"error":   types.ErrorLevel,
		"dpanic":  types.DPanicLevel,
		"panic":   types.PanicLevel,
		"fatal":   types.FatalLevel,
		"bogus":   types.InfoLevel,
		"WARNING": types.WarnLevel,
		" Debug ": types.DebugLevel,
	}

	for input, expect := range cases {
		if got := ParseLevel(input); got != expect {
			t.Fatalf("ParseLevel(%q) = %v, expected %v", input, got, expect)
		}
	}
}

func TestLog_FlattensComponentMetadata(t *testing.T) {
	logger := NewLogger()
	core, obs := observer.New(zapcore.DebugLevel)

	logger.mu.Lock()
	logger.logger = zap.New(core)
	logger.mu.Unlock()

	meta := types.ComponentMetadata{ID: "abc", Type: "DECODER", Name: "frames"}
	logger.Log(types.InfoLevel, "msg", "component", meta, "component_ptr", &meta)

	entries := obs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	ctx := entries[0].ContextMap()
	got, ok := ctx["component"].(map[string]string)
	if !ok {
		t.Fatalf("expected flattened component map, got %T", ctx["component"])
	}
	if got["type"] != "DECODER" || got["id"] != "abc" {
		t.Fatalf("unexpected component fields: %v", got)
	}
	if _, ok := ctx["component_ptr"].(map[string]string); !ok {
		t.Fatalf("expected pointer metadata flattened, got %T", ctx["component_ptr"])
	}
}

func TestLog_FlattensAnalysisValues(t *testing.T) {
	logger := NewLogger()
	core, obs := observer.New(zapcore.DebugLevel)

	logger.mu.Lock()
	logger.logger = zap.New(core)
	logger.mu.Unlock()

	res := types.FitResult{
		Model:      types.ModelHyperEMG,
		Curve:      make([]float64, 40),
		Centroid:   812.5,
		Width:      3.25,
		Tau:        1.5,
		Iterations: 7,
		Converged:  true,
		OK:         true,
	}
	rec := types.SampleRecord{PacketSequence: 42, SampleIndex: 3}
	logger.Log(types.InfoLevel, "msg", "group", types.GroupC, "model", types.ModelGaussian, "fit", res, "record", rec)

	entries := obs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	ctx := entries[0].ContextMap()
	if ctx["group"] != "C" {
		t.Fatalf("expected group letter, got %v", ctx["group"])
	}
	if ctx["model"] != types.ModelGaussian.String() {
		t.Fatalf("expected model name, got %v", ctx["model"])
	}

	fit, ok := ctx["fit"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected fit summary object, got %T", ctx["fit"])
	}
	if _, ok := fit["curve"]; ok {
		t.Fatalf("fit summary must not carry the curve")
	}
	if fit["centroid"] != 812.5 || fit["iterations"] != 7 || fit["points"] != 40 || fit["tau"] != 1.5 {
		t.Fatalf("unexpected fit summary: %v", fit)
	}

	got, ok := ctx["record"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected record object, got %T", ctx["record"])
	}
	if got["packet_sequence"] != uint16(42) || got["sample"] != 3 {
		t.Fatalf("unexpected record fields: %v", got)
	}
}
