package internallogger_test

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/joeydtaylor/framefit/pkg/internal/internallogger"
	"github.com/joeydtaylor/framefit/pkg/internal/types"
	"github.com/joeydtaylor/framefit/pkg/logschema"
)

func TestNewLogger_DefaultLevel(t *testing.T) {
	logger := internallogger.NewLogger()
	if got := logger.GetLevel(); got != types.InfoLevel {
		t.Fatalf("expected InfoLevel, got %v", got)
	}
}

func TestNewLogger_WithLevel(t *testing.T) {
	logger := internallogger.NewLogger(internallogger.LoggerWithLevel("debug"))
	if got := logger.GetLevel(); got != types.DebugLevel {
		t.Fatalf("expected DebugLevel, got %v", got)
	}

	logger = internallogger.NewLogger(internallogger.LoggerWithLevel("unknown"))
	if got := logger.GetLevel(); got != types.InfoLevel {
		t.Fatalf("expected InfoLevel on unknown level, got %v", got)
	}
}

func TestLogger_SetLevel(t *testing.T) {
	logger := internallogger.NewLogger()
	logger.SetLevel(types.ErrorLevel)
	if got := logger.GetLevel(); got != types.ErrorLevel {
		t.Fatalf("expected ErrorLevel, got %v", got)
	}
}

func TestLogger_AddRemoveListSinks(t *testing.T) {
	logger := internallogger.NewLogger(internallogger.LoggerWithLevel("debug"))

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "app.log")

	if err := logger.AddSink("file", types.SinkConfig{Type: "file", Config: map[string]interface{}{"path": path}}); err != nil {
		t.Fatalf("AddSink(file) error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected log file to exist: %v", err)
	}

	if err := logger.AddSink("stdout", types.SinkConfig{Type: "stdout"}); err != nil {
		t.Fatalf("AddSink(stdout) error: %v", err)
	}

	sinks, err := logger.ListSinks()
	if err != nil {
		t.Fatalf("ListSinks error: %v", err)
	}
	if len(sinks) != 2 || sinks[0] != "file" || sinks[1] != "stdout" {
		t.Fatalf("expected sorted [file stdout], got %v", sinks)
	}

	if err := logger.RemoveSink("stdout"); err != nil {
		t.Fatalf("RemoveSink error: %v", err)
	}
	if err := logger.RemoveSink("missing"); err == nil {
		t.Fatalf("expected error removing missing sink")
	}
}

func TestLogger_AddSinkInvalidConfig(t *testing.T) {
	logger := internallogger.NewLogger()

	if err := logger.AddSink("file", types.SinkConfig{Type: "file", Config: map[string]interface{}{}}); err == nil {
		t.Fatalf("expected error for missing file path")
	}
	if err := logger.AddSink("network", types.SinkConfig{Type: "network"}); err == nil {
		t.Fatalf("expected error for unsupported sink type")
	}
}

func TestLogger_LogHandlesOddKeys(t *testing.T) {
	logger := internallogger.NewLogger(internallogger.LoggerWithLevel("debug"))

	logger.Log(types.InfoLevel, "odd keys", "key", "value", "orphan")
	logger.Log(types.InfoLevel, "non-string key", 123, "value")
}

func TestLogger_Flush(t *testing.T) {
	logger := internallogger.NewLogger()
	if err := logger.Flush(); err != nil {
		t.Fatalf("Flush error: %v", err)
	}
}

func TestLogger_OptionsCoverage(t *testing.T) {
	logger := internallogger.NewLogger(
		internallogger.LoggerWithDevelopment(true),
		internallogger.ZapAdapterWithCallerSkip(1),
	)
	logger.Info("options")
}

func TestLogger_FileSinkWritesSchemaFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "framefit.log")
	logger := internallogger.NewLogger(
		internallogger.LoggerWithLevel("info"),
		internallogger.LoggerWithOutputPaths(os.DevNull),
		internallogger.LoggerWithFields(map[string]interface{}{"run": "unit"}),
	)
	if err := logger.AddSink("file", types.SinkConfig{Type: string(types.FileSink), Config: map[string]interface{}{"path": path}}); err != nil {
		t.Fatalf("AddSink(file) error: %v", err)
	}

	logger.Debug("hidden")
	logger.Info("decoded", logschema.FieldFrames, 3, logschema.FieldError, errors.New("boom"))
	if err := logger.RemoveSink("file"); err != nil {
		t.Fatalf("RemoveSink error: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	defer f.Close()

	var lines []map[string]interface{}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var rec map[string]interface{}
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			t.Fatalf("log line is not JSON: %v", err)
		}
		lines = append(lines, rec)
	}
	if len(lines) != 1 {
		t.Fatalf("expected 1 line above debug, got %d", len(lines))
	}
	rec := lines[0]
	if rec[logschema.FieldMessage] != "decoded" || rec[logschema.FieldLevel] != "info" {
		t.Fatalf("unexpected record: %v", rec)
	}
	if rec[logschema.FieldSchema] != logschema.SchemaID || rec["run"] != "unit" {
		t.Fatalf("missing base fields: %v", rec)
	}
	if rec[logschema.FieldFrames] != float64(3) || rec[logschema.FieldError] != "boom" {
		t.Fatalf("missing call fields: %v", rec)
	}
}

func TestLogger_SchemaOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.log")
	logger := internallogger.NewLogger(
		internallogger.LoggerWithOutputPaths(path),
		internallogger.LoggerWithSchema("custom.v2"),
		internallogger.LoggerWithoutCaller(),
	)
	logger.Warn("hello")
	_ = logger.Flush()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	var rec map[string]interface{}
	if err := json.Unmarshal(data, &rec); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, data)
	}
	if rec[logschema.FieldSchema] != "custom.v2" {
		t.Fatalf("expected schema override, got %v", rec[logschema.FieldSchema])
	}
	if _, ok := rec[logschema.FieldCaller]; ok {
		t.Fatalf("caller should be omitted")
	}
}
