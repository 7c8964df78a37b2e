package source_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joeydtaylor/framefit/pkg/internal/source"
)

const payload = "E225 0011 2233 4455 6677 8899 AABB CCDD EEFF\n"

func writeCompressed(t *testing.T, path string, comp source.Compression, data []byte) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()

	w, err := source.NewWriter(f, comp)
	if err != nil {
		t.Fatalf("NewWriter(%s): %v", comp, err)
	}
	if _, err := w.Write(data); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
}

func readAll(t *testing.T, s *source.Stream) []byte {
	t.Helper()
	defer s.Close()
	b, err := io.ReadAll(s)
	if err != nil {
		t.Fatalf("read %s: %v", s.Name, err)
	}
	return b
}

func TestOpenCompressedFiles(t *testing.T) {
	data := []byte(strings.Repeat(payload, 500))
	cases := map[string]source.Compression{
		"frames.hex.gz":     source.CompressGzip,
		"frames.hex.zst":    source.CompressZstd,
		"frames.hex.lz4":    source.CompressLZ4,
		"frames.hex.br":     source.CompressBrotli,
		"frames.hex.snappy": source.CompressSnappy,
		"frames.hex.sz":     source.CompressSnappy,
	}

	dir := t.TempDir()
	for name, comp := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			writeCompressed(t, path, comp, data)

			s, err := source.Open(context.Background(), path)
			if err != nil {
				t.Fatalf("Open() error: %v", err)
			}
			if s.Compression != comp || s.Size != -1 {
				t.Fatalf("expected %s with unknown size, got %s size %d", comp, s.Compression, s.Size)
			}
			if got := readAll(t, s); !bytes.Equal(got, data) {
				t.Fatalf("decompressed %d bytes, want %d", len(got), len(data))
			}
		})
	}
}

func TestOpenPlainFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frames.hex")
	if err := os.WriteFile(path, []byte(payload), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	for _, uri := range []string{path, "file://" + path} {
		s, err := source.Open(context.Background(), uri)
		if err != nil {
			t.Fatalf("Open(%q) error: %v", uri, err)
		}
		if s.Size != int64(len(payload)) {
			t.Fatalf("size = %d, want %d", s.Size, len(payload))
		}
		if got := readAll(t, s); string(got) != payload {
			t.Fatalf("unexpected content %q", got)
		}
	}
}

func TestOpenCompressionOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.dat")
	writeCompressed(t, path, source.CompressZstd, []byte(payload))

	s, err := source.Open(context.Background(), path, source.WithCompression(source.CompressZstd))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if got := readAll(t, s); string(got) != payload {
		t.Fatalf("unexpected content %q", got)
	}
}

func TestOpenErrors(t *testing.T) {
	_, err := source.Open(context.Background(), "ftp://host/file.hex")
	if !errors.Is(err, source.ErrUnsupportedScheme) {
		t.Fatalf("expected ErrUnsupportedScheme, got %v", err)
	}

	if _, err := source.Open(context.Background(), filepath.Join(t.TempDir(), "missing.hex")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}

	path := filepath.Join(t.TempDir(), "broken.gz")
	if err := os.WriteFile(path, []byte("not gzip"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := source.Open(context.Background(), path); err == nil {
		t.Fatalf("expected gzip header error")
	}
}

func TestParseS3URI(t *testing.T) {
	bucket, key, err := source.ParseS3URI("s3://captures/run-7/frames.hex.zst")
	if err != nil {
		t.Fatalf("ParseS3URI() error: %v", err)
	}
	if bucket != "captures" || key != "run-7/frames.hex.zst" {
		t.Fatalf("got bucket %q key %q", bucket, key)
	}

	for _, bad := range []string{"s3://captures", "s3:///key", "http://x/y"} {
		if _, _, err := source.ParseS3URI(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestParseCompression(t *testing.T) {
	for name, want := range map[string]source.Compression{
		"":       source.CompressNone,
		"GZIP":   source.CompressGzip,
		"zst":    source.CompressZstd,
		"lz4":    source.CompressLZ4,
		"br":     source.CompressBrotli,
		"snappy": source.CompressSnappy,
	} {
		got, ok := source.ParseCompression(name)
		if !ok || got != want {
			t.Fatalf("ParseCompression(%q) = %s, %v", name, got, ok)
		}
	}
	if _, ok := source.ParseCompression("rar"); ok {
		t.Fatalf("expected rar to be rejected")
	}
}

func TestKafkaServeRequiresTopic(t *testing.T) {
	k := source.NewKafkaSource(source.KafkaWithBrokers("127.0.0.1:1"))
	err := k.Serve(context.Background(), func(context.Context, []byte) error { return nil })
	if err == nil || !strings.Contains(err.Error(), "topic") {
		t.Fatalf("expected missing topic error, got %v", err)
	}
}
