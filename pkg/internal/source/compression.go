package source

import (
	"io"
	"path"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
)

// Compression identifies the codec wrapped around a hex stream.
type Compression int

const (
	CompressNone Compression = iota
	CompressGzip
	CompressZstd
	CompressLZ4
	CompressBrotli
	CompressSnappy
)

func (c Compression) String() string {
	switch c {
	case CompressGzip:
		return "gzip"
	case CompressZstd:
		return "zstd"
	case CompressLZ4:
		return "lz4"
	case CompressBrotli:
		return "brotli"
	case CompressSnappy:
		return "snappy"
	default:
		return "none"
	}
}

// ParseCompression maps a codec name ("gzip", "zstd", ...) to a Compression.
func ParseCompression(name string) (Compression, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return CompressNone, true
	case "gzip", "gz":
		return CompressGzip, true
	case "zstd", "zst":
		return CompressZstd, true
	case "lz4":
		return CompressLZ4, true
	case "brotli", "br":
		return CompressBrotli, true
	case "snappy", "sz":
		return CompressSnappy, true
	}
	return CompressNone, false
}

// CompressionForName picks a codec from the extension of a file name or object key.
func CompressionForName(name string) Compression {
	switch strings.ToLower(path.Ext(name)) {
	case ".gz", ".gzip":
		return CompressGzip
	case ".zst", ".zstd":
		return CompressZstd
	case ".lz4":
		return CompressLZ4
	case ".br":
		return CompressBrotli
	case ".sz", ".snappy":
		return CompressSnappy
	default:
		return CompressNone
	}
}

type readCloser struct {
	io.Reader
	closers []func() error
}

func (r *readCloser) Close() error {
	var first error
	for _, c := range r.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// wrapReader layers the decompressor for c over rc. Closing the result closes both.
func wrapReader(rc io.ReadCloser, c Compression) (io.ReadCloser, error) {
	switch c {
	case CompressGzip:
		gz, err := gzip.NewReader(rc)
		if err != nil {
			return nil, err
		}
		return &readCloser{Reader: gz, closers: []func() error{gz.Close, rc.Close}}, nil
	case CompressZstd:
		zr, err := zstd.NewReader(rc)
		if err != nil {
			return nil, err
		}
		return &readCloser{Reader: zr, closers: []func() error{func() error { zr.Close(); return nil }, rc.Close}}, nil
	case CompressLZ4:
		return &readCloser{Reader: lz4.NewReader(rc), closers: []func() error{rc.Close}}, nil
	case CompressBrotli:
		return &readCloser{Reader: brotli.NewReader(rc), closers: []func() error{rc.Close}}, nil
	case CompressSnappy:
		return &readCloser{Reader: snappy.NewReader(rc), closers: []func() error{rc.Close}}, nil
	default:
		return rc, nil
	}
}

// NewWriter wraps w with the compressor for c. The caller must Close the result
// to flush it; w itself is left open.
func NewWriter(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case CompressGzip:
		return gzip.NewWriter(w), nil
	case CompressZstd:
		return zstd.NewWriter(w)
	case CompressLZ4:
		return lz4.NewWriter(w), nil
	case CompressBrotli:
		return brotli.NewWriter(w), nil
	case CompressSnappy:
		return snappy.NewBufferedWriter(w), nil
	default:
		return nopWriteCloser{w}, nil
	}
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
