// Package source opens hex frame streams from local files, S3 objects and Kafka
// topics, transparently removing any compression layer.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/joeydtaylor/framefit/pkg/internal/types"
)

// ErrUnsupportedScheme is returned by Open for URIs it cannot read.
var ErrUnsupportedScheme = errors.New("source: unsupported uri scheme")

// Stream is an opened input. Size is the number of bytes the reader will yield,
// or -1 when unknown (compressed or unsized inputs).
type Stream struct {
	io.ReadCloser
	Name        string
	Size        int64
	Compression Compression
}

// OpenConfig collects the options of Open.
type OpenConfig struct {
	S3Client    *s3.Client
	Compression *Compression
}

// WithS3Client supplies the client used for s3:// URIs.
func WithS3Client(cli *s3.Client) types.Option[*OpenConfig] {
	return func(c *OpenConfig) { c.S3Client = cli }
}

// WithCompression overrides extension-based codec detection.
func WithCompression(comp Compression) types.Option[*OpenConfig] {
	return func(c *OpenConfig) { c.Compression = &comp }
}

// Open resolves uri to a readable stream. Accepted forms are a plain path,
// file:///path and s3://bucket/key; "-" reads standard input.
func Open(ctx context.Context, uri string, options ...types.Option[*OpenConfig]) (*Stream, error) {
	cfg := &OpenConfig{}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}

	if uri == "-" {
		return finish(&Stream{ReadCloser: io.NopCloser(os.Stdin), Name: "stdin", Size: -1}, cfg)
	}

	scheme, _, hasScheme := strings.Cut(uri, "://")
	if !hasScheme {
		return openFile(uri, cfg)
	}
	switch strings.ToLower(scheme) {
	case "file":
		u, err := url.Parse(uri)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", uri, err)
		}
		return openFile(u.Path, cfg)
	case "s3":
		bucket, key, err := ParseS3URI(uri)
		if err != nil {
			return nil, err
		}
		return openS3(ctx, bucket, key, cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, scheme)
	}
}

func openFile(path string, cfg *OpenConfig) (*Stream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	size := int64(-1)
	if st, err := f.Stat(); err == nil && st.Mode().IsRegular() {
		size = st.Size()
	}
	return finish(&Stream{ReadCloser: f, Name: path, Size: size}, cfg)
}

// finish applies the configured or detected decompressor.
func finish(s *Stream, cfg *OpenConfig) (*Stream, error) {
	comp := CompressionForName(s.Name)
	if cfg.Compression != nil {
		comp = *cfg.Compression
	}
	if comp == CompressNone {
		return s, nil
	}

	rc, err := wrapReader(s.ReadCloser, comp)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("open %s stream %s: %w", comp, s.Name, err)
	}
	s.ReadCloser = rc
	s.Size = -1
	s.Compression = comp
	return s, nil
}
