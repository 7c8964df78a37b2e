package builder

import (
	"context"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/joeydtaylor/framefit/pkg/internal/source"
	"github.com/joeydtaylor/framefit/pkg/internal/types"
	"github.com/segmentio/kafka-go"
)

type Stream = source.Stream

type OpenConfig = source.OpenConfig

type Compression = source.Compression

type KafkaSource = source.KafkaSource

const (
	CompressNone   = source.CompressNone
	CompressGzip   = source.CompressGzip
	CompressZstd   = source.CompressZstd
	CompressLZ4    = source.CompressLZ4
	CompressBrotli = source.CompressBrotli
	CompressSnappy = source.CompressSnappy
)

// ErrUnsupportedScheme is returned by OpenStream for URIs it cannot read.
var ErrUnsupportedScheme = source.ErrUnsupportedScheme

// OpenStream opens a path, file:// URI, s3:// URI or "-" for stdin, removing any compression layer.
func OpenStream(ctx context.Context, uri string, options ...types.Option[*source.OpenConfig]) (*source.Stream, error) {
	return source.Open(ctx, uri, options...)
}

func OpenWithS3Client(cli *s3.Client) types.Option[*source.OpenConfig] {
	return source.WithS3Client(cli)
}

// OpenWithCompression overrides detection by file extension.
func OpenWithCompression(c Compression) types.Option[*source.OpenConfig] {
	return source.WithCompression(c)
}

// ParseCompression maps "gzip", "zstd", "lz4", "brotli", "snappy" or "none" to a Compression.
func ParseCompression(name string) (Compression, bool) {
	return source.ParseCompression(name)
}

// NewCompressedWriter wraps w so that bytes written are compressed with c.
func NewCompressedWriter(w io.Writer, c Compression) (io.WriteCloser, error) {
	return source.NewWriter(w, c)
}

// NewKafkaSource consumes hex stream chunks from a topic.
func NewKafkaSource(options ...types.Option[*source.KafkaSource]) *source.KafkaSource {
	return source.NewKafkaSource(options...)
}

func KafkaSourceWithBrokers(brokers ...string) types.Option[*source.KafkaSource] {
	return source.KafkaWithBrokers(brokers...)
}

func KafkaSourceWithTopic(topic string) types.Option[*source.KafkaSource] {
	return source.KafkaWithTopic(topic)
}

func KafkaSourceWithGroupID(id string) types.Option[*source.KafkaSource] {
	return source.KafkaWithGroupID(id)
}

// KafkaSourceWithStartAt selects "earliest" or "latest" when the group has no committed offset.
func KafkaSourceWithStartAt(at string) types.Option[*source.KafkaSource] {
	return source.KafkaWithStartAt(at)
}

func KafkaSourceWithMaxWait(d time.Duration) types.Option[*source.KafkaSource] {
	return source.KafkaWithMaxWait(d)
}

// KafkaSourceWithReader supplies a preconfigured reader instead of brokers and topic.
func KafkaSourceWithReader(r *kafka.Reader) types.Option[*source.KafkaSource] {
	return source.KafkaWithReader(r)
}

func KafkaSourceWithLogger(l ...types.Logger) types.Option[*source.KafkaSource] {
	return source.KafkaWithLogger(l...)
}
