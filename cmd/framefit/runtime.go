package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/joeydtaylor/framefit/pkg/builder"
)

// runtimeDeps carries what every subcommand shares.
type runtimeDeps struct {
	logger builder.Logger
	meter  *builder.Meter
	s3     *s3.Client
}

func newRuntime(ctx context.Context, needS3 bool) (*runtimeDeps, error) {
	opts := []builder.LoggerOption{builder.LoggerWithLevel(logLevel)}
	if devLogs {
		opts = append(opts, builder.LoggerWithDevelopment(true))
	}
	logger := builder.NewLogger(opts...)
	if logFile != "" {
		if err := logger.AddSink("file", builder.SinkConfig{
			Type:   string(builder.FileSink),
			Config: map[string]interface{}{"path": logFile},
		}); err != nil {
			return nil, fmt.Errorf("log file: %w", err)
		}
	}

	rt := &runtimeDeps{
		logger: logger,
		meter:  builder.NewMeter(builder.MeterWithLogger(logger), builder.MeterWithHostStats(showMeter)),
	}

	if needS3 {
		cfg := builder.S3ClientConfigFromEnv()
		if s3Endpoint != "" {
			cfg.Endpoint = s3Endpoint
			cfg.ForcePathStyle = true
		}
		if s3Region != "" {
			cfg.Region = s3Region
		}
		cli, err := builder.NewS3Client(ctx, cfg)
		if err != nil {
			return nil, err
		}
		rt.s3 = cli
	}
	return rt, nil
}

func (rt *runtimeDeps) close() {
	if showMeter {
		snap := rt.meter.Snapshot()
		_ = builder.RenderMeterSnapshot(os.Stderr, snap)
		rt.meter.LogSummary(snap)
	}
	_ = rt.logger.Flush()
}

func usesS3(uris []string) bool {
	for _, u := range uris {
		if strings.HasPrefix(strings.ToLower(u), "s3://") {
			return true
		}
	}
	return false
}

// expandInputs replaces every s3:// URI ending in "/" with the stream objects under it.
func (rt *runtimeDeps) expandInputs(ctx context.Context, uris []string) ([]string, error) {
	out := make([]string, 0, len(uris))
	for _, u := range uris {
		if strings.HasPrefix(strings.ToLower(u), "s3://") && strings.HasSuffix(u, "/") {
			listed, err := builder.S3ListStreams(ctx, rt.s3, u)
			if err != nil {
				return nil, err
			}
			if len(listed) == 0 {
				return nil, fmt.Errorf("no streams under %s", u)
			}
			out = append(out, listed...)
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (rt *runtimeDeps) openInput(ctx context.Context, uri string, compression string) (*builder.Stream, error) {
	var opts []builder.Option[*builder.OpenConfig]
	if rt.s3 != nil {
		opts = append(opts, builder.OpenWithS3Client(rt.s3))
	}
	if compression != "" {
		c, ok := builder.ParseCompression(compression)
		if !ok {
			return nil, fmt.Errorf("unknown compression %q", compression)
		}
		opts = append(opts, builder.OpenWithCompression(c))
	}
	return builder.OpenStream(ctx, uri, opts...)
}

// readRecords replays NDJSON records written by the decode command.
func (rt *runtimeDeps) readRecords(ctx context.Context, uri string, compression string, emit builder.EmitFunc) error {
	stream, err := rt.openInput(ctx, uri, compression)
	if err != nil {
		return err
	}
	defer stream.Close()

	dec := builder.NewRecordDecoder(stream)
	for n := 1; ; n++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		rec, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%s: record %d: %w", stream.Name, n, err)
		}
		if err := emit(rec); err != nil {
			return err
		}
	}
}

// decodeInput streams one input through a fresh decoder.
func (rt *runtimeDeps) decodeInput(ctx context.Context, uri string, compression string, emit builder.EmitFunc) error {
	stream, err := rt.openInput(ctx, uri, compression)
	if err != nil {
		return err
	}
	defer stream.Close()

	dec := builder.NewDecoder(
		builder.DecoderWithLogger(rt.logger),
		builder.DecoderWithSensor(rt.meter.Sensor()),
		builder.DecoderWithProgress(stream.Size, 256, nil),
	)
	dec.SetComponentMetadata(stream.Name, dec.GetComponentMetadata().ID)
	if err := dec.Decode(ctx, stream, emit); err != nil {
		return fmt.Errorf("%s: %w", stream.Name, err)
	}
	return nil
}
