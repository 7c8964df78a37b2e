package framedecoder

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/joeydtaylor/framefit/pkg/internal/types"
	"github.com/joeydtaylor/framefit/pkg/logschema"
)

// Decode reads r to EOF in chunks, emitting every record in stream order, then
// discards any trailing partial frame. ctx is checked between frames. The only
// errors returned are read errors, emit errors and ctx.Err(); records emitted
// before an error remain valid.
func (d *Decoder) Decode(ctx context.Context, r io.Reader, emit EmitFunc) error {
	if ctx == nil {
		ctx = context.Background()
	}
	d.notifyStart()
	d.NotifyLoggers(types.InfoLevel, "Decode: started",
		logschema.FieldComponent, d.componentMetadata,
		logschema.FieldEvent, "Decode",
	)

	err := d.readAll(ctx, r, emit)
	if err == nil {
		err = d.Close()
	}

	if err != nil {
		d.notifyError(err)
		d.NotifyLoggers(types.ErrorLevel, "Decode: stopped",
			logschema.FieldComponent, d.componentMetadata,
			logschema.FieldEvent, "Decode",
			logschema.FieldResult, "FAILURE",
			logschema.FieldError, err.Error(),
			logschema.FieldFrames, d.stats.Frames,
			logschema.FieldSamples, d.stats.Samples,
		)
		return err
	}

	d.reportProgress(true)
	d.notifyComplete()
	d.NotifyLoggers(types.InfoLevel, "Decode: finished",
		logschema.FieldComponent, d.componentMetadata,
		logschema.FieldEvent, "Decode",
		logschema.FieldResult, "SUCCESS",
		logschema.FieldBytes, d.stats.Bytes,
		logschema.FieldFrames, d.stats.Frames,
		logschema.FieldFramesDropped, d.stats.DroppedFrames,
		logschema.FieldSamples, d.stats.Samples,
	)
	return nil
}

func (d *Decoder) readAll(ctx context.Context, r io.Reader, emit EmitFunc) error {
	buf := make([]byte, d.chunkSize)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, rerr := r.Read(buf)
		if n > 0 {
			if err := d.write(ctx, buf[:n], emit); err != nil {
				return err
			}
		}
		if rerr != nil {
			if errors.Is(rerr, io.EOF) {
				return nil
			}
			return fmt.Errorf("read frame stream: %w", rerr)
		}
	}
}

// DecodeAll decodes r and returns every record.
func (d *Decoder) DecodeAll(ctx context.Context, r io.Reader) ([]types.SampleRecord, error) {
	var out []types.SampleRecord
	err := d.Decode(ctx, r, func(rec types.SampleRecord) error {
		out = append(out, rec)
		return nil
	})
	return out, err
}
