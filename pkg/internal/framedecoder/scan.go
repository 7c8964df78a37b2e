package framedecoder

import (
	"context"

	"github.com/joeydtaylor/framefit/pkg/internal/codec"
	"github.com/joeydtaylor/framefit/pkg/internal/types"
)

// Write filters chunk down to hex digits, appends it to the accumulator and emits
// the records of every complete frame now available.
func (d *Decoder) Write(chunk []byte, emit EmitFunc) error {
	return d.write(context.Background(), chunk, emit)
}

// Close discards any partial frame left in the accumulator. The decoder can be
// reused afterwards.
func (d *Decoder) Close() error {
	if n := len(d.pending); n > 0 {
		if indexMarker(d.pending) == 0 {
			d.stats.DroppedFrames++
			d.notifyDropped(n)
		}
		d.pending = d.pending[:0]
	}
	return nil
}

func (d *Decoder) write(ctx context.Context, chunk []byte, emit EmitFunc) error {
	d.stats.Bytes += int64(len(chunk))
	before := len(d.pending)
	for _, c := range chunk {
		if codec.IsHexDigit(c) {
			d.pending = append(d.pending, c)
		}
	}
	d.stats.HexChars += int64(len(d.pending) - before)
	return d.scan(ctx, emit)
}

// scan consumes every complete frame in the accumulator. On return the
// accumulator holds either a marker followed by fewer than FrameHexLen
// characters, or at most markerTail characters with no marker.
func (d *Decoder) scan(ctx context.Context, emit EmitFunc) error {
	cursor := 0
	defer func() { d.compact(cursor) }()

	for {
		h := indexMarker(d.pending[cursor:])
		if h < 0 {
			if keep := len(d.pending) - cursor; keep > markerTail {
				cursor = len(d.pending) - markerTail
			}
			return nil
		}
		cursor += h
		if len(d.pending)-cursor < types.FrameHexLen {
			return nil
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		frame := d.pending[cursor : cursor+types.FrameHexLen]
		d.records = codec.DecodeFrame(frame, d.records[:0])
		cursor += types.FrameHexLen

		if err := d.deliver(codec.Sequence(frame), emit); err != nil {
			return err
		}
	}
}

func (d *Decoder) deliver(seq uint16, emit EmitFunc) error {
	d.stats.Frames++
	d.notifyFrame(seq)

	for _, rec := range d.records {
		d.stats.Samples++
		d.notifySample(rec)
		if emit != nil {
			if err := emit(rec); err != nil {
				return err
			}
		}
	}

	if d.progressEvery > 0 && d.stats.Frames%int64(d.progressEvery) == 0 {
		d.reportProgress(false)
	}
	return nil
}

func (d *Decoder) compact(cursor int) {
	if cursor == 0 {
		return
	}
	n := copy(d.pending, d.pending[cursor:])
	d.pending = d.pending[:n]
}

// indexMarker returns the offset of the first case-insensitive frame marker in b, or -1.
func indexMarker(b []byte) int {
	for i := 0; i+len(types.FrameMarker) <= len(b); i++ {
		if (b[i] == 'E' || b[i] == 'e') && b[i+1] == '2' && b[i+2] == '2' && b[i+3] == '5' {
			return i
		}
	}
	return -1
}
