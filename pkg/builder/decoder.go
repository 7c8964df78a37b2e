package builder

import (
	"github.com/joeydtaylor/framefit/pkg/internal/framedecoder"
	"github.com/joeydtaylor/framefit/pkg/internal/types"
)

type Decoder = framedecoder.Decoder

type DecoderStats = framedecoder.Stats

type EmitFunc = framedecoder.EmitFunc

// NewDecoder creates a streaming frame decoder.
func NewDecoder(options ...types.Option[*framedecoder.Decoder]) *framedecoder.Decoder {
	return framedecoder.NewDecoder(options...)
}

func DecoderWithLogger(l ...types.Logger) types.Option[*framedecoder.Decoder] {
	return framedecoder.WithLogger(l...)
}

func DecoderWithSensor(s ...types.Sensor) types.Option[*framedecoder.Decoder] {
	return framedecoder.WithSensor(s...)
}

// DecoderWithProgress reports the consumed fraction of total bytes every n frames.
func DecoderWithProgress(total int64, every int, fn ProgressFunc) types.Option[*framedecoder.Decoder] {
	return framedecoder.WithProgress(total, every, fn)
}

// DecoderWithChunkSize sets the read size used by Decode.
func DecoderWithChunkSize(n int) types.Option[*framedecoder.Decoder] {
	return framedecoder.WithChunkSize(n)
}

func DecoderWithComponentMetadata(name string, id string) types.Option[*framedecoder.Decoder] {
	return framedecoder.WithComponentMetadata(name, id)
}
