package framedecoder

import "github.com/joeydtaylor/framefit/pkg/internal/types"

// WithLogger registers loggers for the decoder.
func WithLogger(l ...types.Logger) types.Option[*Decoder] {
	return func(d *Decoder) {
		d.ConnectLogger(l...)
	}
}

// WithSensor registers sensors for the decoder.
func WithSensor(s ...types.Sensor) types.Option[*Decoder] {
	return func(d *Decoder) {
		d.ConnectSensor(s...)
	}
}

// WithProgress reports bytesRead/total to fn after every `every` frames and once
// when Decode finishes. total <= 0 disables the fraction.
func WithProgress(total int64, every int, fn types.ProgressFunc) types.Option[*Decoder] {
	return func(d *Decoder) {
		if every <= 0 {
			every = 1
		}
		d.progressTotal = total
		d.progressEvery = every
		d.progressFn = fn
	}
}

// WithChunkSize sets the read size used by Decode.
func WithChunkSize(n int) types.Option[*Decoder] {
	return func(d *Decoder) {
		if n > 0 {
			d.chunkSize = n
		}
	}
}

// WithComponentMetadata sets the decoder name and id.
func WithComponentMetadata(name string, id string) types.Option[*Decoder] {
	return func(d *Decoder) {
		d.SetComponentMetadata(name, id)
	}
}
