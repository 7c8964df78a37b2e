// Package framedecoder reassembles fixed-size hex frames from an arbitrarily
// chunked, noisy ASCII stream and hands each complete frame to the sample
// extractor.
//
// Non-hex bytes are filtered before accumulation. A frame starts at the
// case-insensitive marker E225 and spans exactly types.FrameHexLen characters.
// Truncated frames are discarded at end of stream; they are never errors.
package framedecoder

import (
	"sync"

	"github.com/joeydtaylor/framefit/pkg/internal/types"
	"github.com/joeydtaylor/framefit/pkg/internal/utils"
)

const (
	// DefaultChunkSize is the read size used by Decode.
	DefaultChunkSize = 64 * 1024
	// markerTail is the longest marker prefix that can straddle a chunk boundary.
	markerTail = len(types.FrameMarker) - 1
)

// EmitFunc receives each decoded record in stream order. A non-nil error stops decoding.
type EmitFunc func(types.SampleRecord) error

// Stats reports the totals of one decoder.
type Stats struct {
	Bytes         int64 `json:"bytes"`
	HexChars      int64 `json:"hexChars"`
	Frames        int64 `json:"frames"`
	Samples       int64 `json:"samples"`
	DroppedFrames int64 `json:"droppedFrames"`
}

// Decoder is a streaming frame decoder. It is single-threaded: Write, Close and
// Decode must not be called concurrently.
type Decoder struct {
	componentMetadata types.ComponentMetadata

	loggers     []types.Logger
	loggersLock sync.Mutex
	sensors     []types.Sensor

	chunkSize     int
	progressTotal int64
	progressEvery int
	progressFn    types.ProgressFunc

	pending []byte
	records []types.SampleRecord
	stats   Stats
}

// NewDecoder constructs a Decoder and applies options.
func NewDecoder(options ...types.Option[*Decoder]) *Decoder {
	d := &Decoder{
		componentMetadata: types.ComponentMetadata{
			Type: "FRAME_DECODER",
			ID:   utils.GenerateUniqueHash(),
		},
		chunkSize: DefaultChunkSize,
		pending:   make([]byte, 0, types.FrameHexLen*2),
		records:   make([]types.SampleRecord, 0, types.SamplesPerFrame),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(d)
	}
	return d
}

// GetComponentMetadata returns the decoder metadata.
func (d *Decoder) GetComponentMetadata() types.ComponentMetadata {
	return d.componentMetadata
}

// SetComponentMetadata sets the decoder name and id.
func (d *Decoder) SetComponentMetadata(name string, id string) {
	d.componentMetadata = types.ComponentMetadata{Name: name, ID: id, Type: d.componentMetadata.Type}
}

// ConnectLogger registers loggers for the decoder.
func (d *Decoder) ConnectLogger(loggers ...types.Logger) {
	d.loggersLock.Lock()
	defer d.loggersLock.Unlock()
	for _, l := range loggers {
		if l != nil {
			d.loggers = append(d.loggers, l)
		}
	}
}

// ConnectSensor registers sensors for the decoder.
func (d *Decoder) ConnectSensor(sensors ...types.Sensor) {
	for _, s := range sensors {
		if s != nil {
			d.sensors = append(d.sensors, s)
		}
	}
}

// Stats returns the running totals.
func (d *Decoder) Stats() Stats {
	return d.stats
}

// Pending returns the number of hex characters held for the next frame.
func (d *Decoder) Pending() int {
	return len(d.pending)
}
