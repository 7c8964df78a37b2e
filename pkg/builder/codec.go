package builder

import (
	"io"

	"github.com/joeydtaylor/framefit/pkg/internal/codec"
	"github.com/joeydtaylor/framefit/pkg/internal/types"
)

// NewRecordEncoder writes sample records as newline delimited JSON.
func NewRecordEncoder(w io.Writer) *codec.RecordEncoder {
	return codec.NewRecordEncoder(w)
}

// NewRecordDecoder reads records written by NewRecordEncoder.
func NewRecordDecoder(r io.Reader) *codec.RecordDecoder {
	return codec.NewRecordDecoder(r)
}

// NewLineEncoder writes one tab separated line of voltages per record for a single group.
func NewLineEncoder(w io.Writer, group ChannelGroup) *codec.LineEncoder {
	return codec.NewLineEncoder(w, group)
}

// EncodeFrame renders up to 15 samples as one uppercase hex frame.
func EncodeFrame(seq uint16, samples []SampleRecord) []byte {
	return codec.EncodeFrame(seq, samples)
}

// DecodeFrame extracts the sample records of one frame window starting at its marker.
func DecodeFrame(frame []byte) []SampleRecord {
	return codec.DecodeFrame(frame, make([]types.SampleRecord, 0, types.SamplesPerFrame))
}
