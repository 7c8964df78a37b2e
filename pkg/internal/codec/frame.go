package codec

import (
	"encoding/binary"

	"github.com/joeydtaylor/framefit/pkg/internal/types"
)

// Frame layout, in hex characters from the start of the marker.
const (
	sequenceOffset = 32
	blockABOffset  = 18
	blockCDOffset  = 978
	sampleStride   = 128
	blockHexLen    = 128
	blockBytes     = blockHexLen / 2
	groupHalf      = 32
)

// Sequence returns the packet sequence number carried at hex offset 32..36.
func Sequence(frame []byte) uint16 {
	if len(frame) < sequenceOffset+4 {
		return 0
	}
	return uint16(HexByte(frame[32], frame[33]))<<8 | uint16(HexByte(frame[34], frame[35]))
}

// DecodeFrame appends the sample records carried by one hex frame window to dst
// and returns the extended slice. A sample whose blocks run past the end of the
// window is skipped.
func DecodeFrame(frame []byte, dst []types.SampleRecord) []types.SampleRecord {
	seq := Sequence(frame)

	var ab, cd [blockBytes]byte
	for i := 0; i < types.SamplesPerFrame; i++ {
		offAB := blockABOffset + sampleStride*i
		offCD := blockCDOffset + sampleStride*i
		if offAB+blockHexLen > len(frame) || offCD+blockHexLen > len(frame) {
			continue
		}
		decodeHex(ab[:], frame[offAB:offAB+blockHexLen])
		decodeHex(cd[:], frame[offCD:offCD+blockHexLen])

		rec := types.SampleRecord{PacketSequence: seq, SampleIndex: i + 1}
		for j := 0; j < types.ChannelsPerGroup; j++ {
			rec.Raw[types.GroupA][j] = binary.BigEndian.Uint16(ab[2*j:])
			rec.Raw[types.GroupB][j] = binary.BigEndian.Uint16(ab[2*j+groupHalf:])
			rec.Raw[types.GroupC][j] = binary.BigEndian.Uint16(cd[2*j:])
			rec.Raw[types.GroupD][j] = binary.BigEndian.Uint16(cd[2*j+groupHalf:])
		}
		for g := range rec.Raw {
			for j, v := range rec.Raw[g] {
				rec.Voltage[g][j] = float64(v) * types.VoltsPerCount
			}
		}
		dst = append(dst, rec)
	}
	return dst
}

const upperHex = "0123456789ABCDEF"

// EncodeFrame renders samples as one uppercase hex frame window carrying seq.
// At most SamplesPerFrame samples are written, in order, into their AB and CD
// blocks. The blocks of late AB samples share bytes with early CD samples; where
// they overlap the CD write wins. The sequence field shares bytes with channels 3
// and 4 of group A in the first sample and is written last, so it always survives.
func EncodeFrame(seq uint16, samples []types.SampleRecord) []byte {
	var raw [types.FrameBytes]byte
	raw[0], raw[1] = 0xE2, 0x25

	n := min(len(samples), types.SamplesPerFrame)
	for i := 0; i < n; i++ {
		ab := raw[(blockABOffset+sampleStride*i)/2:]
		for j := 0; j < types.ChannelsPerGroup; j++ {
			binary.BigEndian.PutUint16(ab[2*j:], samples[i].Raw[types.GroupA][j])
			binary.BigEndian.PutUint16(ab[2*j+groupHalf:], samples[i].Raw[types.GroupB][j])
		}
	}
	for i := 0; i < n; i++ {
		cd := raw[(blockCDOffset+sampleStride*i)/2:]
		for j := 0; j < types.ChannelsPerGroup; j++ {
			binary.BigEndian.PutUint16(cd[2*j:], samples[i].Raw[types.GroupC][j])
			binary.BigEndian.PutUint16(cd[2*j+groupHalf:], samples[i].Raw[types.GroupD][j])
		}
	}
	binary.BigEndian.PutUint16(raw[sequenceOffset/2:], seq)

	out := make([]byte, types.FrameHexLen)
	for i, b := range raw {
		out[2*i] = upperHex[b>>4]
		out[2*i+1] = upperHex[b&0x0f]
	}
	return out
}
