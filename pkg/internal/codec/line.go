package codec

import (
	"bufio"
	"io"
	"strconv"

	"github.com/joeydtaylor/framefit/pkg/internal/types"
)

// LineEncoder writes one tab-separated row per record: sequence, sample index and
// the 16 millivolt values of a single layer.
type LineEncoder struct {
	w     *bufio.Writer
	group types.ChannelGroup
	buf   []byte
}

func NewLineEncoder(w io.Writer, group types.ChannelGroup) *LineEncoder {
	return &LineEncoder{w: bufio.NewWriter(w), group: group}
}

// Encode converts rec into a line of text.
func (e *LineEncoder) Encode(rec types.SampleRecord) error {
	b := e.buf[:0]
	b = strconv.AppendUint(b, uint64(rec.PacketSequence), 10)
	b = append(b, '\t')
	b = strconv.AppendInt(b, int64(rec.SampleIndex), 10)
	for _, v := range rec.Voltage[e.group] {
		b = append(b, '\t')
		b = strconv.AppendFloat(b, v, 'f', 3, 64)
	}
	b = append(b, '\n')
	e.buf = b
	_, err := e.w.Write(b)
	return err
}

// Flush writes any buffered rows to the underlying writer.
func (e *LineEncoder) Flush() error {
	return e.w.Flush()
}
