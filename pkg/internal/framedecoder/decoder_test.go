package framedecoder_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync/atomic"
	"testing"
	"testing/iotest"

	"github.com/joeydtaylor/framefit/pkg/internal/codec"
	"github.com/joeydtaylor/framefit/pkg/internal/framedecoder"
	"github.com/joeydtaylor/framefit/pkg/internal/sensor"
	"github.com/joeydtaylor/framefit/pkg/internal/types"
)

func makeFrame(seq uint16) []byte {
	samples := make([]types.SampleRecord, types.SamplesPerFrame)
	for i := range samples {
		for g := 0; g < types.GroupCount; g++ {
			for c := 0; c < types.ChannelsPerGroup; c++ {
				samples[i].Raw[g][c] = uint16(int(seq)*7+100*g+c+i) & 0x3fff
			}
		}
	}
	return codec.EncodeFrame(seq, samples)
}

func collect(t *testing.T, d *framedecoder.Decoder, r io.Reader) []types.SampleRecord {
	t.Helper()
	recs, err := d.DecodeAll(context.Background(), r)
	if err != nil {
		t.Fatalf("DecodeAll() error: %v", err)
	}
	return recs
}

func TestDecodeFramesWithNoise(t *testing.T) {
	var stream bytes.Buffer
	stream.WriteString("garbage xyz 12\r\n")
	for seq := uint16(1); seq <= 3; seq++ {
		f := makeFrame(seq)
		// Interleave whitespace inside the frame; it must be filtered out.
		stream.Write(f[:100])
		stream.WriteString(" \n\t")
		stream.Write(f[100:])
		stream.WriteString("\r\n--")
	}

	recs := collect(t, framedecoder.NewDecoder(), &stream)
	if len(recs) != 3*types.SamplesPerFrame {
		t.Fatalf("expected %d records, got %d", 3*types.SamplesPerFrame, len(recs))
	}
	for i, rec := range recs {
		wantSeq := uint16(i/types.SamplesPerFrame + 1)
		if rec.PacketSequence != wantSeq {
			t.Fatalf("record %d: sequence %d, want %d", i, rec.PacketSequence, wantSeq)
		}
		if rec.SampleIndex != i%types.SamplesPerFrame+1 {
			t.Fatalf("record %d: sample index %d", i, rec.SampleIndex)
		}
		for g := range rec.Raw {
			for c, v := range rec.Raw[g] {
				if rec.Voltage[g][c] != float64(v)*types.VoltsPerCount {
					t.Fatalf("record %d: voltage mismatch", i)
				}
			}
		}
	}
}

func TestDecodeMatchesExtractor(t *testing.T) {
	f := makeFrame(9)
	want := codec.DecodeFrame(f, nil)
	got := collect(t, framedecoder.NewDecoder(), bytes.NewReader(f))
	if len(got) != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("record %d differs from direct extraction", i)
		}
	}
}

func TestTruncatedFrameDropped(t *testing.T) {
	var dropped int64
	s := sensor.NewSensor(sensor.WithOnFrameDroppedFunc(func(types.ComponentMetadata, int) {
		atomic.AddInt64(&dropped, 1)
	}))

	stream := append(makeFrame(1), makeFrame(2)[:types.FrameHexLen-10]...)
	d := framedecoder.NewDecoder(framedecoder.WithSensor(s))
	recs := collect(t, d, bytes.NewReader(stream))

	if len(recs) != types.SamplesPerFrame {
		t.Fatalf("expected one frame of records, got %d", len(recs))
	}
	if dropped != 1 || d.Stats().DroppedFrames != 1 {
		t.Fatalf("expected one dropped frame, got sensor=%d stats=%d", dropped, d.Stats().DroppedFrames)
	}
	if d.Pending() != 0 {
		t.Fatalf("expected empty accumulator after Close, got %d", d.Pending())
	}
}

func TestLowercaseMarkerDecodesIdentically(t *testing.T) {
	f := makeFrame(5)
	upper := collect(t, framedecoder.NewDecoder(), bytes.NewReader(f))
	lower := collect(t, framedecoder.NewDecoder(), bytes.NewReader(bytes.ToLower(f)))
	if len(upper) != len(lower) || len(upper) == 0 {
		t.Fatalf("record counts differ: %d vs %d", len(upper), len(lower))
	}
	for i := range upper {
		if upper[i] != lower[i] {
			t.Fatalf("record %d differs between cases", i)
		}
	}
}

func TestChunkBoundaries(t *testing.T) {
	var stream bytes.Buffer
	stream.WriteString("zzE2")
	for seq := uint16(1); seq <= 4; seq++ {
		stream.Write(makeFrame(seq))
		stream.WriteString("e")
	}
	data := stream.Bytes()
	want := collect(t, framedecoder.NewDecoder(), bytes.NewReader(data))

	if len(want) != 4*types.SamplesPerFrame {
		t.Fatalf("expected %d records, got %d", 4*types.SamplesPerFrame, len(want))
	}

	oneByte := collect(t, framedecoder.NewDecoder(), iotest.OneByteReader(bytes.NewReader(data)))
	if len(oneByte) != len(want) {
		t.Fatalf("one-byte reads: expected %d records, got %d", len(want), len(oneByte))
	}

	for _, size := range []int{2, 3, 5, 7, 4096, types.FrameHexLen - 1, types.FrameHexLen + 1} {
		got := collect(t, framedecoder.NewDecoder(framedecoder.WithChunkSize(size)), bytes.NewReader(data))
		if len(got) != len(want) {
			t.Fatalf("chunk %d: expected %d records, got %d", size, len(want), len(got))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("chunk %d: record %d differs", size, i)
			}
		}
	}
}

func TestMarkerSplitAcrossWrites(t *testing.T) {
	f := makeFrame(77)
	d := framedecoder.NewDecoder()

	var n int
	emit := func(types.SampleRecord) error { n++; return nil }
	parts := [][]byte{[]byte("noise E"), f[1:3], []byte("\n"), f[3:2000], f[2000:]}
	for _, p := range parts {
		if err := d.Write(p, emit); err != nil {
			t.Fatalf("Write() error: %v", err)
		}
	}
	if err := d.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if n != types.SamplesPerFrame {
		t.Fatalf("expected %d records, got %d", types.SamplesPerFrame, n)
	}
}

func TestAccumulatorBounded(t *testing.T) {
	d := framedecoder.NewDecoder()
	noise := []byte(strings.Repeat("0123456789ABCDEF", 1024))
	for i := 0; i < 16; i++ {
		if err := d.Write(noise, nil); err != nil {
			t.Fatalf("Write() error: %v", err)
		}
		if d.Pending() > 3 {
			t.Fatalf("markerless input must not accumulate, pending=%d", d.Pending())
		}
	}

	partial := makeFrame(1)[:3000]
	if err := d.Write(partial, nil); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if d.Pending() > types.FrameHexLen {
		t.Fatalf("pending %d exceeds one frame", d.Pending())
	}
}

func TestNoFramesNoRecords(t *testing.T) {
	for _, input := range []string{"", "E22", "hello world", strings.Repeat("F", 10000)} {
		recs := collect(t, framedecoder.NewDecoder(), strings.NewReader(input))
		if len(recs) != 0 {
			t.Fatalf("input %q produced %d records", input[:min(len(input), 10)], len(recs))
		}
	}
}

func TestEmitErrorStopsDecode(t *testing.T) {
	stream := append(makeFrame(1), makeFrame(2)...)
	stop := errors.New("stop")

	var n int
	err := framedecoder.NewDecoder().Decode(context.Background(), bytes.NewReader(stream), func(types.SampleRecord) error {
		n++
		if n == 3 {
			return stop
		}
		return nil
	})
	if !errors.Is(err, stop) {
		t.Fatalf("expected emit error, got %v", err)
	}
	if n != 3 {
		t.Fatalf("expected decoding to stop after 3 records, got %d", n)
	}
}

func TestDecodeCancelled(t *testing.T) {
	var stream bytes.Buffer
	for seq := uint16(0); seq < 20; seq++ {
		stream.Write(makeFrame(seq))
	}

	ctx, cancel := context.WithCancel(context.Background())
	var n int
	err := framedecoder.NewDecoder().Decode(ctx, &stream, func(types.SampleRecord) error {
		n++
		if n == types.SamplesPerFrame*2 {
			cancel()
		}
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if n != types.SamplesPerFrame*2 {
		t.Fatalf("expected decoding to stop at the next frame boundary, got %d records", n)
	}
}

func TestReadErrorPropagates(t *testing.T) {
	boom := errors.New("disk gone")
	r := io.MultiReader(bytes.NewReader(makeFrame(1)), iotest.ErrReader(boom))

	var n int
	err := framedecoder.NewDecoder().Decode(context.Background(), r, func(types.SampleRecord) error {
		n++
		return nil
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected read error, got %v", err)
	}
	if n != types.SamplesPerFrame {
		t.Fatalf("records before the error must be emitted, got %d", n)
	}
}

func TestProgressReported(t *testing.T) {
	var stream bytes.Buffer
	for seq := uint16(0); seq < 10; seq++ {
		stream.Write(makeFrame(seq))
	}
	total := int64(stream.Len())

	var fractions []float64
	d := framedecoder.NewDecoder(
		framedecoder.WithChunkSize(types.FrameHexLen),
		framedecoder.WithProgress(total, 2, func(f float64) { fractions = append(fractions, f) }),
	)
	collect(t, d, &stream)

	if len(fractions) != 6 {
		t.Fatalf("expected 5 periodic reports and a final one, got %v", fractions)
	}
	for i := 1; i < len(fractions); i++ {
		if fractions[i] < fractions[i-1] {
			t.Fatalf("progress went backwards: %v", fractions)
		}
	}
	if fractions[len(fractions)-1] != 1 {
		t.Fatalf("expected final progress 1, got %v", fractions[len(fractions)-1])
	}
	if st := d.Stats(); st.Frames != 10 || st.Samples != 150 || st.Bytes != total {
		t.Fatalf("unexpected stats %+v", st)
	}
}
