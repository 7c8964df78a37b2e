package main

import (
	"bytes"
	"context"
	"fmt"
	"math/rand"

	"github.com/joeydtaylor/framefit/pkg/builder"
)

// capture builds a synthetic hex stream with serial noise between frames.
func capture(frames int) []byte {
	rng := rand.New(rand.NewSource(7))
	var buf bytes.Buffer
	for f := 0; f < frames; f++ {
		samples := make([]builder.SampleRecord, builder.SamplesPerFrame)
		for i := range samples {
			for g := 0; g < builder.GroupCount; g++ {
				for c := 0; c < builder.ChannelsPerGroup; c++ {
					samples[i].Raw[g][c] = uint16(4000 + 100*c + int(rng.NormFloat64()*6))
				}
			}
		}
		buf.Write(builder.EncodeFrame(uint16(f), samples))
		buf.WriteString("\r\nOK\r\n")
	}
	// Truncated tail, reported through OnFrameDropped.
	buf.WriteString("E2250001")
	return buf.Bytes()
}

func main() {
	ctx := context.Background()

	sensor := builder.NewSensor(
		builder.SensorWithOnStartFunc(func(c builder.ComponentMetadata) { fmt.Printf("%s started\n", c.Type) }),
		builder.SensorWithOnFrameDecodedFunc(func(c builder.ComponentMetadata, seq uint16) {
			if seq%50 == 0 {
				fmt.Printf("frame %d decoded\n", seq)
			}
		}),
		builder.SensorWithOnFrameDroppedFunc(func(c builder.ComponentMetadata, pending int) {
			fmt.Printf("dropped partial frame (%d chars)\n", pending)
		}),
		builder.SensorWithOnFitCompleteFunc(func(c builder.ComponentMetadata, channel int, res builder.FitResult) {
			fmt.Printf("channel %2d: centroid %.2f width %.2f (%d iterations)\n", channel, res.Centroid, res.Width, res.Iterations)
		}),
		builder.SensorWithOnFitFailedFunc(func(c builder.ComponentMetadata, channel int) {
			fmt.Printf("channel %2d: fit not possible\n", channel)
		}),
		builder.SensorWithOnCompleteFunc(func(c builder.ComponentMetadata) { fmt.Printf("%s complete\n", c.Type) }),
	)

	dec := builder.NewDecoder(builder.DecoderWithSensor(sensor))
	records, err := dec.DecodeAll(ctx, bytes.NewReader(capture(200)))
	if err != nil {
		fmt.Printf("decode failed: %v\n", err)
		return
	}
	fmt.Printf("%d records\n", len(records))

	an := builder.NewAnalyzer(
		builder.AnalyzerWithConfig(builder.FitConfig{Model: builder.ModelGaussian, UseFit: true}),
		builder.AnalyzerWithSensor(sensor),
	)
	if _, err := an.Analyze(ctx, records, builder.GroupD); err != nil {
		fmt.Printf("analyze failed: %v\n", err)
	}
}
