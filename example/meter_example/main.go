package main

import (
	"bytes"
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/joeydtaylor/framefit/pkg/builder"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	rng := rand.New(rand.NewSource(1))
	var stream bytes.Buffer
	for f := 0; f < 2000; f++ {
		samples := make([]builder.SampleRecord, builder.SamplesPerFrame)
		for i := range samples {
			for g := 0; g < builder.GroupCount; g++ {
				for c := 0; c < builder.ChannelsPerGroup; c++ {
					samples[i].Raw[g][c] = uint16(6000 + 40*g + int(rng.ExpFloat64()*15))
				}
			}
		}
		stream.Write(builder.EncodeFrame(uint16(f), samples))
	}

	meter := builder.NewMeter(builder.MeterWithCPUSampleInterval(200 * time.Millisecond))

	dec := builder.NewDecoder(
		builder.DecoderWithSensor(meter.Sensor()),
		builder.DecoderWithProgress(int64(stream.Len()), 100, nil),
	)
	records, err := dec.DecodeAll(ctx, &stream)
	if err != nil {
		fmt.Printf("decode failed: %v\n", err)
		return
	}

	for _, g := range []builder.ChannelGroup{builder.GroupA, builder.GroupB, builder.GroupC, builder.GroupD} {
		an := builder.NewAnalyzer(
			builder.AnalyzerWithConfig(builder.FitConfig{Model: builder.ModelHyperEMG, UseFit: true}),
			builder.AnalyzerWithSensor(meter.Sensor()),
		)
		if _, err := an.Analyze(ctx, records, g); err != nil {
			fmt.Printf("analyze %s failed: %v\n", g, err)
			return
		}
	}

	if err := builder.RenderMeterSnapshot(os.Stdout, meter.Snapshot()); err != nil {
		fmt.Printf("render failed: %v\n", err)
	}
}
