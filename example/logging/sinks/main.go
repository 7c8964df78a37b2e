package main

import (
	"bytes"
	"context"
	"fmt"

	"github.com/joeydtaylor/framefit/pkg/builder"
)

func main() {
	ctx := context.Background()

	logger := builder.NewLogger(builder.LoggerWithDevelopment(true), builder.LoggerWithLevel("debug"))
	defer logger.Flush()

	// Add a file sink
	fileSinkConfig := builder.SinkConfig{
		Type: string(builder.FileSink),
		Config: map[string]interface{}{
			"path": "logs/framefit.log",
		},
	}
	if err := logger.AddSink("fileSink", fileSinkConfig); err != nil {
		fmt.Printf("Failed to add file sink: %v\n", err)
		return
	}

	var stream bytes.Buffer
	for f := 0; f < 20; f++ {
		samples := make([]builder.SampleRecord, builder.SamplesPerFrame)
		for i := range samples {
			for c := 0; c < builder.ChannelsPerGroup; c++ {
				samples[i].Raw[builder.GroupA][c] = uint16(1200 + c + (i*7+f)%11)
			}
		}
		stream.Write(builder.EncodeFrame(uint16(f), samples))
	}

	dec := builder.NewDecoder(builder.DecoderWithLogger(logger))
	records, err := dec.DecodeAll(ctx, &stream)
	if err != nil {
		return
	}

	an := builder.NewAnalyzer(
		builder.AnalyzerWithLogger(logger),
		builder.AnalyzerWithFitter(builder.NewFitter(builder.FitterWithLogger(logger))),
		builder.AnalyzerWithConfig(builder.FitConfig{
			Model:     builder.ModelGaussian,
			UseFit:    true,
			Threshold: builder.ThresholdConfig{Enabled: true, KFactor: 1},
		}),
	)
	if _, err := an.Analyze(ctx, records, builder.GroupA); err != nil {
		return
	}

	sinks, _ := logger.ListSinks()
	fmt.Printf("logged to %v\n", sinks)
}
