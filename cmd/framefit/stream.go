package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joeydtaylor/framefit/pkg/builder"
	"github.com/spf13/cobra"
)

type streamFlags struct {
	brokers string
	topic   string
	groupID string
	startAt string
	maxWait time.Duration
	output  string
}

func newStreamCmd() *cobra.Command {
	f := &streamFlags{}
	cmd := &cobra.Command{
		Use:   "stream",
		Short: "Decode a live hex stream from a Kafka topic",
		Long: `Stream consumes message values from a Kafka topic as consecutive chunks
of one hex stream and writes each decoded sample record as NDJSON until
interrupted. Frames may span message boundaries.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStream(cmd, f)
		},
	}
	cmd.Flags().StringVar(&f.brokers, "brokers", builder.EnvOr("KAFKA_BROKERS", "127.0.0.1:19092"), "comma separated broker list")
	cmd.Flags().StringVar(&f.topic, "topic", builder.EnvOr("FRAMEFIT_KAFKA_TOPIC", ""), "topic carrying the hex stream")
	cmd.Flags().StringVar(&f.groupID, "group-id", builder.EnvOr("FRAMEFIT_KAFKA_GROUP", ""), "consumer group; offsets are committed when set")
	cmd.Flags().StringVar(&f.startAt, "start-at", "earliest", "offset without a committed position (earliest, latest)")
	cmd.Flags().DurationVar(&f.maxWait, "max-wait", time.Second, "longest wait for a fetch batch")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (default: stdout)")
	return cmd
}

func runStream(cmd *cobra.Command, f *streamFlags) error {
	ctx := cmd.Context()
	if f.topic == "" {
		return errors.New("--topic is required")
	}

	rt, err := newRuntime(ctx, false)
	if err != nil {
		return err
	}
	defer rt.close()

	out, closeOut, err := openOutput(f.output, "")
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(out)
	enc := builder.NewRecordEncoder(bw)

	dec := builder.NewDecoder(
		builder.DecoderWithLogger(rt.logger),
		builder.DecoderWithSensor(rt.meter.Sensor()),
	)
	dec.SetComponentMetadata("kafka:"+f.topic, dec.GetComponentMetadata().ID)

	src := builder.NewKafkaSource(
		builder.KafkaSourceWithBrokers(strings.Split(f.brokers, ",")...),
		builder.KafkaSourceWithTopic(f.topic),
		builder.KafkaSourceWithGroupID(f.groupID),
		builder.KafkaSourceWithStartAt(f.startAt),
		builder.KafkaSourceWithMaxWait(f.maxWait),
		builder.KafkaSourceWithLogger(rt.logger),
	)

	err = src.Serve(ctx, func(_ context.Context, chunk []byte) error {
		if err := dec.Write(chunk, enc.Encode); err != nil {
			return err
		}
		return bw.Flush()
	})
	if cerr := dec.Close(); err == nil {
		err = cerr
	}
	if ferr := bw.Flush(); err == nil {
		err = ferr
	}
	if cerr := closeOut(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("stream %s: %w", f.topic, err)
	}
	return nil
}
