package main

import (
	"context"
	"fmt"
	"time"

	"github.com/joeydtaylor/framefit/pkg/builder"
	"github.com/segmentio/kafka-go"
)

// Publishes a capture split into odd-sized messages, then decodes it live from
// the topic. Frames straddle message boundaries on purpose.
func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	brokers := builder.EnvOr("KAFKA_BROKERS", "127.0.0.1:19092")
	topic := builder.EnvOr("KAFKA_TOPIC", "framefit-hex")

	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers),
		Topic:                  topic,
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafka.RequireAll,
	}
	defer w.Close()

	var stream []byte
	for f := 0; f < 10; f++ {
		samples := make([]builder.SampleRecord, builder.SamplesPerFrame)
		for i := range samples {
			samples[i].Raw[builder.GroupB][i] = uint16(100 * f)
		}
		stream = append(stream, builder.EncodeFrame(uint16(f), samples)...)
	}
	var msgs []kafka.Message
	for len(stream) > 0 {
		n := min(777, len(stream))
		msgs = append(msgs, kafka.Message{Value: stream[:n]})
		stream = stream[n:]
	}
	if err := w.WriteMessages(ctx, msgs...); err != nil {
		fmt.Printf("publish: %v\n", err)
		return
	}

	logger := builder.NewLogger(builder.LoggerWithLevel("info"))
	dec := builder.NewDecoder(builder.DecoderWithLogger(logger))
	src := builder.NewKafkaSource(
		builder.KafkaSourceWithBrokers(brokers),
		builder.KafkaSourceWithTopic(topic),
		builder.KafkaSourceWithStartAt("earliest"),
		builder.KafkaSourceWithLogger(logger),
	)

	records := 0
	err := src.Serve(ctx, func(ctx context.Context, chunk []byte) error {
		return dec.Write(chunk, func(rec builder.SampleRecord) error {
			records++
			if records == 10*builder.SamplesPerFrame {
				cancel()
			}
			return nil
		})
	})
	if err != nil {
		fmt.Printf("serve: %v\n", err)
	}
	_ = dec.Close()
	fmt.Printf("decoded %d records, stats %+v\n", records, dec.Stats())
}
