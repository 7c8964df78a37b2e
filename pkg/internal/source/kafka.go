package source

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/joeydtaylor/framefit/pkg/internal/types"
	"github.com/joeydtaylor/framefit/pkg/internal/utils"
	"github.com/joeydtaylor/framefit/pkg/logschema"
	"github.com/segmentio/kafka-go"
)

// KafkaSource feeds message values from one topic to a submit func, so a live
// hex stream can be pushed into a frame decoder chunk by chunk.
type KafkaSource struct {
	componentMetadata types.ComponentMetadata

	brokers  []string
	topic    string
	groupID  string
	startAt  string
	maxBytes int
	maxWait  time.Duration

	reader *kafka.Reader

	loggers     []types.Logger
	loggersLock sync.Mutex
}

// NewKafkaSource constructs a KafkaSource and applies options.
func NewKafkaSource(options ...types.Option[*KafkaSource]) *KafkaSource {
	k := &KafkaSource{
		componentMetadata: types.ComponentMetadata{
			Type: "KAFKA_SOURCE",
			ID:   utils.GenerateUniqueHash(),
		},
		startAt:  "earliest",
		maxBytes: 1_000_000,
		maxWait:  time.Second,
	}
	for _, opt := range options {
		if opt != nil {
			opt(k)
		}
	}
	return k
}

// KafkaWithBrokers sets the bootstrap brokers.
func KafkaWithBrokers(brokers ...string) types.Option[*KafkaSource] {
	return func(k *KafkaSource) { k.brokers = append(k.brokers, brokers...) }
}

// KafkaWithTopic sets the topic carrying the hex stream.
func KafkaWithTopic(topic string) types.Option[*KafkaSource] {
	return func(k *KafkaSource) { k.topic = topic }
}

// KafkaWithGroupID consumes as part of a consumer group and commits after each submit.
func KafkaWithGroupID(id string) types.Option[*KafkaSource] {
	return func(k *KafkaSource) { k.groupID = id }
}

// KafkaWithStartAt selects "earliest" or "latest" for readers without a committed offset.
func KafkaWithStartAt(at string) types.Option[*KafkaSource] {
	return func(k *KafkaSource) { k.startAt = at }
}

// KafkaWithMaxWait bounds how long one fetch waits for new data.
func KafkaWithMaxWait(d time.Duration) types.Option[*KafkaSource] {
	return func(k *KafkaSource) {
		if d > 0 {
			k.maxWait = d
		}
	}
}

// KafkaWithReader supplies a preconfigured reader; brokers and topic are then ignored.
func KafkaWithReader(r *kafka.Reader) types.Option[*KafkaSource] {
	return func(k *KafkaSource) { k.reader = r }
}

// KafkaWithLogger registers loggers for the source.
func KafkaWithLogger(l ...types.Logger) types.Option[*KafkaSource] {
	return func(k *KafkaSource) {
		k.loggersLock.Lock()
		defer k.loggersLock.Unlock()
		for _, logger := range l {
			if logger != nil {
				k.loggers = append(k.loggers, logger)
			}
		}
	}
}

// GetComponentMetadata returns the source metadata.
func (k *KafkaSource) GetComponentMetadata() types.ComponentMetadata {
	return k.componentMetadata
}

func (k *KafkaSource) readerConfig() (kafka.ReaderConfig, error) {
	if k.topic == "" {
		return kafka.ReaderConfig{}, fmt.Errorf("kafka source: topic is required")
	}
	brokers := append([]string(nil), k.brokers...)
	if len(brokers) == 0 {
		brokers = []string{"127.0.0.1:19092"}
	}

	cfg := kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    k.topic,
		GroupID:  k.groupID,
		MaxBytes: k.maxBytes,
		MaxWait:  k.maxWait,
	}
	switch strings.ToLower(k.startAt) {
	case "latest":
		cfg.StartOffset = kafka.LastOffset
	default:
		cfg.StartOffset = kafka.FirstOffset
	}
	return cfg, nil
}

// Serve fetches messages until ctx is cancelled and passes each value to submit
// in partition order. It returns nil on cancellation and the first fetch, submit
// or commit error otherwise.
func (k *KafkaSource) Serve(ctx context.Context, submit func(context.Context, []byte) error) error {
	r := k.reader
	if r == nil {
		cfg, err := k.readerConfig()
		if err != nil {
			return err
		}
		r = kafka.NewReader(cfg)
		defer func() { _ = r.Close() }()
	}

	k.NotifyLoggers(types.InfoLevel, "Kafka source started",
		logschema.FieldComponent, k.componentMetadata,
		logschema.FieldEvent, "ConsumerStart",
		logschema.FieldSource, k.topic,
	)

	var msgs, bytes int64
	defer func() {
		k.NotifyLoggers(types.InfoLevel, "Kafka source stopped",
			logschema.FieldComponent, k.componentMetadata,
			logschema.FieldEvent, "ConsumerStop",
			logschema.FieldSource, k.topic,
			logschema.FieldBytes, bytes,
			"messages", msgs,
		)
	}()

	for {
		msg, err := r.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("kafka fetch: %w", err)
		}
		msgs++
		bytes += int64(len(msg.Value))

		if err := submit(ctx, msg.Value); err != nil {
			return err
		}
		if k.groupID != "" {
			if err := r.CommitMessages(ctx, msg); err != nil && ctx.Err() == nil {
				return fmt.Errorf("kafka commit: %w", err)
			}
		}
	}
}

// NotifyLoggers emits a log event to all configured loggers.
func (k *KafkaSource) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	k.loggersLock.Lock()
	loggers := append([]types.Logger(nil), k.loggers...)
	k.loggersLock.Unlock()

	for _, logger := range loggers {
		if logger.GetLevel() > level {
			continue
		}
		switch level {
		case types.DebugLevel:
			logger.Debug(msg, keysAndValues...)
		case types.InfoLevel:
			logger.Info(msg, keysAndValues...)
		case types.WarnLevel:
			logger.Warn(msg, keysAndValues...)
		default:
			logger.Error(msg, keysAndValues...)
		}
	}
}
