package ingest

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/lexirank/lexirank/pkg/config"
	"github.com/lexirank/lexirank/pkg/kafka"
)

// KafkaSource drains buffered documents from a Kafka topic. Messages are
// JSON-encoded Document values. Consumption stops when the context is
// cancelled or when the topic has been idle for the configured duration,
// whichever comes first; the collected batch is then handed to the indexing
// pipeline as one corpus snapshot.
type KafkaSource struct {
	cfg    config.KafkaConfig
	topic  string
	idle   time.Duration
	logger *slog.Logger
}

var _ Source = (*KafkaSource)(nil)

// NewKafkaSource creates a source for the given topic. idle values of zero
// fall back to five seconds.
func NewKafkaSource(cfg config.KafkaConfig, topic string, idle time.Duration) *KafkaSource {
	if idle <= 0 {
		idle = 5 * time.Second
	}
	return &KafkaSource{
		cfg:    cfg,
		topic:  topic,
		idle:   idle,
		logger: slog.Default().With("component", "kafka-source", "topic", topic),
	}
}

// Documents consumes the topic until idle and returns the batch in arrival
// order.
func (s *KafkaSource) Documents(ctx context.Context) ([]Document, error) {
	consumeCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var mu sync.Mutex
	var docs []Document
	timer := time.AfterFunc(s.idle, cancel)

	consumer := kafka.NewConsumer(s.cfg, s.topic, func(_ context.Context, key []byte, value []byte) error {
		doc, err := kafka.DecodeJSON[Document](value)
		if err != nil {
			// A malformed message is logged and skipped rather than
			// wedging the whole batch.
			s.logger.Warn("skipping malformed document message", "key", string(key), "error", err)
			return nil
		}
		if doc.URI == "" {
			doc.URI = string(key)
		}
		mu.Lock()
		docs = append(docs, doc)
		mu.Unlock()
		timer.Reset(s.idle)
		return nil
	})

	if err := consumer.Start(consumeCtx); err != nil && ctx.Err() == nil && consumeCtx.Err() == nil {
		return nil, err
	}
	timer.Stop()

	mu.Lock()
	defer mu.Unlock()
	s.logger.Info("kafka batch collected", "documents", len(docs))
	return docs, nil
}
