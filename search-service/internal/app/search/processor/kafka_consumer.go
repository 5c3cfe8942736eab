package processor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"miniecom/pkg/logger"
	"miniecom/pkg/metrics"
	"miniecom/search-service/internal/app/search/entity"

	"github.com/segmentio/kafka-go"
)

const serviceName = "search-service"

// CacheInvalidator - то, что нужно консьюмеру от кеша каталога
type CacheInvalidator interface {
	Invalidate()
}

// KafkaConsumer слушает catalog_events и сбрасывает кеш каталога
// после каждой публикации нового снимка
type KafkaConsumer struct {
	reader   *kafka.Reader
	cache    CacheInvalidator
	topic    string
	groupID  string
	stopChan chan struct{}
	doneChan chan struct{}
}

func NewKafkaConsumer(
	brokers []string,
	topic string,
	groupID string,
	minBytes int,
	maxBytes int,
	cache CacheInvalidator,
) *KafkaConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       minBytes,
		MaxBytes:       maxBytes,
		StartOffset:    kafka.LastOffset, // старые публикации уже не важны
		CommitInterval: time.Second,
		ReadBackoffMin: 100 * time.Millisecond,
		ReadBackoffMax: 1 * time.Second,
	})

	return &KafkaConsumer{
		reader:   reader,
		cache:    cache,
		topic:    topic,
		groupID:  groupID,
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
	}
}

// Start запускает consumer в отдельной горутине
func (c *KafkaConsumer) Start(ctx context.Context) {
	logger.Info().Str("topic", c.topic).Str("group_id", c.groupID).Msg("Starting Kafka consumer")
	go c.consume(ctx)
}

func (c *KafkaConsumer) Stop() {
	logger.Info().Msg("Stopping Kafka consumer...")
	close(c.stopChan)
	<-c.doneChan
	if err := c.reader.Close(); err != nil {
		logger.Warn().Err(err).Msg("Failed to close Kafka reader")
	}
	logger.Info().Msg("Kafka consumer stopped")
}

func (c *KafkaConsumer) consume(ctx context.Context) {
	defer close(c.doneChan)

	for {
		select {
		case <-c.stopChan:
			return
		default:
			readCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			message, err := c.reader.FetchMessage(readCtx)
			cancel()

			if err != nil {
				if ctx.Err() != nil {
					return
				}
				// Таймаут ожидания - штатная ситуация при пустом топике
				if errors.Is(err, context.DeadlineExceeded) {
					continue
				}
				logger.Warn().Err(err).Msg("Error fetching message")
				metrics.RecordKafkaError(serviceName, c.topic, "fetch")
				time.Sleep(time.Second)
				continue
			}

			timer := metrics.NewTimer()
			if err := c.processMessage(ctx, message); err != nil {
				logger.Error().
					Err(err).
					Int64("offset", message.Offset).
					Int("partition", message.Partition).
					Msg("Error processing message")
				metrics.RecordKafkaError(serviceName, c.topic, "consume")
				continue
			}
			metrics.RecordKafkaMessageConsumed(serviceName, c.topic, c.groupID, timer.Duration())

			if err := c.reader.CommitMessages(ctx, message); err != nil {
				logger.Warn().Err(err).Msg("Error committing message")
				metrics.RecordKafkaError(serviceName, c.topic, "commit")
			}
		}
	}
}

func (c *KafkaConsumer) processMessage(_ context.Context, message kafka.Message) error {
	var event entity.CatalogEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		return fmt.Errorf("failed to unmarshal catalog event: %w", err)
	}

	switch event.EventType {
	case entity.EventCatalogPublished:
		c.cache.Invalidate()
		logger.Info().
			Int("products", event.Products).
			Str("fingerprint", event.Fingerprint).
			Int64("offset", message.Offset).
			Msg("Catalog published, cache invalidated")
	case entity.EventPriceChanged:
		logger.Debug().
			Str("sku", event.SKU).
			Int64("old_price", event.OldPrice).
			Int64("new_price", event.NewPrice).
			Msg("Price changed")
	default:
		logger.Debug().Str("event_type", event.EventType).Msg("Ignoring unknown catalog event")
	}
	return nil
}

func (c *KafkaConsumer) GetStats() kafka.ReaderStats {
	return c.reader.Stats()
}
