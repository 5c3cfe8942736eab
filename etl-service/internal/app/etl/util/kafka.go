package util

import (
	"context"
	"fmt"
	"time"

	"miniecom/pkg/metrics"

	"github.com/segmentio/kafka-go"
)

const serviceName = "etl-service"

// KafkaProducer обертка над Kafka writer для событий каталога
type KafkaProducer struct {
	writer *kafka.Writer
	topic  string
}

// NewKafkaProducer создает producer для топика catalog_events.
// batchTimeout ограничивает ожидание синхронной записи.
func NewKafkaProducer(brokers []string, topic string, batchTimeout time.Duration) *KafkaProducer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{}, // события одного SKU попадают в одну партицию
		BatchSize:    100,
		BatchTimeout: batchTimeout,
		RequiredAcks: kafka.RequireOne,
	}

	return &KafkaProducer{writer: writer, topic: topic}
}

// PublishMessage отправляет одно сообщение, key используется для партиционирования
func (p *KafkaProducer) PublishMessage(ctx context.Context, key string, value []byte) error {
	return p.PublishMessages(ctx, []kafka.Message{{
		Key:   []byte(key),
		Value: value,
		Time:  time.Now(),
	}})
}

// PublishMessages отправляет несколько сообщений батчем
func (p *KafkaProducer) PublishMessages(ctx context.Context, messages []kafka.Message) error {
	if len(messages) == 0 {
		return nil
	}

	timer := metrics.NewKafkaProduceTimer(serviceName, p.topic)
	if err := p.writer.WriteMessages(ctx, messages...); err != nil {
		timer.Error()
		return fmt.Errorf("failed to write messages to kafka: %w", err)
	}
	timer.Success()
	return nil
}

// Close закрывает Kafka writer и освобождает ресурсы
func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}
