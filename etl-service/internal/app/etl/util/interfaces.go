package util

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// MessagePublisher интерфейс для публикации событий каталога
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	PublishMessages(ctx context.Context, messages []kafka.Message) error
	Close() error
}
