package util

import (
	"context"

	"miniecom/pkg/catalog"
)

// RemoteCatalog интерфейс удалённой копии каталога (Redis)
// Используется для dependency injection и упрощения тестирования
type RemoteCatalog interface {
	// GetCatalog возвращает nil, nil если ключа нет
	GetCatalog(ctx context.Context) (*catalog.Payload, error)
	Ping(ctx context.Context) error
	Close() error
}
