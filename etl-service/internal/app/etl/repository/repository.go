package repository

import (
	"context"
	"errors"

	"miniecom/etl-service/internal/app/etl/entity"
	"miniecom/pkg/catalog"
)

var (
	ErrCatalogNotFound = errors.New("catalog not found")
	ErrRunNotFound     = errors.New("etl run not found")
	ErrInvalidKey      = errors.New("source key escapes data dir")
)

// SourceRepository отдаёт сырые CSV файлы
type SourceRepository interface {
	// List возвращает ключи всех *.csv внутри сегмента laptop, отсортированные
	List(ctx context.Context) ([]string, error)

	// Read читает содержимое файла по ключу из List
	Read(ctx context.Context, key string) ([]byte, error)
}

// CatalogRepository хранит опубликованный каталог целиком
type CatalogRepository interface {
	// Save заменяет каталог целиком, частичная запись не видна читателям
	Save(ctx context.Context, payload catalog.Payload) error

	// Load возвращает ErrCatalogNotFound, если каталог ещё не публиковался
	Load(ctx context.Context) (*catalog.Payload, error)
}

// RunRepository - журнал запусков ETL в PostgreSQL
type RunRepository interface {
	Create(ctx context.Context, run *entity.EtlRun) error
	Update(ctx context.Context, run *entity.EtlRun) error
	GetLatest(ctx context.Context) (*entity.EtlRun, error)
}
