package repository

import (
	"context"
	"errors"

	"miniecom/pkg/catalog"
)

var (
	ErrCatalogNotFound = errors.New("catalog not found")
)

// LocalCatalogRepository читает каталог, который etl-service пишет на диск
type LocalCatalogRepository interface {
	// Fingerprint меняется при каждой перезаписи файла (mtime + размер)
	Fingerprint(ctx context.Context) (string, error)
	Load(ctx context.Context) (*catalog.Payload, error)
}

// ManualRepository хранит ручные записи пользователей в MongoDB
type ManualRepository interface {
	// EnsureIndexes вызывается один раз при старте
	EnsureIndexes(ctx context.Context) error

	CreateSubmission(ctx context.Context, submission *catalog.Submission) error
	CreatePriceCorrection(ctx context.Context, correction *catalog.PriceCorrection) error
	// AppendDataset дописывает строку в общий журнал ручных изменений
	AppendDataset(ctx context.Context, record catalog.DatasetRecord) error

	// ListSubmissions и ListPriceCorrections возвращают записи по возрастанию времени
	ListSubmissions(ctx context.Context) ([]catalog.Submission, error)
	ListPriceCorrections(ctx context.Context) ([]catalog.PriceCorrection, error)
}
