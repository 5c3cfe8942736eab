package repository

import (
	"context"
	"errors"
	"fmt"
	"os"

	"miniecom/pkg/catalog"
)

type fileCatalogRepository struct {
	path string
}

// NewFileCatalogRepository читает processed-файл каталога.
// Файл заменяется etl-service атомарно, поэтому частично записанный документ не виден.
func NewFileCatalogRepository(path string) LocalCatalogRepository {
	return &fileCatalogRepository{path: path}
}

func (r *fileCatalogRepository) Fingerprint(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	info, err := os.Stat(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrCatalogNotFound
		}
		return "", fmt.Errorf("failed to stat catalog file: %w", err)
	}
	return fmt.Sprintf("%d-%d", info.ModTime().UnixNano(), info.Size()), nil
}

func (r *fileCatalogRepository) Load(ctx context.Context) (*catalog.Payload, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrCatalogNotFound
		}
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	payload, err := catalog.DecodePayload(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode catalog file: %w", err)
	}
	return &payload, nil
}
