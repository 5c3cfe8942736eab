package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"miniecom/pkg/catalog"
)

// fileCatalogRepository хранит каталог в локальном JSON файле (PROCESSED_PATH)
type fileCatalogRepository struct {
	path string
}

func NewFileCatalogRepository(path string) CatalogRepository {
	return &fileCatalogRepository{path: path}
}

// Save пишет во временный файл рядом и переименовывает его поверх старого
func (r *fileCatalogRepository) Save(ctx context.Context, payload catalog.Payload) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := payload.Encode()
	if err != nil {
		return err
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create catalog dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".products-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp catalog file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // после Rename файла уже нет

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync catalog: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close catalog: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("failed to chmod catalog: %w", err)
	}

	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("failed to replace catalog: %w", err)
	}
	return nil
}

func (r *fileCatalogRepository) Load(ctx context.Context) (*catalog.Payload, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrCatalogNotFound
		}
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	payload, err := catalog.DecodePayload(data)
	if err != nil {
		return nil, err
	}
	return &payload, nil
}
