package repository

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"miniecom/pkg/etl"
)

// fileSourceRepository читает CSV из каталога на диске.
// Ключи - пути относительно корня через "/", как ключи блоба.
type fileSourceRepository struct {
	root string
}

func NewFileSourceRepository(root string) SourceRepository {
	return &fileSourceRepository{root: root}
}

func (r *fileSourceRepository) List(ctx context.Context) ([]string, error) {
	var keys []string

	err := filepath.WalkDir(r.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(r.root, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if etl.IsSourceKey(key) {
			keys = append(keys, key)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list source files in %s: %w", r.root, err)
	}

	sort.Strings(keys)
	return keys, nil
}

func (r *fileSourceRepository) Read(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rel := filepath.FromSlash(key)
	if !filepath.IsLocal(rel) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidKey, key)
	}

	data, err := os.ReadFile(filepath.Join(r.root, rel))
	if err != nil {
		return nil, fmt.Errorf("failed to read source file %s: %w", key, err)
	}
	return data, nil
}
