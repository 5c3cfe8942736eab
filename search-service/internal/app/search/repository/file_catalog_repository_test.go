package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"miniecom/pkg/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCatalog(t *testing.T, path string, items []catalog.Product) {
	t.Helper()
	data, err := catalog.NewPayload(items, time.Now()).Encode()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func TestFileCatalogRepository_Load(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "products.json")
	writeCatalog(t, path, []catalog.Product{{SKU: "asus-vivobook-14", Name: "Asus Vivobook 14", Price: 7_500_000}})
	repo := NewFileCatalogRepository(path)

	// Act
	payload, err := repo.Load(context.Background())

	// Assert
	require.NoError(t, err)
	require.Len(t, payload.Items, 1)
	assert.Equal(t, "asus-vivobook-14", payload.Items[0].SKU)
	assert.Equal(t, int64(7_500_000), payload.Items[0].Price)
}

func TestFileCatalogRepository_Load_NotFound(t *testing.T) {
	repo := NewFileCatalogRepository(filepath.Join(t.TempDir(), "missing.json"))

	_, err := repo.Load(context.Background())

	assert.ErrorIs(t, err, ErrCatalogNotFound)
}

func TestFileCatalogRepository_Load_Corrupted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"products": []}`), 0o644))
	repo := NewFileCatalogRepository(path)

	_, err := repo.Load(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, catalog.ErrInvalidPayload)
}

func TestFileCatalogRepository_Fingerprint_ChangesOnRewrite(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "products.json")
	writeCatalog(t, path, []catalog.Product{{SKU: "a", Name: "A", Price: 1}})
	repo := NewFileCatalogRepository(path)

	first, err := repo.Fingerprint(context.Background())
	require.NoError(t, err)

	again, err := repo.Fingerprint(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, again)

	// Act
	writeCatalog(t, path, []catalog.Product{{SKU: "a", Name: "A", Price: 1}, {SKU: "b", Name: "B", Price: 2}})
	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, later, later))
	second, err := repo.Fingerprint(context.Background())

	// Assert
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestFileCatalogRepository_Fingerprint_NotFound(t *testing.T) {
	repo := NewFileCatalogRepository(filepath.Join(t.TempDir(), "missing.json"))

	_, err := repo.Fingerprint(context.Background())

	assert.ErrorIs(t, err, ErrCatalogNotFound)
}

func TestFileCatalogRepository_CancelledContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	writeCatalog(t, path, nil)
	repo := NewFileCatalogRepository(path)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = repo.Fingerprint(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
