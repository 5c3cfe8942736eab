package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"miniecom/pkg/catalog"
)

func soldPtr(v int64) *int64 {
	return &v
}

var (
	vivobook = catalog.Product{SKU: "asus-vivobook-14", Name: "Vivobook 14", Brand: "ASUS", Category: "Laptop", Marketplace: "Tokopedia"}
	aspire   = catalog.Product{SKU: "acer-aspire-5", Name: "Aspire 5", Brand: "Acer", Category: "Laptop", Marketplace: "Shopee"}
	noBrand  = catalog.Product{SKU: "laptop-gaming", Name: "Laptop Gaming", Brand: "Unknown", Category: "Laptop"}
)

func TestScore(t *testing.T) {
	r := New(nil)

	tests := []struct {
		name    string
		query   string
		product catalog.Product
		want    float64
	}{
		{name: "brand query on matching brand", query: "asus", product: vivobook, want: 10 + 4 + 6},
		{name: "brand query on conflicting brand", query: "asus", product: aspire, want: -5 - 6},
		{name: "brand query without other brand", query: "asus", product: noBrand, want: -5},
		{name: "name tokens", query: "Vivobook 14", product: vivobook, want: 10 + 2 + 2 + 3},
		{name: "condensed sku", query: "asus vivobook", product: vivobook, want: 4 + 2 + 3},
		{name: "no match", query: "thinkpad", product: vivobook, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, r.Score(tt.query, tt.product), 1e-9)
		})
	}
}

func TestScore_Bonuses(t *testing.T) {
	r := New(nil)
	p := catalog.Product{Name: "X", Trend: catalog.TrendDown, IsOnSale: true, Sold: soldPtr(9)}

	assert.InDelta(t, 2+3+2, r.Score("zzz", p), 1e-9)

	p.Sold = soldPtr(1_000_000)
	assert.InDelta(t, 2+3+6, r.Score("zzz", p), 1e-9)
}

func TestRank_StableAndDeterministic(t *testing.T) {
	// Arrange
	r := New(nil)
	first := catalog.Product{SKU: "a", Name: "Laptop A", Brand: "HP"}
	second := catalog.Product{SKU: "b", Name: "Laptop B", Brand: "HP"}
	products := []catalog.Product{first, aspire, second, vivobook}

	// Act
	once := r.Rank("laptop", products)
	twice := r.Rank("laptop", products)

	// Assert
	require.Len(t, once, 4)
	assert.Equal(t, once, twice)
	assert.Equal(t, []string{"a", "b", "acer-aspire-5", "asus-vivobook-14"}, skus(once))
}

func TestRank_BrandQueryPutsBrandFirst(t *testing.T) {
	r := New(nil)

	ranked := r.Rank("asus", []catalog.Product{aspire, noBrand, vivobook})

	assert.Equal(t, []string{"asus-vivobook-14", "laptop-gaming", "acer-aspire-5"}, skus(ranked))
}

func TestNew_CustomBrands(t *testing.T) {
	r := New([]string{" Advan ", "advan", ""})

	assert.True(t, r.IsBrand("advan"))
	assert.False(t, r.IsBrand("asus"))
}

func skus(products []catalog.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.SKU
	}
	return out
}
