package search

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"miniecom/pkg/catalog"
)

func soldPtr(v int64) *int64 {
	return &v
}

func corpus() []catalog.Product {
	return []catalog.Product{
		{SKU: "asus-vivobook-14-20240101", Name: "Vivobook 14", Brand: "ASUS", Category: "Laptop", Marketplace: "Tokopedia", Price: 8_000_000, Trend: "down", Sold: soldPtr(50)},
		{SKU: "asus-rog-strix-g16", Name: "ROG Strix G16", Brand: "ASUS", Category: "Laptop", Marketplace: "Shopee", Price: 25_000_000, Trend: "up", Sold: soldPtr(5)},
		{SKU: "acer-aspire-5", Name: "Aspire 5 with Intel", Brand: "Acer", Category: "Laptop", Marketplace: "Shopee", Price: 4_500_000, Trend: "flat"},
		{SKU: "lenovo-ideapad-slim-3", Name: "IdeaPad Slim 3", Brand: "Lenovo", Category: "Laptop", Marketplace: "Blibli", Price: 0, Trend: "flat", Sold: soldPtr(200)},
		{SKU: "bundle-asus-mouse", Name: "Mouse bundle for ASUS", Brand: "Logitech", Category: "Accessory", Marketplace: "Tokopedia", Price: 150_000, Trend: "flat"},
	}
}

func skus(items []catalog.Product) []string {
	out := make([]string, len(items))
	for i, p := range items {
		out[i] = p.SKU
	}
	return out
}

func TestSearch_EmptyQuery(t *testing.T) {
	engine := NewEngine(DefaultDictionary(), MatchAll)

	result := engine.Search(corpus(), Request{Query: "   ", Page: 3})

	assert.Empty(t, result.Items)
	assert.NotNil(t, result.Items)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 1, result.TotalPages)
	assert.Equal(t, 0, result.TotalItems)
	assert.Equal(t, PageSize, result.PageSize)
}

func TestSearch_BrandFilterExcludesOtherBrands(t *testing.T) {
	engine := NewEngine(DefaultDictionary(), MatchAll)

	result := engine.Search(corpus(), Request{Query: "asus", Page: 1})

	assert.ElementsMatch(t, []string{"asus-vivobook-14-20240101", "asus-rog-strix-g16"}, skus(result.Items))
	assert.Equal(t, 2, result.TotalItems)
}

func TestSearch_TokenPolicy(t *testing.T) {
	items := corpus()

	all := NewEngine(DefaultDictionary(), MatchAll).Search(items, Request{Query: "slim aspire"})
	assert.Empty(t, all.Items)

	loose := NewEngine(DefaultDictionary(), MatchAny).Search(items, Request{Query: "slim aspire"})
	assert.ElementsMatch(t, []string{"lenovo-ideapad-slim-3", "acer-aspire-5"}, skus(loose.Items))
}

func TestSearch_StopWordsIgnored(t *testing.T) {
	engine := NewEngine(DefaultDictionary(), MatchAll)

	result := engine.Search(corpus(), Request{Query: "aspire dengan intel"})

	assert.Equal(t, []string{"acer-aspire-5"}, skus(result.Items))
}

func TestSearch_SkuFastPath(t *testing.T) {
	engine := NewEngine(DefaultDictionary(), MatchAll)

	result := engine.Search(corpus(), Request{Query: "ROG-Strix"})

	require.Len(t, result.Items, 1)
	assert.Equal(t, "asus-rog-strix-g16", result.Items[0].SKU)
}

func TestSearch_TrendFilter(t *testing.T) {
	engine := NewEngine(DefaultDictionary(), MatchAll)

	result := engine.Search(corpus(), Request{Query: "laptop", Trend: "DOWN"})
	assert.Equal(t, []string{"asus-vivobook-14-20240101"}, skus(result.Items))

	result = engine.Search(corpus(), Request{Query: "laptop", Trend: "sideways"})
	assert.Empty(t, result.Items)
}

func TestSearch_PriceBands(t *testing.T) {
	engine := NewEngine(DefaultDictionary(), MatchAll)
	items := corpus()

	tests := []struct {
		band string
		want []string
	}{
		{band: "lt-5000k", want: []string{"acer-aspire-5"}},
		{band: "5000-10000k", want: []string{"asus-vivobook-14-20240101"}},
		{band: "gt-10000k", want: []string{"asus-rog-strix-g16"}},
		{band: "all", want: []string{"asus-vivobook-14-20240101", "asus-rog-strix-g16", "acer-aspire-5", "lenovo-ideapad-slim-3"}},
		{band: "weird", want: []string{"asus-vivobook-14-20240101", "asus-rog-strix-g16", "acer-aspire-5", "lenovo-ideapad-slim-3"}},
	}

	for _, tt := range tests {
		t.Run(tt.band, func(t *testing.T) {
			result := engine.Search(items, Request{Query: "laptop", PriceBand: tt.band})
			assert.ElementsMatch(t, tt.want, skus(result.Items))
		})
	}
}

func TestSearch_PriceBandBoundaries(t *testing.T) {
	engine := NewEngine(DefaultDictionary(), MatchAll)
	items := []catalog.Product{
		{SKU: "five", Name: "Laptop five", Price: 5_000_000},
		{SKU: "ten", Name: "Laptop ten", Price: 10_000_000},
	}

	result := engine.Search(items, Request{Query: "laptop", PriceBand: Band5MTo10M})
	assert.Len(t, result.Items, 2)

	result = engine.Search(items, Request{Query: "laptop", PriceBand: BandAbove10M})
	assert.Empty(t, result.Items)
}

func TestSearch_Sorting(t *testing.T) {
	engine := NewEngine(DefaultDictionary(), MatchAll)
	items := corpus()

	asc := engine.Search(items, Request{Query: "laptop", Sort: SortPriceAsc})
	assert.Equal(t, []string{"acer-aspire-5", "asus-vivobook-14-20240101", "asus-rog-strix-g16", "lenovo-ideapad-slim-3"}, skus(asc.Items))

	desc := engine.Search(items, Request{Query: "laptop", Sort: SortPriceDesc})
	assert.Equal(t, []string{"asus-rog-strix-g16", "asus-vivobook-14-20240101", "acer-aspire-5", "lenovo-ideapad-slim-3"}, skus(desc.Items))

	sold := engine.Search(items, Request{Query: "laptop", Sort: SortSoldDesc})
	assert.Equal(t, []string{"lenovo-ideapad-slim-3", "asus-vivobook-14-20240101", "asus-rog-strix-g16", "acer-aspire-5"}, skus(sold.Items))
}

func TestSearch_Pagination(t *testing.T) {
	engine := NewEngine(DefaultDictionary(), MatchAll)
	items := make([]catalog.Product, 30)
	for i := range items {
		items[i] = catalog.Product{SKU: fmt.Sprintf("hp-%02d", i), Name: "Laptop", Brand: "HP", Price: int64(i + 1)}
	}

	first := engine.Search(items, Request{Query: "laptop", Page: 1})
	assert.Len(t, first.Items, 24)
	assert.Equal(t, 2, first.TotalPages)
	assert.Equal(t, 30, first.TotalItems)

	last := engine.Search(items, Request{Query: "laptop", Page: 999})
	assert.Equal(t, 2, last.Page)
	assert.Len(t, last.Items, 6)

	none := engine.Search(items, Request{Query: "macbook", Page: 4})
	assert.Equal(t, 1, none.Page)
	assert.Equal(t, 1, none.TotalPages)
	assert.Empty(t, none.Items)
}

func TestSearch_ResultIsStable(t *testing.T) {
	engine := NewEngine(DefaultDictionary(), MatchAll)
	items := corpus()

	first := engine.Search(items, Request{Query: "laptop"})
	second := engine.Search(items, Request{Query: "laptop"})

	assert.Equal(t, skus(first.Items), skus(second.Items))
}

func TestSearch_MalformedQueryDoesNotPanic(t *testing.T) {
	engine := NewEngine(DefaultDictionary(), MatchAll)

	assert.NotPanics(t, func() {
		engine.Search(corpus(), Request{Query: "%%% --- ??? \x00", Page: -5})
		engine.Search(nil, Request{Query: "-"})
	})
}

func TestTokenize(t *testing.T) {
	engine := NewEngine(DefaultDictionary(), MatchAll)

	assert.Equal(t, []string{"asus", "vivobook", "14"}, engine.Tokenize("ASUS, Vivobook 14 dan asus"))
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, engine.Tokenize("a b c d e f g"))
	assert.Equal(t, []string{"di"}, engine.Tokenize("di"))
	assert.Equal(t, []string{"one", "two", "three", "four", "five"}, engine.Tokenize("one two three four five six"))
	assert.Empty(t, engine.Tokenize("!!! ??"))
}

func TestParseRequest(t *testing.T) {
	req := ParseRequest(url.Values{
		"q":     {"  asus rog "},
		"trend": {"UP"},
		"sort":  {"Price-Asc"},
		"page":  {"abc"},
	})

	assert.Equal(t, Request{Query: "asus rog", Trend: "up", PriceBand: "all", Sort: "price-asc", Page: 1}, req)

	req = ParseRequest(url.Values{"page": {"3"}})
	assert.Equal(t, 3, req.Page)
	assert.Equal(t, SortRelevance, req.Sort)
}

func TestLoadDictionary(t *testing.T) {
	t.Run("defaults when path empty or missing", func(t *testing.T) {
		dict, err := LoadDictionary("")
		require.NoError(t, err)
		assert.Equal(t, DefaultDictionary(), dict)

		dict, err = LoadDictionary(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		assert.Equal(t, DefaultDictionary(), dict)
	})

	t.Run("custom brands keep default stop words", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "dictionary.yaml")
		require.NoError(t, os.WriteFile(path, []byte("brands:\n  - advan\n  - asus\n"), 0o644))

		dict, err := LoadDictionary(path)

		require.NoError(t, err)
		assert.Equal(t, []string{"advan", "asus"}, dict.Brands)
		assert.Equal(t, DefaultStopWords, dict.StopWords)

		engine := NewEngine(dict, MatchAll)
		result := engine.Search([]catalog.Product{
			{SKU: "advan-workpro", Name: "Workpro", Brand: "Advan"},
			{SKU: "axioo-advan-clone", Name: "Advan clone", Brand: "Axioo"},
		}, Request{Query: "advan"})
		assert.Equal(t, []string{"advan-workpro"}, skus(result.Items))
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "broken.yaml")
		require.NoError(t, os.WriteFile(path, []byte("brands: [unterminated"), 0o644))

		_, err := LoadDictionary(path)
		assert.Error(t, err)
	})
}
