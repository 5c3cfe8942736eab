// Package search - фильтрация, ранжирование, сортировка и постраничная выдача каталога.
package search

import (
	"math"
	"sort"
	"strings"

	"miniecom/pkg/catalog"
	"miniecom/pkg/ranking"
)

const PageSize = 24

type TokenMatch string

const (
	MatchAll TokenMatch = "all"
	MatchAny TokenMatch = "any"
)

const (
	FilterAll = "all"

	BandBelow5M   = "lt-5000k"
	Band5MTo10M   = "5000-10000k"
	BandAbove10M  = "gt-10000k"
	SortRelevance = "relevance"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortSoldDesc  = "sold-desc"
)

type Request struct {
	Query     string
	Trend     string
	PriceBand string
	Sort      string
	Page      int
}

type Result struct {
	Items      []catalog.Product `json:"items"`
	Page       int               `json:"page"`
	TotalPages int               `json:"totalPages"`
	TotalItems int               `json:"totalItems"`
	PageSize   int               `json:"pageSize"`
}

// Engine не хранит состояния между вызовами и безопасен для конкурентного использования
type Engine struct {
	ranker    *ranking.Ranker
	stopWords map[string]struct{}
	match     TokenMatch
}

func NewEngine(dict Dictionary, match TokenMatch) *Engine {
	if match != MatchAny {
		match = MatchAll
	}
	stop := make(map[string]struct{}, len(dict.StopWords))
	for _, w := range dict.StopWords {
		stop[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
	}
	return &Engine{
		ranker:    ranking.New(dict.Brands),
		stopWords: stop,
		match:     match,
	}
}

func (e *Engine) Search(items []catalog.Product, req Request) Result {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return Result{Items: []catalog.Product{}, Page: 1, TotalPages: 1, PageSize: PageSize}
	}

	tokens := e.Tokenize(query)
	matched := e.filterByTokens(items, tokens, query)
	matched = filterByTrend(matched, req.Trend)
	matched = filterByPrice(matched, req.PriceBand)

	ranked := e.ranker.Rank(query, matched)
	sortItems(ranked, req.Sort)

	return paginate(ranked, req.Page)
}

func (e *Engine) filterByTokens(items []catalog.Product, tokens []string, query string) []catalog.Product {
	var brandTokens []string
	for _, t := range tokens {
		if e.ranker.IsBrand(t) {
			brandTokens = append(brandTokens, t)
		}
	}

	condensedQuery := ""
	if strings.Contains(query, "-") {
		condensedQuery = catalog.Condense(query)
	}

	out := make([]catalog.Product, 0, len(items))
	for _, item := range items {
		if condensedQuery != "" && strings.Contains(catalog.Condense(item.SKU), condensedQuery) {
			out = append(out, item)
			continue
		}

		if !e.matchTokens(ranking.Searchable(item), tokens) {
			continue
		}
		if len(brandTokens) > 0 && !brandMatches(item.Brand, brandTokens) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func (e *Engine) matchTokens(text string, tokens []string) bool {
	if len(tokens) == 0 {
		return true
	}
	for _, t := range tokens {
		found := strings.Contains(text, t)
		if e.match == MatchAny && found {
			return true
		}
		if e.match == MatchAll && !found {
			return false
		}
	}
	return e.match == MatchAll
}

func brandMatches(brand string, brandTokens []string) bool {
	b := strings.ToLower(brand)
	for _, t := range brandTokens {
		if strings.Contains(b, t) {
			return true
		}
	}
	return false
}

func filterByTrend(items []catalog.Product, trend string) []catalog.Product {
	trend = strings.ToLower(strings.TrimSpace(trend))
	if trend == "" || trend == FilterAll {
		return items
	}
	out := make([]catalog.Product, 0, len(items))
	for _, item := range items {
		if strings.ToLower(item.Trend) == trend {
			out = append(out, item)
		}
	}
	return out
}

func filterByPrice(items []catalog.Product, band string) []catalog.Product {
	var keep func(int64) bool
	switch strings.ToLower(strings.TrimSpace(band)) {
	case BandBelow5M:
		keep = func(p int64) bool { return p < 5_000_000 }
	case Band5MTo10M:
		keep = func(p int64) bool { return p >= 5_000_000 && p <= 10_000_000 }
	case BandAbove10M:
		keep = func(p int64) bool { return p > 10_000_000 }
	default:
		return items
	}

	out := make([]catalog.Product, 0, len(items))
	for _, item := range items {
		if item.HasPrice() && keep(item.Price) {
			out = append(out, item)
		}
	}
	return out
}

func sortItems(items []catalog.Product, mode string) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case SortPriceAsc:
		sort.SliceStable(items, func(i, j int) bool {
			return priceKey(items[i], math.Inf(1)) < priceKey(items[j], math.Inf(1))
		})
	case SortPriceDesc:
		sort.SliceStable(items, func(i, j int) bool {
			return priceKey(items[i], math.Inf(-1)) > priceKey(items[j], math.Inf(-1))
		})
	case SortSoldDesc:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].SoldValue() > items[j].SoldValue()
		})
	}
}

func priceKey(p catalog.Product, missing float64) float64 {
	if !p.HasPrice() {
		return missing
	}
	return float64(p.Price)
}

func paginate(items []catalog.Product, page int) Result {
	total := len(items)
	totalPages := (total + PageSize - 1) / PageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * PageSize
	end := start + PageSize
	if end > total {
		end = total
	}

	pageItems := make([]catalog.Product, 0, end-start)
	pageItems = append(pageItems, items[start:end]...)

	return Result{
		Items:      pageItems,
		Page:       page,
		TotalPages: totalPages,
		TotalItems: total,
		PageSize:   PageSize,
	}
}
