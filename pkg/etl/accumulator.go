package etl

import (
	"sort"
	"strings"
)

// ProductMeta - описательные поля товара. При слиянии поля только улучшаются.
type ProductMeta struct {
	SKU         string
	Name        string
	Brand       string
	Category    string
	Marketplace string
	URL         string
	Sold        *int64
}

type PriceEntry struct {
	Value int64
	Date  string
	Seq   int
}

type aggregate struct {
	meta   ProductMeta
	prices []PriceEntry
}

// Accumulator собирает строки одного прогона ETL по SKU.
// Не потокобезопасен: принадлежит одному прогону.
type Accumulator struct {
	products map[string]*aggregate
	sequence int
}

type FinalizedProduct struct {
	Meta        ProductMeta
	Series      []int64
	LatestPrice int64
}

func NewAccumulator() *Accumulator {
	return &Accumulator{products: make(map[string]*aggregate)}
}

func (a *Accumulator) Len() int {
	return len(a.products)
}

func (a *Accumulator) Add(row NormalizedRow) {
	meta := ProductMeta{
		SKU:         row.SKU,
		Name:        row.Name,
		Brand:       row.Brand,
		Category:    row.Category,
		Marketplace: row.Marketplace,
		URL:         strings.TrimSpace(row.URL),
		Sold:        row.Sold,
	}

	existing, ok := a.products[row.SKU]
	if !ok {
		a.products[row.SKU] = &aggregate{
			meta:   meta,
			prices: []PriceEntry{{Value: row.Price, Date: row.Date, Seq: a.next()}},
		}
		return
	}

	existing.meta = mergeMeta(existing.meta, meta)

	if row.Date != "" {
		for i := range existing.prices {
			if existing.prices[i].Date == row.Date {
				existing.prices[i].Value = row.Price
				return
			}
		}
	}

	existing.prices = append(existing.prices, PriceEntry{Value: row.Price, Date: row.Date, Seq: a.next()})
}

// Finalize упорядочивает ряды: сначала датированные точки по возрастанию даты,
// затем точки без даты в порядке поступления. Результат отсортирован по SKU.
func (a *Accumulator) Finalize() []FinalizedProduct {
	out := make([]FinalizedProduct, 0, len(a.products))
	for _, agg := range a.products {
		if len(agg.prices) == 0 {
			continue
		}

		entries := make([]PriceEntry, len(agg.prices))
		copy(entries, agg.prices)
		sort.SliceStable(entries, func(i, j int) bool {
			return entryLess(entries[i], entries[j])
		})

		series := make([]int64, len(entries))
		for i, e := range entries {
			series[i] = e.Value
		}

		out = append(out, FinalizedProduct{
			Meta:        agg.meta,
			Series:      series,
			LatestPrice: series[len(series)-1],
		})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Meta.SKU < out[j].Meta.SKU
	})
	return out
}

func (a *Accumulator) next() int {
	seq := a.sequence
	a.sequence++
	return seq
}

func entryLess(x, y PriceEntry) bool {
	switch {
	case x.Date != "" && y.Date != "":
		if x.Date != y.Date {
			return x.Date < y.Date
		}
		return x.Seq < y.Seq
	case x.Date != "":
		return true
	case y.Date != "":
		return false
	default:
		return x.Seq < y.Seq
	}
}

func mergeMeta(current, incoming ProductMeta) ProductMeta {
	return ProductMeta{
		SKU:         current.SKU,
		Name:        preferMeaningful(current.Name, incoming.Name),
		Brand:       preferMeaningful(current.Brand, incoming.Brand),
		Category:    preferMeaningful(current.Category, incoming.Category),
		Marketplace: preferMeaningful(current.Marketplace, incoming.Marketplace),
		URL:         preferLonger(current.URL, incoming.URL),
		Sold:        mergeSold(current.Sold, incoming.Sold),
	}
}

func isPlaceholder(v string) bool {
	return v == "" || v == unknownValue || v == "-"
}

func preferMeaningful(current, incoming string) string {
	if isPlaceholder(incoming) {
		return current
	}
	if isPlaceholder(current) || len(incoming) > len(current) {
		return incoming
	}
	return current
}

func preferLonger(current, incoming string) string {
	if len(incoming) > len(current) {
		return incoming
	}
	return current
}

func mergeSold(current, incoming *int64) *int64 {
	if incoming == nil {
		return current
	}
	if current == nil || *incoming > *current {
		v := *incoming
		return &v
	}
	return current
}
