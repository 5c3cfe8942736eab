// Package ranking считает релевантность товара поисковому запросу.
package ranking

import (
	"math"
	"sort"
	"strings"

	"miniecom/pkg/catalog"
)

// DefaultBrands - известные бренды ноутбуков
var DefaultBrands = []string{
	"asus", "acer", "lenovo", "hp", "dell", "msi", "apple", "samsung", "huawei",
	"lg", "xiaomi", "razer", "axioo", "zyrex", "infinix", "gigabyte", "surface",
}

const (
	phraseBonus        = 10
	brandBonus         = 4
	brandMissPenalty   = 5
	brandConflictExtra = 6
	nameTokenBonus     = 2
	skuBonus           = 6
	skuCondensedBonus  = 3
	trendDownBonus     = 2
	onSaleBonus        = 3
	maxSoldBonus       = 6
)

type Ranker struct {
	brands map[string]struct{}
	// порядок нужен только для детерминированного перебора
	brandList []string
}

func New(brands []string) *Ranker {
	if len(brands) == 0 {
		brands = DefaultBrands
	}
	r := &Ranker{brands: make(map[string]struct{}, len(brands))}
	for _, b := range brands {
		b = strings.ToLower(strings.TrimSpace(b))
		if b == "" {
			continue
		}
		if _, ok := r.brands[b]; ok {
			continue
		}
		r.brands[b] = struct{}{}
		r.brandList = append(r.brandList, b)
	}
	return r
}

func (r *Ranker) IsBrand(token string) bool {
	_, ok := r.brands[token]
	return ok
}

// Score - аддитивная оценка, см. константы выше
func (r *Ranker) Score(query string, p catalog.Product) float64 {
	q := strings.ToLower(strings.TrimSpace(query))
	name := strings.ToLower(p.Name)
	brand := strings.ToLower(p.Brand)
	sku := strings.ToLower(p.SKU)

	var score float64

	if q != "" && strings.Contains(name+" "+brand+" "+strings.ToLower(p.Category), q) {
		score += phraseBonus
	}

	tokens := strings.Fields(q)

	var queryBrands []string
	matchedBrand := false
	for _, token := range tokens {
		if !r.IsBrand(token) {
			continue
		}
		queryBrands = append(queryBrands, token)
		if brand != "" && strings.Contains(brand, token) {
			score += brandBonus
			matchedBrand = true
		}
	}

	if len(queryBrands) > 0 && !matchedBrand {
		score -= brandMissPenalty
		if r.mentionsOtherBrand(Searchable(p), queryBrands) {
			score -= brandConflictExtra
		}
	}

	for _, token := range tokens {
		if len(token) >= 2 && strings.Contains(name, token) {
			score += nameTokenBonus
		}
	}

	if q != "" && sku != "" {
		if strings.Contains(sku, q) {
			score += skuBonus
		} else if cq := catalog.Condense(q); cq != "" && strings.Contains(catalog.Condense(sku), cq) {
			score += skuCondensedBonus
		}
	}

	if p.Trend == catalog.TrendDown {
		score += trendDownBonus
	}
	if p.IsOnSale {
		score += onSaleBonus
	}
	if p.Sold != nil && *p.Sold > 0 {
		score += math.Min(maxSoldBonus, 2*math.Log10(float64(*p.Sold)+1))
	}

	return score
}

// Rank сортирует по убыванию оценки; при равенстве сохраняется исходный порядок
func (r *Ranker) Rank(query string, products []catalog.Product) []catalog.Product {
	type scored struct {
		product catalog.Product
		score   float64
	}

	list := make([]scored, len(products))
	for i, p := range products {
		list[i] = scored{product: p, score: r.Score(query, p)}
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].score > list[j].score
	})

	out := make([]catalog.Product, len(list))
	for i, s := range list {
		out[i] = s.product
	}
	return out
}

func (r *Ranker) mentionsOtherBrand(text string, queryBrands []string) bool {
	for _, b := range r.brandList {
		if contains(queryBrands, b) {
			continue
		}
		if strings.Contains(text, b) {
			return true
		}
	}
	return false
}

// Searchable - "name brand category marketplace sku" в нижнем регистре
func Searchable(p catalog.Product) string {
	return strings.ToLower(p.Name + " " + p.Brand + " " + p.Category + " " + p.Marketplace + " " + p.SKU)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
