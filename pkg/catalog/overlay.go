package catalog

import (
	"sort"

	"miniecom/pkg/forecast"
)

// ApplyManual накладывает ручные данные на снимок каталога и возвращает новый срез.
// Исходный срез не изменяется: он разделяется между конкурентными запросами.
//
// Submission добавляется как отдельный товар, если SKU ещё не занят записью ETL.
// Среди нескольких submission с одним SKU побеждает самая свежая.
// Для каждого SKU применяется только самая свежая корректировка цены.
func ApplyManual(items []Product, submissions []Submission, corrections []PriceCorrection) []Product {
	if len(submissions) == 0 && len(corrections) == 0 {
		return items
	}

	out := make([]Product, len(items), len(items)+len(submissions))
	copy(out, items)

	index := make(map[string]int, len(out))
	for i, p := range out {
		index[p.SKU] = i
	}

	latestSubmission := make(map[string]Submission)
	var order []string
	for _, s := range submissions {
		sku := s.SKU()
		if _, taken := index[sku]; taken {
			continue
		}
		prev, seen := latestSubmission[sku]
		if !seen {
			order = append(order, sku)
		}
		if !seen || s.Timestamp.After(prev.Timestamp) {
			latestSubmission[sku] = s
		}
	}
	for _, sku := range order {
		index[sku] = len(out)
		out = append(out, FromSubmission(latestSubmission[sku]))
	}

	for sku, c := range latestCorrections(corrections) {
		i, ok := index[sku]
		if !ok {
			continue
		}
		out[i] = applyCorrection(out[i], c)
	}

	return out
}

// FromSubmission превращает ручной товар в запись каталога с одной точкой истории
func FromSubmission(s Submission) Product {
	series := []float64{float64(s.Price)}
	result := forecast.Analyze(series)

	category := s.Category
	if category == "" {
		category = "Laptop"
	}

	return Product{
		SKU:         s.SKU(),
		Name:        s.Name,
		Brand:       s.Brand,
		Category:    category,
		Marketplace: s.Marketplace,
		URL:         s.URL,
		Sold:        s.Sold,
		Price:       s.Price,
		Trend:       result.Trend,
		Forecast7:   result.Forecast7,
		Direction:   result.Direction,
		History:     []int64{s.Price},
		Source:      SourceSubmission,
	}
}

func latestCorrections(corrections []PriceCorrection) map[string]PriceCorrection {
	sorted := make([]PriceCorrection, 0, len(corrections))
	for _, c := range corrections {
		if c.SKU == "" || c.NewPrice <= 0 {
			continue
		}
		sorted = append(sorted, c)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	latest := make(map[string]PriceCorrection, len(sorted))
	for _, c := range sorted {
		latest[c.SKU] = c
	}
	return latest
}

func applyCorrection(p Product, c PriceCorrection) Product {
	previous := p.Price
	if previous <= 0 && c.PreviousPrice != nil {
		previous = *c.PreviousPrice
	}

	p.Price = c.NewPrice
	if c.Marketplace != "" {
		p.Marketplace = c.Marketplace
	}
	if c.URL != "" {
		p.URL = c.URL
	}

	if previous <= 0 {
		p.ChangePercent = nil
		p.Direction = TrendFlat
		p.IsOnSale = false
		return p
	}

	change := []float64{float64(previous), float64(c.NewPrice)}
	p.ChangePercent = forecast.ChangePercent(change)
	p.Direction = forecast.Direction(change)
	p.IsOnSale = c.NewPrice < previous
	return p
}
