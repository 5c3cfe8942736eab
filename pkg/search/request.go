package search

import (
	"net/url"
	"strconv"
	"strings"
)

// ParseRequest читает параметры q, trend, price, sort, page.
// Некорректный номер страницы трактуется как 1.
func ParseRequest(values url.Values) Request {
	page, err := strconv.Atoi(strings.TrimSpace(values.Get("page")))
	if err != nil || page < 1 {
		page = 1
	}

	return Request{
		Query:     strings.TrimSpace(values.Get("q")),
		Trend:     lowerOr(values.Get("trend"), FilterAll),
		PriceBand: lowerOr(values.Get("price"), FilterAll),
		Sort:      lowerOr(values.Get("sort"), SortRelevance),
		Page:      page,
	}
}

func lowerOr(v, def string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return def
	}
	return v
}
