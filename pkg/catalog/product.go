package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const (
	SourceETL        = "etl"
	SourceSubmission = "submission"
)

const (
	TrendUp   = "up"
	TrendDown = "down"
	TrendFlat = "flat"
)

var ErrInvalidPayload = errors.New("catalog payload has no items array")

// Product - обогащённая запись каталога, которую пишет ETL и читает поиск.
// Price <= 0 означает, что цена неизвестна.
type Product struct {
	SKU           string    `json:"sku"`
	Name          string    `json:"name"`
	Brand         string    `json:"brand"`
	Category      string    `json:"category"`
	Marketplace   string    `json:"marketplace"`
	URL           string    `json:"url,omitempty"`
	Sold          *int64    `json:"sold,omitempty"`
	Price         int64     `json:"price"`
	Trend         string    `json:"trend"`
	Forecast7     []float64 `json:"forecast7"`
	ChangePercent *float64  `json:"changePercent,omitempty"`
	Direction     string    `json:"direction,omitempty"`
	Accuracy      *float64  `json:"accuracy,omitempty"`
	IsOnSale      bool      `json:"isOnSale"`
	History       []int64   `json:"history,omitempty"`
	Source        string    `json:"source,omitempty"`
}

func (p Product) HasPrice() bool {
	return p.Price > 0
}

func (p Product) SoldValue() int64 {
	if p.Sold == nil {
		return -1
	}
	return *p.Sold
}

// Payload - формат коллекции {items: [...]}, общий для файла и Redis
type Payload struct {
	Items       []Product `json:"items"`
	GeneratedAt time.Time `json:"generatedAt"`
}

func NewPayload(items []Product, generatedAt time.Time) Payload {
	if items == nil {
		items = []Product{}
	}
	return Payload{Items: items, GeneratedAt: generatedAt.UTC()}
}

func (p Payload) Encode() ([]byte, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal catalog payload: %w", err)
	}
	return data, nil
}

// DecodePayload разбирает коллекцию. Обязательно только поле items:
// документ без него считается повреждённым.
func DecodePayload(data []byte) (Payload, error) {
	var raw struct {
		Items       *[]Product `json:"items"`
		GeneratedAt time.Time  `json:"generatedAt"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Payload{}, fmt.Errorf("failed to unmarshal catalog payload: %w", err)
	}
	if raw.Items == nil {
		return Payload{}, ErrInvalidPayload
	}
	return Payload{Items: *raw.Items, GeneratedAt: raw.GeneratedAt}, nil
}
