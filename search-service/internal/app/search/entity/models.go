package entity

import "time"

// Типы событий в топике catalog_events
const (
	EventCatalogPublished = "CATALOG_PUBLISHED"
	EventPriceChanged     = "PRICE_CHANGED"
)

// CatalogEvent - событие etl-service. Поиску нужны только тип и отпечаток
type CatalogEvent struct {
	EventType   string    `json:"event_type"`
	SKU         string    `json:"sku,omitempty"`
	OldPrice    int64     `json:"old_price,omitempty"`
	NewPrice    int64     `json:"new_price,omitempty"`
	Products    int       `json:"products,omitempty"`
	Fingerprint string    `json:"fingerprint,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}
