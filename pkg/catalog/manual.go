package catalog

import "time"

const (
	DatasetTypeSubmission  = "submission"
	DatasetTypePriceUpdate = "price-update"
)

// Submission - товар, добавленный пользователем вручную
type Submission struct {
	ID          string    `json:"id" bson:"_id"`
	Timestamp   time.Time `json:"timestamp" bson:"timestamp"`
	Name        string    `json:"name" bson:"name"`
	Brand       string    `json:"brand" bson:"brand"`
	Category    string    `json:"category" bson:"category"`
	Marketplace string    `json:"marketplace" bson:"marketplace"`
	URL         string    `json:"url,omitempty" bson:"url,omitempty"`
	Price       int64     `json:"price" bson:"price"`
	Sold        *int64    `json:"sold,omitempty" bson:"sold,omitempty"`
}

// SKU строится так же, как у ETL, но из brand-name-marketplace
func (s Submission) SKU() string {
	return Slug(s.Brand + "-" + s.Name + "-" + s.Marketplace)
}

// PriceCorrection - сообщение пользователя о новой цене товара
type PriceCorrection struct {
	ID            string    `json:"id" bson:"_id"`
	Timestamp     time.Time `json:"timestamp" bson:"timestamp"`
	SKU           string    `json:"sku" bson:"sku"`
	NewPrice      int64     `json:"newPrice" bson:"new_price"`
	PreviousPrice *int64    `json:"previousPrice,omitempty" bson:"previous_price,omitempty"`
	ProductName   string    `json:"productName,omitempty" bson:"product_name,omitempty"`
	Marketplace   string    `json:"marketplace,omitempty" bson:"marketplace,omitempty"`
	URL           string    `json:"url,omitempty" bson:"url,omitempty"`
	Note          string    `json:"note,omitempty" bson:"note,omitempty"`
}

// DatasetRecord - строка общего журнала ручных изменений (submission | price-update)
type DatasetRecord struct {
	Type          string    `json:"type" bson:"type"`
	Timestamp     time.Time `json:"timestamp" bson:"timestamp"`
	SKU           string    `json:"sku,omitempty" bson:"sku,omitempty"`
	Name          string    `json:"name,omitempty" bson:"name,omitempty"`
	Brand         string    `json:"brand,omitempty" bson:"brand,omitempty"`
	Category      string    `json:"category,omitempty" bson:"category,omitempty"`
	Marketplace   string    `json:"marketplace,omitempty" bson:"marketplace,omitempty"`
	URL           string    `json:"url,omitempty" bson:"url,omitempty"`
	Note          string    `json:"note,omitempty" bson:"note,omitempty"`
	Price         *int64    `json:"price,omitempty" bson:"price,omitempty"`
	NewPrice      *int64    `json:"newPrice,omitempty" bson:"new_price,omitempty"`
	PreviousPrice *int64    `json:"previousPrice,omitempty" bson:"previous_price,omitempty"`
	Sold          *int64    `json:"sold,omitempty" bson:"sold,omitempty"`
}

func (s Submission) DatasetRecord() DatasetRecord {
	price := s.Price
	return DatasetRecord{
		Type:        DatasetTypeSubmission,
		Timestamp:   s.Timestamp,
		SKU:         s.SKU(),
		Name:        s.Name,
		Brand:       s.Brand,
		Category:    s.Category,
		Marketplace: s.Marketplace,
		URL:         s.URL,
		Price:       &price,
		Sold:        s.Sold,
	}
}

func (c PriceCorrection) DatasetRecord() DatasetRecord {
	newPrice := c.NewPrice
	return DatasetRecord{
		Type:          DatasetTypePriceUpdate,
		Timestamp:     c.Timestamp,
		SKU:           c.SKU,
		Name:          c.ProductName,
		Marketplace:   c.Marketplace,
		URL:           c.URL,
		Note:          c.Note,
		NewPrice:      &newPrice,
		PreviousPrice: c.PreviousPrice,
	}
}
