package etl

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"miniecom/pkg/catalog"
)

// NormalizedRow - одна строка CSV после приведения к общей схеме
type NormalizedRow struct {
	SKU         string
	Name        string
	Brand       string
	Category    string
	Marketplace string
	Price       int64
	Date        string // yyyymmdd, пусто если неизвестна
	URL         string
	Sold        *int64
}

var (
	nameKeys  = []string{"name", "product_name", "title"}
	brandKeys = []string{"brand"}
	catKeys   = []string{"category", "kategori"}
	priceKeys = []string{"price", "harga", "min_price", "max_price"}
	mpKeys    = []string{"marketplace", "source"}
	urlKeys   = []string{"url", "product_url", "link", "productLink", "product_link", "link_produk"}
	soldKeys  = []string{"sold", "sold_count", "sold_quantity", "terjual"}
	dateKeys  = []string{"date", "tanggal", "updated_at", "last_update", "last_updated"}
)

const (
	unknownValue    = "Unknown"
	defaultCategory = "Laptop"
)

var ErrMissingHeader = errors.New("csv has no header row")

// Normalize приводит запись CSV (заголовок -> значение) к NormalizedRow.
// Возвращает false для строк без имени или без положительной цены.
func Normalize(record map[string]string, hint Hint) (NormalizedRow, bool) {
	name := pick(record, nameKeys, unknownValue)
	if name == "" {
		return NormalizedRow{}, false
	}

	price, ok := parsePositiveInt(pick(record, priceKeys, ""))
	if !ok || price <= 0 {
		return NormalizedRow{}, false
	}

	brand := pick(record, brandKeys, fallback(hint.Brand, unknownValue))

	row := NormalizedRow{
		Name:        name,
		Brand:       brand,
		Category:    pick(record, catKeys, defaultCategory),
		Marketplace: pick(record, mpKeys, hint.Marketplace),
		Price:       price,
		URL:         pick(record, urlKeys, ""),
		Date:        hint.Date,
	}

	if sold, ok := parsePositiveInt(pick(record, soldKeys, "")); ok {
		row.Sold = &sold
	}

	for _, key := range dateKeys {
		if date, ok := ParseDate(record[key]); ok {
			row.Date = date
			break
		}
	}

	if sku := strings.TrimSpace(record["sku"]); sku != "" {
		row.SKU = catalog.Slug(sku)
	} else {
		row.SKU = catalog.Slug(brand + "-" + name + "-" + row.Date)
	}

	return row, true
}

// RowsFromCSV разбирает CSV с заголовком. Пустой текст - пустой результат без ошибки.
func RowsFromCSV(text []byte, hint Hint) ([]NormalizedRow, error) {
	rows, _, err := parseCSV(text, hint)
	return rows, err
}

// parseCSV дополнительно возвращает количество отброшенных строк
func parseCSV(text []byte, hint Hint) ([]NormalizedRow, int, error) {
	if len(bytes.TrimSpace(text)) == 0 {
		return nil, 0, nil
	}

	reader := csv.NewReader(bytes.NewReader(text))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, 0, ErrMissingHeader
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read csv header: %w", err)
	}
	for i, key := range header {
		if i == 0 {
			key = strings.TrimPrefix(key, "\uFEFF")
		}
		header[i] = strings.TrimSpace(key)
	}

	var rows []NormalizedRow
	dropped := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("failed to read csv record: %w", err)
		}
		if isBlank(record) {
			continue
		}

		values := make(map[string]string, len(header))
		for i, key := range header {
			if i < len(record) && key != "" {
				values[key] = strings.TrimSpace(record[i])
			}
		}

		row, ok := Normalize(values, hint)
		if !ok {
			dropped++
			continue
		}
		rows = append(rows, row)
	}

	return rows, dropped, nil
}

func pick(record map[string]string, keys []string, def string) string {
	for _, key := range keys {
		if v := strings.TrimSpace(record[key]); v != "" {
			return v
		}
	}
	return def
}

func fallback(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

// parsePositiveInt оставляет только цифры: "Rp 10.999.000" -> 10999000
func parsePositiveInt(raw string) (int64, bool) {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0, false
	}
	n, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
