package etl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sold(v int64) *int64 {
	return &v
}

func TestAccumulator_SameDateOverwrites(t *testing.T) {
	// Arrange
	acc := NewAccumulator()

	// Act
	acc.Add(NormalizedRow{SKU: "a", Name: "A", Price: 100, Date: "20240101"})
	acc.Add(NormalizedRow{SKU: "a", Name: "A", Price: 120, Date: "20240101"})

	// Assert
	products := acc.Finalize()
	require.Len(t, products, 1)
	assert.Equal(t, []int64{120}, products[0].Series)
	assert.Equal(t, int64(120), products[0].LatestPrice)
}

func TestAccumulator_OrdersByDateRegardlessOfArrival(t *testing.T) {
	acc := NewAccumulator()
	acc.Add(NormalizedRow{SKU: "a", Price: 300, Date: "20240301"})
	acc.Add(NormalizedRow{SKU: "a", Price: 100, Date: "20240101"})
	acc.Add(NormalizedRow{SKU: "a", Price: 999})
	acc.Add(NormalizedRow{SKU: "a", Price: 200, Date: "20240201"})
	acc.Add(NormalizedRow{SKU: "a", Price: 998})

	products := acc.Finalize()

	require.Len(t, products, 1)
	assert.Equal(t, []int64{100, 200, 300, 999, 998}, products[0].Series)
	assert.Equal(t, int64(998), products[0].LatestPrice)
}

func TestAccumulator_OverwriteKeepsSequence(t *testing.T) {
	acc := NewAccumulator()
	acc.Add(NormalizedRow{SKU: "a", Price: 1})
	acc.Add(NormalizedRow{SKU: "a", Price: 2, Date: "20240101"})
	acc.Add(NormalizedRow{SKU: "a", Price: 3})
	acc.Add(NormalizedRow{SKU: "a", Price: 4, Date: "20240101"})

	products := acc.Finalize()

	assert.Equal(t, []int64{4, 1, 3}, products[0].Series)
}

func TestAccumulator_MergeMeta(t *testing.T) {
	// Arrange
	acc := NewAccumulator()
	acc.Add(NormalizedRow{SKU: "a", Name: "Vivobook", Brand: "Unknown", Category: "Laptop", Marketplace: "-", URL: "https://x", Sold: sold(10), Price: 1})

	// Act
	acc.Add(NormalizedRow{SKU: "a", Name: "Vivobook 14 OLED", Brand: "ASUS", Category: "Lapto", Marketplace: "Shopee", URL: " https://x/long ", Price: 2})
	acc.Add(NormalizedRow{SKU: "a", Name: "Unknown", Brand: "Asus", Category: "Laptop", Marketplace: "", Sold: sold(7), Price: 3})
	acc.Add(NormalizedRow{SKU: "a", Name: "Vivobook 14 OLEX", Brand: "ASUS", Sold: sold(25), Price: 4})

	// Assert
	meta := acc.Finalize()[0].Meta
	assert.Equal(t, "Vivobook 14 OLED", meta.Name, "equal length keeps current")
	assert.Equal(t, "ASUS", meta.Brand)
	assert.Equal(t, "Laptop", meta.Category)
	assert.Equal(t, "Shopee", meta.Marketplace)
	assert.Equal(t, "https://x/long", meta.URL)
	require.NotNil(t, meta.Sold)
	assert.Equal(t, int64(25), *meta.Sold)
}

func TestAccumulator_SoldTakenWhenCurrentMissing(t *testing.T) {
	acc := NewAccumulator()
	acc.Add(NormalizedRow{SKU: "a", Price: 1})
	acc.Add(NormalizedRow{SKU: "a", Price: 2, Sold: sold(3)})

	meta := acc.Finalize()[0].Meta

	require.NotNil(t, meta.Sold)
	assert.Equal(t, int64(3), *meta.Sold)
}

func TestAccumulator_FinalizeSortedBySku(t *testing.T) {
	acc := NewAccumulator()
	acc.Add(NormalizedRow{SKU: "c", Price: 1})
	acc.Add(NormalizedRow{SKU: "a", Price: 1})
	acc.Add(NormalizedRow{SKU: "b", Price: 1})

	products := acc.Finalize()

	require.Len(t, products, 3)
	assert.Equal(t, 3, acc.Len())
	assert.Equal(t, "a", products[0].Meta.SKU)
	assert.Equal(t, "b", products[1].Meta.SKU)
	assert.Equal(t, "c", products[2].Meta.SKU)
}

func TestAccumulator_Empty(t *testing.T) {
	assert.Empty(t, NewAccumulator().Finalize())
}
