package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNormalize_ValidRecords(t *testing.T) {
	records := []RawRecord{
		{SKU: "W1", Quantity: "10", Price: "6000"},
		{SKU: "W2", Quantity: "0", Price: "99.90"},
	}

	items, rejects := Normalize(records, SourceSupplier)
	assert.Len(t, items, 2)
	assert.Empty(t, rejects)

	assert.Equal(t, 10, items["W1"].Quantity)
	assert.True(t, items["W1"].Price.Equal(decimal.NewFromInt(6000)))
	assert.Equal(t, SourceSupplier, items["W1"].Source)

	assert.Equal(t, 0, items["W2"].Quantity)
	assert.True(t, items["W2"].Price.Equal(decimal.RequireFromString("99.90")))
}

func TestNormalize_RejectsMalformed(t *testing.T) {
	tests := []struct {
		name   string
		record RawRecord
		field  string
	}{
		{name: "empty sku", record: RawRecord{SKU: "", Quantity: "1", Price: "10"}, field: "sku"},
		{name: "blank sku", record: RawRecord{SKU: "   ", Quantity: "1", Price: "10"}, field: "sku"},
		{name: "non-numeric quantity", record: RawRecord{SKU: "W1", Quantity: "many", Price: "10"}, field: "quantity"},
		{name: "negative quantity", record: RawRecord{SKU: "W1", Quantity: "-3", Price: "10"}, field: "quantity"},
		{name: "non-numeric price", record: RawRecord{SKU: "W1", Quantity: "1", Price: "cheap"}, field: "price"},
		{name: "zero price", record: RawRecord{SKU: "W1", Quantity: "1", Price: "0"}, field: "price"},
		{name: "negative price", record: RawRecord{SKU: "W1", Quantity: "1", Price: "-5"}, field: "price"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, rejects := Normalize([]RawRecord{tt.record}, SourceMarketplace)
			assert.Empty(t, items)
			assert.Len(t, rejects, 1)
			assert.Equal(t, tt.field, rejects[0].Field)
			assert.Equal(t, SourceMarketplace, rejects[0].Source)
		})
	}
}

func TestNormalize_DuplicateKeepsFirst(t *testing.T) {
	records := []RawRecord{
		{SKU: "W1", Quantity: "10", Price: "100"},
		{SKU: "W1", Quantity: "20", Price: "200"},
		{SKU: "W1", Quantity: "30", Price: "300"},
	}

	items, rejects := Normalize(records, SourceSupplier)
	assert.Len(t, items, 1)
	assert.Equal(t, 10, items["W1"].Quantity)

	// Both later occurrences are recorded as rejects.
	assert.Len(t, rejects, 2)
	for _, r := range rejects {
		assert.Equal(t, "W1", r.SKU)
		assert.Equal(t, "sku", r.Field)
	}
}

func TestNormalize_PartialResult(t *testing.T) {
	records := []RawRecord{
		{SKU: "W1", Quantity: "10", Price: "100"},
		{SKU: "W2", Quantity: "oops", Price: "100"},
		{SKU: "W3", Quantity: "5", Price: "250"},
	}

	items, rejects := Normalize(records, SourceSupplier)
	assert.Len(t, items, 2)
	assert.Len(t, rejects, 1)
	assert.Equal(t, "W2", rejects[0].SKU)

	// Every input record is accounted for exactly once.
	assert.Equal(t, len(records), len(items)+len(rejects))
}

func TestRejectedSKUs(t *testing.T) {
	rejects := []RejectReason{
		{SKU: "W1", Field: "quantity"},
		{SKU: "W1", Field: "price"},
		{SKU: "", Field: "sku"},
		{SKU: "W2", Field: "price"},
	}

	set := RejectedSKUs(rejects)
	assert.Len(t, set, 2)
	assert.Contains(t, set, "W1")
	assert.Contains(t, set, "W2")
}
