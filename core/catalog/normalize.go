package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Normalize validates raw records from a single source and builds the
// canonical sku index. It is a pure function: malformed records land in the
// returned reject list and never abort the run.
//
// A record is rejected when its sku is empty or duplicates an earlier record
// from the same source, its quantity is negative or non-numeric, or its price
// is non-positive or non-numeric. Duplicates keep the first occurrence.
func Normalize(records []RawRecord, source Source) (map[string]Item, []RejectReason) {
	items := make(map[string]Item, len(records))
	var rejects []RejectReason

	for _, rec := range records {
		sku := strings.TrimSpace(rec.SKU)
		if sku == "" {
			rejects = append(rejects, RejectReason{
				SKU:    rec.SKU,
				Source: source,
				Field:  "sku",
				Detail: "empty sku",
			})
			continue
		}

		if _, exists := items[sku]; exists {
			rejects = append(rejects, RejectReason{
				SKU:    sku,
				Source: source,
				Field:  "sku",
				Detail: "duplicate sku, first occurrence kept",
			})
			continue
		}

		quantity, err := strconv.Atoi(strings.TrimSpace(rec.Quantity))
		if err != nil {
			rejects = append(rejects, RejectReason{
				SKU:    sku,
				Source: source,
				Field:  "quantity",
				Detail: fmt.Sprintf("non-numeric quantity %q", rec.Quantity),
			})
			continue
		}
		if quantity < 0 {
			rejects = append(rejects, RejectReason{
				SKU:    sku,
				Source: source,
				Field:  "quantity",
				Detail: fmt.Sprintf("negative quantity %d", quantity),
			})
			continue
		}

		price, err := decimal.NewFromString(strings.TrimSpace(rec.Price))
		if err != nil {
			rejects = append(rejects, RejectReason{
				SKU:    sku,
				Source: source,
				Field:  "price",
				Detail: fmt.Sprintf("non-numeric price %q", rec.Price),
			})
			continue
		}
		if !price.IsPositive() {
			rejects = append(rejects, RejectReason{
				SKU:    sku,
				Source: source,
				Field:  "price",
				Detail: fmt.Sprintf("non-positive price %s", price),
			})
			continue
		}

		items[sku] = Item{
			SKU:      sku,
			Quantity: quantity,
			Price:    price,
			Source:   source,
		}
	}

	return items, rejects
}

// RejectedSKUs collapses a reject list into a sku set for diff exclusion.
// Records rejected for an empty sku carry no usable key and are skipped.
func RejectedSKUs(rejects []RejectReason) map[string]struct{} {
	set := make(map[string]struct{}, len(rejects))
	for _, r := range rejects {
		if strings.TrimSpace(r.SKU) == "" {
			continue
		}
		set[strings.TrimSpace(r.SKU)] = struct{}{}
	}
	return set
}
