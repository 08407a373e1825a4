package reconcile

import (
	"sort"

	"marketsync/core/catalog"
)

// Reconcile computes the changeset that brings the marketplace in line with
// the supplier snapshot. Both inputs are normalized sku indices; the reject
// sets name skus that failed normalization on either side and must not be
// diffed.
//
// The result is deterministic: identical snapshots always yield the same
// ops in the same order (ascending by sku, quantity before price per sku).
func Reconcile(
	supplier map[string]catalog.Item,
	marketplace map[string]catalog.Item,
	supplierRejected map[string]struct{},
	marketplaceRejected map[string]struct{},
) Changeset {
	keys := unionKeys(supplier, marketplace)

	ops := make([]ChangeOp, 0, len(keys))
	for _, sku := range keys {
		supItem, inSupplier := supplier[sku]
		mktItem, inMarketplace := marketplace[sku]

		switch {
		case inSupplier && inMarketplace:
			if mktItem.Quantity != supItem.Quantity {
				ops = append(ops, ChangeOp{
					Type:        OpUpdateQuantity,
					SKU:         sku,
					OldQuantity: mktItem.Quantity,
					NewQuantity: supItem.Quantity,
				})
			}
			if !mktItem.Price.Equal(supItem.Price) {
				ops = append(ops, ChangeOp{
					Type:     OpUpdatePrice,
					SKU:      sku,
					OldPrice: mktItem.Price,
					NewPrice: supItem.Price,
				})
			}

		case inMarketplace:
			// Supplier side is absent. A rejected supplier record means the
			// item could not be validated this run; report it instead of
			// zeroing stock on bad data.
			if _, rejected := supplierRejected[sku]; rejected {
				ops = append(ops, ChangeOp{
					Type:   OpFlagMissing,
					SKU:    sku,
					Reason: "supplier record failed validation",
				})
				continue
			}
			ops = append(ops, ChangeOp{
				Type:        OpZeroOut,
				SKU:         sku,
				OldQuantity: mktItem.Quantity,
			})

		case inSupplier:
			// A rejected marketplace record is not a missing listing; skip
			// the sku entirely and let the reject entry account for it.
			if _, rejected := marketplaceRejected[sku]; rejected {
				continue
			}
			ops = append(ops, ChangeOp{
				Type:     OpFlagNew,
				SKU:      sku,
				Quantity: supItem.Quantity,
				Price:    supItem.Price,
			})
		}
	}

	return Changeset{Ops: ops, Summary: summarize(ops)}
}

// unionKeys returns the sorted union of skus from both snapshots.
func unionKeys(supplier, marketplace map[string]catalog.Item) []string {
	union := make(map[string]struct{}, len(supplier)+len(marketplace))
	for sku := range supplier {
		union[sku] = struct{}{}
	}
	for sku := range marketplace {
		union[sku] = struct{}{}
	}

	keys := make([]string, 0, len(union))
	for sku := range union {
		keys = append(keys, sku)
	}
	sort.Strings(keys)
	return keys
}
