// Package reconcile computes the difference between a supplier inventory
// snapshot and a marketplace catalog snapshot, and slices the result into
// size-bounded batches for dispatch.
//
// The engine is set-based and deterministic: it builds the union of skus
// from both sides, emits at most one op per sku per kind, and orders the
// changeset ascending by sku so that repeated runs over identical snapshots
// produce byte-identical diffs.
//
// # Policy
//
// A sku present on both sides gets an UpdateQuantity and/or UpdatePrice op
// when the values differ (independent ops, both may be emitted). A sku the
// supplier no longer lists is zeroed out, never delisted. A sku only the
// supplier has is flagged new; the engine itself never creates listings.
// A marketplace sku whose supplier record failed validation is flagged
// missing rather than zeroed, so operators can tell "out of stock" from
// "could not validate" in the report.
//
// Price comparison is exact decimal equality. Rounding belongs in
// normalization, not here.
package reconcile
