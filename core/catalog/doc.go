// Package catalog defines the canonical item model shared by the supplier
// feed and the marketplace snapshot, plus the normalization step that turns
// raw transport records into validated items.
//
// Normalization is deliberately forgiving: a malformed record becomes a
// RejectReason entry instead of an error, so a single bad row in a feed of
// thousands never aborts a sync run. Rejected skus are excluded from the
// diff and surface only in the final report.
//
// Prices are decimal (shopspring/decimal) end to end. Comparison during
// reconciliation is exact, so any truncation or rounding must happen here,
// before an Item is built.
package catalog
