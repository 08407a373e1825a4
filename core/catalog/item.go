package catalog

import "github.com/shopspring/decimal"

// Source identifies which side of the sync a record came from.
type Source string

const (
	SourceSupplier    Source = "supplier"
	SourceMarketplace Source = "marketplace"
)

// RawRecord is a transport-neutral inventory record as delivered by a feed
// source or the marketplace client. Quantity and Price are kept as strings
// so the core stays agnostic to the wire format; parsing happens in Normalize.
type RawRecord struct {
	// SKU is the stock-keeping unit identifier.
	SKU string `json:"sku"`

	// Quantity is the stock count as delivered, e.g. "10".
	Quantity string `json:"quantity"`

	// Price is the unit price as delivered, e.g. "5990".
	Price string `json:"price"`
}

// Item is a validated inventory record. SKU is the sole identity key.
type Item struct {
	// SKU is the stock-keeping unit identifier, unique per source.
	SKU string `json:"sku"`

	// Quantity is the available stock count. Never negative.
	Quantity int `json:"quantity"`

	// Price is the unit price in a currency-agnostic decimal unit.
	// Always positive.
	Price decimal.Decimal `json:"price"`

	// Source records which side of the sync the item came from.
	Source Source `json:"source"`
}

// RejectReason records why a raw record failed normalization.
// It is data, not an error: rejected records are reported, never fatal.
type RejectReason struct {
	// SKU is the identifier of the rejected record. May be empty when the
	// record itself lacked one.
	SKU string `json:"sku"`

	// Source is the side of the sync the record came from.
	Source Source `json:"source"`

	// Field names the offending field: "sku", "quantity" or "price".
	Field string `json:"field"`

	// Detail is a human-readable description of the problem.
	Detail string `json:"detail"`
}
