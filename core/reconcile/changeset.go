package reconcile

import "github.com/shopspring/decimal"

// OpType identifies the kind of change a ChangeOp proposes.
type OpType string

const (
	// OpUpdateQuantity corrects the marketplace stock count for a sku.
	OpUpdateQuantity OpType = "update_quantity"
	// OpUpdatePrice corrects the marketplace price for a sku.
	OpUpdatePrice OpType = "update_price"
	// OpZeroOut sets stock to zero for a sku the supplier no longer lists.
	OpZeroOut OpType = "zero_out"
	// OpFlagNew reports a supplier sku absent from the marketplace.
	// Report-only unless auto-onboarding is enabled downstream.
	OpFlagNew OpType = "flag_new"
	// OpFlagMissing reports a marketplace sku whose supplier record failed
	// validation this run. Always report-only.
	OpFlagMissing OpType = "flag_missing"
)

// ChangeOp is a single proposed modification for one sku.
// Which value fields are populated depends on Type.
type ChangeOp struct {
	// Type specifies the kind of change.
	Type OpType `json:"type"`

	// SKU is the affected stock-keeping unit.
	SKU string `json:"sku"`

	// OldQuantity and NewQuantity are set for update_quantity ops.
	// For zero_out, OldQuantity holds the current marketplace stock.
	OldQuantity int `json:"old_quantity,omitempty"`
	NewQuantity int `json:"new_quantity,omitempty"`

	// OldPrice and NewPrice are set for update_price ops.
	OldPrice decimal.Decimal `json:"old_price,omitempty"`
	NewPrice decimal.Decimal `json:"new_price,omitempty"`

	// Quantity and Price carry the full supplier values for flag_new ops,
	// so the catalog can onboard the item downstream.
	Quantity int             `json:"quantity,omitempty"`
	Price    decimal.Decimal `json:"price,omitempty"`

	// Reason explains flag_missing ops (which validation failed).
	Reason string `json:"reason,omitempty"`
}

// Applyable reports whether the op mutates the marketplace when dispatched.
// Flag ops are informational; flag_new becomes a listing creation only in
// auto-onboard mode.
func (op ChangeOp) Applyable() bool {
	switch op.Type {
	case OpUpdateQuantity, OpUpdatePrice, OpZeroOut:
		return true
	default:
		return false
	}
}

// Changeset is the full ordered set of proposed modifications for one run.
// Ops are sorted ascending by sku; ops sharing a sku are adjacent.
type Changeset struct {
	// Ops contains the proposed changes in deterministic order.
	Ops []ChangeOp `json:"ops"`

	// Summary provides aggregate counts per op kind.
	Summary Summary `json:"summary"`
}

// Summary provides aggregate statistics for a changeset.
type Summary struct {
	// TotalOps is the total number of change ops.
	TotalOps int `json:"total_ops"`

	// QuantityUpdates counts update_quantity ops.
	QuantityUpdates int `json:"quantity_updates"`

	// PriceUpdates counts update_price ops.
	PriceUpdates int `json:"price_updates"`

	// ZeroOuts counts zero_out ops.
	ZeroOuts int `json:"zero_outs"`

	// NewItems counts flag_new ops.
	NewItems int `json:"new_items"`

	// MissingItems counts flag_missing ops.
	MissingItems int `json:"missing_items"`
}

// summarize recounts the ops. Called once when the changeset is built.
func summarize(ops []ChangeOp) Summary {
	s := Summary{TotalOps: len(ops)}
	for _, op := range ops {
		switch op.Type {
		case OpUpdateQuantity:
			s.QuantityUpdates++
		case OpUpdatePrice:
			s.PriceUpdates++
		case OpZeroOut:
			s.ZeroOuts++
		case OpFlagNew:
			s.NewItems++
		case OpFlagMissing:
			s.MissingItems++
		}
	}
	return s
}
