package reconcile

import "errors"

// ErrInvalidBatchSize is returned by Split when maxBatchSize is not positive.
// This is a configuration fault and should be caught before any network work.
var ErrInvalidBatchSize = errors.New("max batch size must be positive")

// Batch is a size-bounded slice of a changeset submitted as one API call.
type Batch struct {
	// Ops is the ordered run of change ops in this batch.
	Ops []ChangeOp `json:"ops"`
}

// Split partitions a changeset into batches of at most maxBatchSize ops,
// preserving order with no loss or duplication.
//
// Ops sharing a sku are never split across batches: concurrent dispatch
// treats batches as independent, so a sku spanning two batches could see
// its quantity and price updates race. Because the changeset is sorted by
// sku, same-sku ops are adjacent and the pinning only affects where a batch
// boundary falls. A batch exceeds maxBatchSize only in the degenerate case
// where a single sku's ops alone exceed it.
func Split(cs Changeset, maxBatchSize int) ([]Batch, error) {
	if maxBatchSize <= 0 {
		return nil, ErrInvalidBatchSize
	}

	if len(cs.Ops) == 0 {
		return nil, nil
	}

	var batches []Batch
	var current []ChangeOp

	i := 0
	for i < len(cs.Ops) {
		// Collect the full run of ops for this sku.
		j := i + 1
		for j < len(cs.Ops) && cs.Ops[j].SKU == cs.Ops[i].SKU {
			j++
		}
		run := cs.Ops[i:j]

		if len(current) > 0 && len(current)+len(run) > maxBatchSize {
			batches = append(batches, Batch{Ops: current})
			current = nil
		}
		current = append(current, run...)
		i = j
	}

	if len(current) > 0 {
		batches = append(batches, Batch{Ops: current})
	}

	return batches, nil
}
