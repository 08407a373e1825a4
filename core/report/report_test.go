package report

import (
	"testing"
	"time"

	"marketsync/core/catalog"
	"marketsync/core/reconcile"

	"github.com/stretchr/testify/assert"
)

func TestAggregate_CountInvariant(t *testing.T) {
	cs := reconcile.Changeset{
		Ops: []reconcile.ChangeOp{
			{Type: reconcile.OpZeroOut, SKU: "A"},
			{Type: reconcile.OpUpdatePrice, SKU: "B"},
		},
		Summary: reconcile.Summary{TotalOps: 2, ZeroOuts: 1, PriceUpdates: 1},
	}
	outcomes := []OutcomeRecord{
		{SKU: "A", Op: reconcile.OpZeroOut, Status: StatusApplied, Attempts: 1},
		{SKU: "B", Op: reconcile.OpUpdatePrice, Status: StatusFailed, ErrorKind: KindRejected, Attempts: 1},
	}
	rejects := []catalog.RejectReason{
		{SKU: "C", Source: catalog.SourceSupplier, Field: "price", Detail: "non-numeric"},
	}

	started := time.Now().Add(-time.Minute)
	finished := time.Now()

	rep, err := Aggregate("run-1", started, finished, rejects, cs, outcomes, false)
	assert.NoError(t, err)

	assert.Equal(t, len(cs.Ops), len(rep.Records))
	assert.Equal(t, 1, rep.Summary.Applied)
	assert.Equal(t, 1, rep.Summary.Failed)
	assert.Equal(t, 0, rep.Summary.Skipped)
	assert.Equal(t, 1, rep.Summary.Rejects)
	assert.False(t, rep.Partial)

	// Rejects are carried through, never dropped.
	assert.Equal(t, rejects, rep.Rejects)
}

func TestAggregate_MismatchedOutcomeCount(t *testing.T) {
	cs := reconcile.Changeset{
		Ops: []reconcile.ChangeOp{{Type: reconcile.OpZeroOut, SKU: "A"}},
	}

	rep, err := Aggregate("run-1", time.Now(), time.Now(), nil, cs, nil, false)
	assert.Error(t, err)
	assert.Nil(t, rep)
}

func TestAggregate_PartialRun(t *testing.T) {
	cs := reconcile.Changeset{
		Ops: []reconcile.ChangeOp{
			{Type: reconcile.OpZeroOut, SKU: "A"},
			{Type: reconcile.OpZeroOut, SKU: "B"},
		},
	}
	outcomes := []OutcomeRecord{
		{SKU: "A", Op: reconcile.OpZeroOut, Status: StatusApplied, Attempts: 1},
		{SKU: "B", Op: reconcile.OpZeroOut, Status: StatusSkipped, ErrorKind: KindCanceled},
	}

	rep, err := Aggregate("run-1", time.Now(), time.Now(), nil, cs, outcomes, true)
	assert.NoError(t, err)
	assert.True(t, rep.Partial)
	assert.Equal(t, 1, rep.Summary.Skipped)
}
