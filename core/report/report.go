package report

import (
	"fmt"
	"time"

	"marketsync/core/catalog"
	"marketsync/core/reconcile"
)

// OutcomeStatus classifies what happened to a single change op.
type OutcomeStatus string

const (
	// StatusApplied means the marketplace accepted the op.
	StatusApplied OutcomeStatus = "applied"
	// StatusFailed means the op was not applied: transient failure after
	// exhausted retries, or a structural rejection.
	StatusFailed OutcomeStatus = "failed"
	// StatusSkipped means the op was never submitted: report-only flag ops,
	// or ops left behind by cancellation.
	StatusSkipped OutcomeStatus = "skipped"
)

// Error kinds recorded on failed and skipped outcomes.
const (
	// KindTransient marks a network-class failure that exhausted retries.
	KindTransient = "transient"
	// KindRejected marks a structural per-item rejection by the marketplace.
	KindRejected = "rejected"
	// KindCanceled marks ops abandoned by run cancellation.
	KindCanceled = "canceled"
	// KindReportOnly marks flag ops that are informational by policy.
	KindReportOnly = "report_only"
)

// OutcomeRecord is the dispatch result for one change op.
type OutcomeRecord struct {
	// SKU is the affected stock-keeping unit.
	SKU string `json:"sku"`

	// Op is the kind of change that was attempted.
	Op reconcile.OpType `json:"op"`

	// Status is the terminal outcome.
	Status OutcomeStatus `json:"status"`

	// ErrorKind classifies failures and skips; empty for applied ops.
	ErrorKind string `json:"error_kind,omitempty"`

	// Attempts counts batch submissions that covered this op.
	Attempts int `json:"attempts"`
}

// SyncReport is the aggregate result of one reconciliation run.
type SyncReport struct {
	// RunID uniquely identifies the run.
	RunID string `json:"run_id"`

	// StartedAt and FinishedAt bound the run.
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	// Partial is true when the run was cancelled before all batches were
	// dispatched. Outcomes collected so far are kept.
	Partial bool `json:"partial"`

	// Records holds one outcome per change op in the changeset.
	Records []OutcomeRecord `json:"records"`

	// Rejects carries every normalization reject from both sources.
	Rejects []catalog.RejectReason `json:"rejects"`

	// Changeset summarizes what the reconciler proposed.
	Changeset reconcile.Summary `json:"changeset"`

	// Summary provides aggregate outcome counts.
	Summary ReportSummary `json:"summary"`
}

// ReportSummary provides aggregate counts over a report's records.
type ReportSummary struct {
	// Applied counts successfully applied ops.
	Applied int `json:"applied"`

	// Failed counts ops that could not be applied.
	Failed int `json:"failed"`

	// Skipped counts ops that were never submitted.
	Skipped int `json:"skipped"`

	// Rejects counts normalization rejects.
	Rejects int `json:"rejects"`
}

// Aggregate merges rejects, changeset metadata, and dispatch outcomes into
// the final report. It enforces the accounting invariant that every change
// op has exactly one outcome record.
func Aggregate(
	runID string,
	startedAt, finishedAt time.Time,
	rejects []catalog.RejectReason,
	cs reconcile.Changeset,
	outcomes []OutcomeRecord,
	partial bool,
) (*SyncReport, error) {
	if len(outcomes) != len(cs.Ops) {
		return nil, fmt.Errorf("outcome count %d does not match changeset size %d", len(outcomes), len(cs.Ops))
	}

	summary := ReportSummary{Rejects: len(rejects)}
	for _, rec := range outcomes {
		switch rec.Status {
		case StatusApplied:
			summary.Applied++
		case StatusFailed:
			summary.Failed++
		case StatusSkipped:
			summary.Skipped++
		}
	}

	return &SyncReport{
		RunID:      runID,
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
		Partial:    partial,
		Records:    outcomes,
		Rejects:    rejects,
		Changeset:  cs.Summary,
		Summary:    summary,
	}, nil
}
