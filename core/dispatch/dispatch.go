package dispatch

import (
	"context"
	"sync"

	"marketsync/core/reconcile"
	"marketsync/core/report"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ItemResult is the marketplace's verdict on a single sku within a batch.
type ItemResult struct {
	// SKU is the stock-keeping unit the verdict applies to.
	SKU string `json:"sku"`

	// Accepted is false when the marketplace rejected the sku structurally
	// (e.g. unknown listing).
	Accepted bool `json:"accepted"`

	// ErrorKind describes the rejection when Accepted is false.
	ErrorKind string `json:"error_kind,omitempty"`
}

// BatchResult is the per-item outcome list for one accepted batch call.
// Skus absent from Items are considered accepted.
type BatchResult struct {
	Items []ItemResult `json:"items"`
}

// MarketplaceClient is the write side of the marketplace consumed by the
// dispatcher. Implementations wrap failures they consider retryable in
// TransientError.
type MarketplaceClient interface {
	// ApplyBatch submits a bulk stock/price update. A returned error means
	// the whole batch failed; otherwise the result accounts per item.
	ApplyBatch(ctx context.Context, batch reconcile.Batch) (*BatchResult, error)

	// CreateListing onboards a new item. Only invoked for flag_new ops in
	// auto-onboard mode.
	CreateListing(ctx context.Context, sku string, quantity int, price decimal.Decimal) error
}

// Options controls dispatch behavior for one run.
type Options struct {
	// Retry bounds whole-batch retries.
	Retry RetryPolicy

	// AutoOnboard turns flag_new ops into listing creations instead of
	// report-only entries.
	AutoOnboard bool

	// MaxConcurrentBatches bounds parallel batch submission. Values below
	// two keep the sequential default.
	MaxConcurrentBatches int
}

// Result carries dispatch outcomes back to the aggregator.
type Result struct {
	// Outcomes holds one record per op, in changeset order.
	Outcomes []report.OutcomeRecord

	// Partial is true when cancellation stopped the run before all batches
	// were submitted.
	Partial bool
}

// Dispatch submits every batch and returns one outcome per op. A failed
// batch never aborts the run; cancellation yields a partial result with the
// outcomes collected so far.
func Dispatch(ctx context.Context, batches []reconcile.Batch, client MarketplaceClient, opts Options, log *zap.Logger) Result {
	if log == nil {
		log = zap.NewNop()
	}

	if opts.MaxConcurrentBatches > 1 && len(batches) > 1 {
		return dispatchConcurrent(ctx, batches, client, opts, log)
	}
	return dispatchSequential(ctx, batches, client, opts, log)
}

func dispatchSequential(ctx context.Context, batches []reconcile.Batch, client MarketplaceClient, opts Options, log *zap.Logger) Result {
	var res Result
	for i, batch := range batches {
		if ctx.Err() != nil {
			res.Partial = true
			res.Outcomes = append(res.Outcomes, skippedOutcomes(batches[i:])...)
			log.Warn("dispatch cancelled", zap.Int("batches_remaining", len(batches)-i))
			return res
		}
		res.Outcomes = append(res.Outcomes, processBatch(ctx, batch, client, opts, log)...)
	}
	return res
}

// dispatchConcurrent submits up to MaxConcurrentBatches batches at a time.
// Each worker writes only its own slot of the per-batch result table, so no
// shared accumulator needs locking; outcomes are merged in batch order once
// all workers join.
func dispatchConcurrent(ctx context.Context, batches []reconcile.Batch, client MarketplaceClient, opts Options, log *zap.Logger) Result {
	workers := opts.MaxConcurrentBatches
	if workers > len(batches) {
		workers = len(batches)
	}

	perBatch := make([][]report.OutcomeRecord, len(batches))
	cancelled := make([]bool, len(batches))

	indexCh := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)

	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range indexCh {
				if ctx.Err() != nil {
					perBatch[i] = skippedOutcomes(batches[i : i+1])
					cancelled[i] = true
					continue
				}
				perBatch[i] = processBatch(ctx, batches[i], client, opts, log)
			}
		}()
	}

	for i := range batches {
		indexCh <- i
	}
	close(indexCh)
	wg.Wait()

	var res Result
	for i := range batches {
		res.Outcomes = append(res.Outcomes, perBatch[i]...)
		if cancelled[i] {
			res.Partial = true
		}
	}
	return res
}

// processBatch submits one batch and returns an outcome per op, preserving
// op order. Flag ops are resolved locally; applyable ops go through the
// bulk-update call with whole-batch retry.
func processBatch(ctx context.Context, batch reconcile.Batch, client MarketplaceClient, opts Options, log *zap.Logger) []report.OutcomeRecord {
	applyable := make([]reconcile.ChangeOp, 0, len(batch.Ops))
	for _, op := range batch.Ops {
		if op.Applyable() {
			applyable = append(applyable, op)
		}
	}

	applied := applyOps(ctx, applyable, client, opts.Retry, log)

	outcomes := make([]report.OutcomeRecord, 0, len(batch.Ops))
	next := 0
	for _, op := range batch.Ops {
		if op.Applyable() {
			outcomes = append(outcomes, applied[next])
			next++
			continue
		}
		outcomes = append(outcomes, flagOutcome(ctx, op, client, opts, log))
	}
	return outcomes
}

// applyOps runs the retry loop for the applyable subset of a batch.
func applyOps(ctx context.Context, ops []reconcile.ChangeOp, client MarketplaceClient, policy RetryPolicy, log *zap.Logger) []report.OutcomeRecord {
	if len(ops) == 0 {
		return nil
	}

	budget := policy.attempts()
	for attempt := 1; ; attempt++ {
		res, err := client.ApplyBatch(ctx, reconcile.Batch{Ops: ops})
		if err == nil {
			return itemOutcomes(ops, res, attempt)
		}

		if IsTransient(err) && attempt < budget {
			log.Warn("batch submission failed, retrying",
				zap.Int("attempt", attempt),
				zap.Int("max_attempts", budget),
				zap.Error(err),
			)
			if sleepErr := sleep(ctx, policy.backoff(attempt+1)); sleepErr != nil {
				// Cancelled during backoff: the batch terminally failed.
				return failedOutcomes(ops, report.KindTransient, attempt)
			}
			continue
		}

		kind := report.KindRejected
		if IsTransient(err) {
			kind = report.KindTransient
		}
		log.Error("batch submission failed terminally",
			zap.Int("attempts", attempt),
			zap.String("error_kind", kind),
			zap.Error(err),
		)
		return failedOutcomes(ops, kind, attempt)
	}
}

// itemOutcomes maps a per-item result list onto the submitted ops. A sku
// absent from the result is accepted; a rejected sku fails all of its ops
// without retry.
func itemOutcomes(ops []reconcile.ChangeOp, res *BatchResult, attempts int) []report.OutcomeRecord {
	rejected := make(map[string]string)
	if res != nil {
		for _, item := range res.Items {
			if !item.Accepted {
				kind := item.ErrorKind
				if kind == "" {
					kind = report.KindRejected
				}
				rejected[item.SKU] = kind
			}
		}
	}

	outcomes := make([]report.OutcomeRecord, 0, len(ops))
	for _, op := range ops {
		rec := report.OutcomeRecord{
			SKU:      op.SKU,
			Op:       op.Type,
			Status:   report.StatusApplied,
			Attempts: attempts,
		}
		if kind, ok := rejected[op.SKU]; ok {
			rec.Status = report.StatusFailed
			rec.ErrorKind = kind
		}
		outcomes = append(outcomes, rec)
	}
	return outcomes
}

func failedOutcomes(ops []reconcile.ChangeOp, kind string, attempts int) []report.OutcomeRecord {
	outcomes := make([]report.OutcomeRecord, 0, len(ops))
	for _, op := range ops {
		outcomes = append(outcomes, report.OutcomeRecord{
			SKU:       op.SKU,
			Op:        op.Type,
			Status:    report.StatusFailed,
			ErrorKind: kind,
			Attempts:  attempts,
		})
	}
	return outcomes
}

func skippedOutcomes(batches []reconcile.Batch) []report.OutcomeRecord {
	var outcomes []report.OutcomeRecord
	for _, batch := range batches {
		for _, op := range batch.Ops {
			outcomes = append(outcomes, report.OutcomeRecord{
				SKU:       op.SKU,
				Op:        op.Type,
				Status:    report.StatusSkipped,
				ErrorKind: report.KindCanceled,
			})
		}
	}
	return outcomes
}

// flagOutcome resolves a report-only op. flag_new becomes a listing
// creation in auto-onboard mode; listing creation is not retried, the next
// run flags the item again if it is still missing.
func flagOutcome(ctx context.Context, op reconcile.ChangeOp, client MarketplaceClient, opts Options, log *zap.Logger) report.OutcomeRecord {
	if op.Type == reconcile.OpFlagNew && opts.AutoOnboard {
		if err := client.CreateListing(ctx, op.SKU, op.Quantity, op.Price); err != nil {
			kind := report.KindRejected
			if IsTransient(err) {
				kind = report.KindTransient
			}
			log.Warn("listing creation failed",
				zap.String("sku", op.SKU),
				zap.Error(err),
			)
			return report.OutcomeRecord{
				SKU:       op.SKU,
				Op:        op.Type,
				Status:    report.StatusFailed,
				ErrorKind: kind,
				Attempts:  1,
			}
		}
		return report.OutcomeRecord{
			SKU:      op.SKU,
			Op:       op.Type,
			Status:   report.StatusApplied,
			Attempts: 1,
		}
	}

	return report.OutcomeRecord{
		SKU:       op.SKU,
		Op:        op.Type,
		Status:    report.StatusSkipped,
		ErrorKind: report.KindReportOnly,
	}
}
