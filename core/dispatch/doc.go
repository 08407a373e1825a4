// Package dispatch submits changeset batches to the marketplace client and
// accounts for every op's outcome.
//
// Submission is sequential by default; marketplace APIs rate-limit anyway
// and ordering is easier to reason about. An optional bounded-parallel mode
// runs up to N batches concurrently. Batches partition disjoint skus (the
// batcher pins same-sku ops together), so workers never race on an item;
// each worker accumulates outcomes for its own batches and the results are
// merged in batch order afterwards.
//
// Whole-batch transient failures are retried with exponential backoff up to
// the policy's attempt budget, then every op in the batch is recorded failed
// and the run moves on. Per-item rejections are structural and never
// retried. Retrying a partially applied batch relies on the marketplace
// bulk-update being idempotent per sku+value pair; that is an assumption
// about the target API, not something the dispatcher verifies.
//
// Cancellation is honored between batches, never mid-batch: outcomes
// already collected are kept, the remaining ops are recorded skipped, and
// the report is marked partial.
package dispatch
