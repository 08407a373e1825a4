// Package marketplace implements the HTTP client for the marketplace
// seller API consumed by the sync core: paginated catalog snapshots, bulk
// stock/price imports, and listing creation.
//
// Failures are classified for the dispatcher: network errors, timeouts,
// rate limits (429) and server errors (5xx) are wrapped in
// dispatch.TransientError and retried per policy; other HTTP failures are
// structural and fail the batch immediately. The bulk import endpoint is
// idempotent per sku and value, which is what makes batch-level retry safe
// after a partial apply.
package marketplace
