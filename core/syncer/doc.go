// Package syncer orchestrates one reconciliation run end to end: supplier
// feed fetch, normalization of both sides, diffing, batching, dispatch, and
// report aggregation. It owns the run-level configuration and validates it
// before any network activity.
//
// The syncer consumes its collaborators through interfaces: a FeedSource
// yielding raw supplier records and a Marketplace combining catalog reads
// with the dispatcher's write side. Concrete HTTP implementations live in
// feature/supplier and feature/marketplace.
package syncer
