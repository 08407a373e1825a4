// Package report defines the terminal artifact of a sync run: the
// SyncReport aggregating normalization rejects, per-op dispatch outcomes,
// and run metadata. Aggregation is a pure merge; the report is immutable
// once produced and owned by the caller.
//
// ReportStore optionally persists finished reports to MySQL so operators
// can review past runs through the service API.
package report
