// Package api exposes the sync service over HTTP: triggering runs,
// previewing changesets, and reading back persisted reports.
package api
