// Package server holds configuration for the optional HTTP service mode.
//
// The service exposes sync triggering and report retrieval over Fiber; the
// one-shot CLI path does not use it.
package server
