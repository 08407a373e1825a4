package syncer

import (
	"fmt"
	"time"

	"marketsync/core/dispatch"
)

// Config holds the run-level knobs for the reconciliation core.
type Config struct {
	// MaxBatchSize bounds the number of ops per bulk-update call.
	MaxBatchSize int `mapstructure:"max_batch_size" default:"100"`

	// RetryMaxAttempts is the total submission budget per batch.
	RetryMaxAttempts int `mapstructure:"retry_max_attempts" default:"3"`

	// RetryBackoffMs is the backoff before the second attempt, doubling
	// for each subsequent one.
	RetryBackoffMs int `mapstructure:"retry_backoff_ms" default:"500"`

	// AutoOnboard creates marketplace listings for new supplier items
	// instead of only reporting them.
	AutoOnboard bool `mapstructure:"auto_onboard" default:"false"`

	// MaxConcurrentBatches bounds parallel batch submission; 1 keeps the
	// sequential default.
	MaxConcurrentBatches int `mapstructure:"max_concurrent_batches" default:"1"`

	// ArchiveFeeds uploads the raw supplier feed to object storage per run.
	ArchiveFeeds bool `mapstructure:"archive_feeds" default:"false"`

	// PersistReports writes finished reports to the database.
	PersistReports bool `mapstructure:"persist_reports" default:"false"`
}

// ConfigError is a fatal configuration fault, surfaced before any network
// activity.
type ConfigError struct {
	// Field names the offending configuration key.
	Field string

	// Reason describes the fault.
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config %s: %s", e.Field, e.Reason)
}

// Validate checks the configuration for startup faults.
func (c Config) Validate() error {
	if c.MaxBatchSize <= 0 {
		return &ConfigError{Field: "max_batch_size", Reason: fmt.Sprintf("must be positive, got %d", c.MaxBatchSize)}
	}
	if c.RetryMaxAttempts < 0 {
		return &ConfigError{Field: "retry_max_attempts", Reason: fmt.Sprintf("must not be negative, got %d", c.RetryMaxAttempts)}
	}
	if c.RetryBackoffMs < 0 {
		return &ConfigError{Field: "retry_backoff_ms", Reason: fmt.Sprintf("must not be negative, got %d", c.RetryBackoffMs)}
	}
	if c.MaxConcurrentBatches < 1 {
		return &ConfigError{Field: "max_concurrent_batches", Reason: fmt.Sprintf("must be at least 1, got %d", c.MaxConcurrentBatches)}
	}
	return nil
}

// retryPolicy builds the dispatch policy from the configured values.
func (c Config) retryPolicy() dispatch.RetryPolicy {
	return dispatch.RetryPolicy{
		MaxAttempts: c.RetryMaxAttempts,
		BackoffBase: time.Duration(c.RetryBackoffMs) * time.Millisecond,
	}
}
