package syncer

import (
	"context"
	"errors"
	"testing"

	"marketsync/core/catalog"
	"marketsync/core/dispatch"
	"marketsync/core/reconcile"
	"marketsync/core/report"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFeed struct {
	records []catalog.RawRecord
	err     error
}

func (f *fakeFeed) FetchFeed(ctx context.Context) ([]catalog.RawRecord, error) {
	return f.records, f.err
}

type fakeMarket struct {
	snapshot    []catalog.RawRecord
	snapshotErr error
	applied     []reconcile.Batch
	created     []string
}

func (m *fakeMarket) FetchCatalogSnapshot(ctx context.Context) ([]catalog.RawRecord, error) {
	return m.snapshot, m.snapshotErr
}

func (m *fakeMarket) ApplyBatch(ctx context.Context, batch reconcile.Batch) (*dispatch.BatchResult, error) {
	m.applied = append(m.applied, batch)
	return &dispatch.BatchResult{}, nil
}

func (m *fakeMarket) CreateListing(ctx context.Context, sku string, quantity int, price decimal.Decimal) error {
	m.created = append(m.created, sku)
	return nil
}

type fakeSink struct {
	saved []*report.SyncReport
	err   error
}

func (s *fakeSink) Save(ctx context.Context, rep *report.SyncReport) error {
	s.saved = append(s.saved, rep)
	return s.err
}

func validConfig() Config {
	return Config{MaxBatchSize: 100, RetryMaxAttempts: 1, MaxConcurrentBatches: 1}
}

func TestSyncer_Run(t *testing.T) {
	feed := &fakeFeed{records: []catalog.RawRecord{
		{SKU: "W1", Quantity: "10", Price: "6000"},
		{SKU: "W3", Quantity: "3", Price: "200"},
	}}
	market := &fakeMarket{snapshot: []catalog.RawRecord{
		{SKU: "W1", Quantity: "20", Price: "5000"},
		{SKU: "W2", Quantity: "5", Price: "100"},
	}}

	s := New(feed, market, nil, validConfig(), nil)
	rep, err := s.Run(context.Background())
	require.NoError(t, err)

	// W1 diverges in both fields, W2 is zeroed, W3 is flagged new.
	assert.Equal(t, 4, rep.Changeset.TotalOps)
	assert.Equal(t, 1, rep.Changeset.ZeroOuts)
	assert.Equal(t, 1, rep.Changeset.NewItems)
	assert.Len(t, rep.Records, 4)

	// flag_new is report-only without auto-onboard.
	assert.Equal(t, 3, rep.Summary.Applied)
	assert.Equal(t, 1, rep.Summary.Skipped)
	assert.Empty(t, market.created)
	assert.NotEmpty(t, rep.RunID)
	assert.False(t, rep.Partial)
}

func TestSyncer_RunAutoOnboard(t *testing.T) {
	feed := &fakeFeed{records: []catalog.RawRecord{{SKU: "W3", Quantity: "3", Price: "200"}}}
	market := &fakeMarket{}

	cfg := validConfig()
	cfg.AutoOnboard = true

	s := New(feed, market, nil, cfg, nil)
	rep, err := s.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"W3"}, market.created)
	assert.Equal(t, 1, rep.Summary.Applied)
}

func TestSyncer_InvalidConfigFailsBeforeNetwork(t *testing.T) {
	feed := &fakeFeed{err: errors.New("should not be called")}
	market := &fakeMarket{snapshotErr: errors.New("should not be called")}

	cfg := validConfig()
	cfg.MaxBatchSize = 0

	s := New(feed, market, nil, cfg, nil)
	rep, err := s.Run(context.Background())
	assert.Nil(t, rep)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "max_batch_size", cfgErr.Field)
}

func TestSyncer_FeedFailureAborts(t *testing.T) {
	feed := &fakeFeed{err: errors.New("feed unreachable")}
	s := New(feed, &fakeMarket{}, nil, validConfig(), nil)

	rep, err := s.Run(context.Background())
	assert.Error(t, err)
	assert.Nil(t, rep)
}

func TestSyncer_RejectsCarriedIntoReport(t *testing.T) {
	feed := &fakeFeed{records: []catalog.RawRecord{
		{SKU: "W1", Quantity: "ten", Price: "6000"}, // rejected
	}}
	market := &fakeMarket{snapshot: []catalog.RawRecord{
		{SKU: "W1", Quantity: "20", Price: "5000"},
	}}

	s := New(feed, market, nil, validConfig(), nil)
	rep, err := s.Run(context.Background())
	require.NoError(t, err)

	// The supplier record was rejected, so W1 is flagged missing rather
	// than zeroed, and the reject is reported.
	assert.Len(t, rep.Rejects, 1)
	assert.Equal(t, 1, rep.Changeset.MissingItems)
	assert.Equal(t, 0, rep.Changeset.ZeroOuts)
	assert.Empty(t, market.applied, "no applyable ops, no bulk call")
}

func TestSyncer_PersistsReportWhenConfigured(t *testing.T) {
	feed := &fakeFeed{}
	market := &fakeMarket{}
	sink := &fakeSink{}

	cfg := validConfig()
	cfg.PersistReports = true

	s := New(feed, market, sink, cfg, nil)
	rep, err := s.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, sink.saved, 1)
	assert.Equal(t, rep.RunID, sink.saved[0].RunID)
}

func TestSyncer_PersistFailureDoesNotFailRun(t *testing.T) {
	sink := &fakeSink{err: errors.New("db down")}

	cfg := validConfig()
	cfg.PersistReports = true

	s := New(&fakeFeed{}, &fakeMarket{}, sink, cfg, nil)
	rep, err := s.Run(context.Background())
	assert.NoError(t, err)
	assert.NotNil(t, rep)
}

func TestSyncer_DryRun(t *testing.T) {
	feed := &fakeFeed{records: []catalog.RawRecord{{SKU: "W1", Quantity: "10", Price: "6000"}}}
	market := &fakeMarket{snapshot: []catalog.RawRecord{{SKU: "W1", Quantity: "20", Price: "6000"}}}

	s := New(feed, market, nil, validConfig(), nil)
	plan, err := s.DryRun(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, plan.Changeset.Summary.QuantityUpdates)
	assert.Equal(t, 1, plan.Batches)
	assert.Empty(t, market.applied, "dry run must not dispatch")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name  string
		mod   func(*Config)
		field string
	}{
		{name: "zero batch size", mod: func(c *Config) { c.MaxBatchSize = 0 }, field: "max_batch_size"},
		{name: "negative attempts", mod: func(c *Config) { c.RetryMaxAttempts = -1 }, field: "retry_max_attempts"},
		{name: "negative backoff", mod: func(c *Config) { c.RetryBackoffMs = -1 }, field: "retry_backoff_ms"},
		{name: "zero concurrency", mod: func(c *Config) { c.MaxConcurrentBatches = 0 }, field: "max_concurrent_batches"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mod(&cfg)

			var cfgErr *ConfigError
			require.ErrorAs(t, cfg.Validate(), &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}

	assert.NoError(t, validConfig().Validate())
}
