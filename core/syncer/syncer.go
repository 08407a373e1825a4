package syncer

import (
	"context"
	"fmt"
	"time"

	"marketsync/core/catalog"
	"marketsync/core/dispatch"
	"marketsync/core/reconcile"
	"marketsync/core/report"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FeedSource yields the raw supplier inventory records for one run.
type FeedSource interface {
	FetchFeed(ctx context.Context) ([]catalog.RawRecord, error)
}

// Marketplace combines the catalog read side with the dispatcher's write
// side. Implementations wrap retryable failures in dispatch.TransientError.
type Marketplace interface {
	// FetchCatalogSnapshot returns the current marketplace inventory state.
	FetchCatalogSnapshot(ctx context.Context) ([]catalog.RawRecord, error)

	dispatch.MarketplaceClient
}

// ReportSink persists finished reports. Optional.
type ReportSink interface {
	Save(ctx context.Context, rep *report.SyncReport) error
}

// Plan is the dry-run artifact: what a run would change, without dispatch.
type Plan struct {
	// Changeset holds the proposed ops.
	Changeset reconcile.Changeset `json:"changeset"`

	// Rejects lists normalization rejects from both sources.
	Rejects []catalog.RejectReason `json:"rejects"`

	// Batches is the number of bulk calls dispatch would make.
	Batches int `json:"batches"`
}

// Syncer runs supplier-to-marketplace reconciliation.
type Syncer struct {
	feed   FeedSource
	market Marketplace
	sink   ReportSink
	cfg    Config
	log    *zap.Logger
}

// New creates a Syncer. sink may be nil when report persistence is
// disabled. The configuration is validated on the first run.
func New(feed FeedSource, market Marketplace, sink ReportSink, cfg Config, log *zap.Logger) *Syncer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Syncer{feed: feed, market: market, sink: sink, cfg: cfg, log: log}
}

// Run performs one full reconciliation and returns the report. The run
// always completes barring a configuration fault or a failure to load
// either snapshot; individual batch failures are accounted in the report.
func (s *Syncer) Run(ctx context.Context) (*report.SyncReport, error) {
	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	started := time.Now()
	log := s.log.With(zap.String("run_id", runID))

	cs, rejects, err := s.plan(ctx, log)
	if err != nil {
		return nil, err
	}

	batches, err := reconcile.Split(cs, s.cfg.MaxBatchSize)
	if err != nil {
		return nil, err
	}

	log.Info("dispatching changeset",
		zap.Int("ops", cs.Summary.TotalOps),
		zap.Int("batches", len(batches)),
		zap.Int("rejects", len(rejects)),
	)

	res := dispatch.Dispatch(ctx, batches, s.market, dispatch.Options{
		Retry:                s.cfg.retryPolicy(),
		AutoOnboard:          s.cfg.AutoOnboard,
		MaxConcurrentBatches: s.cfg.MaxConcurrentBatches,
	}, log)

	rep, err := report.Aggregate(runID, started, time.Now(), rejects, cs, res.Outcomes, res.Partial)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate report: %w", err)
	}

	if s.sink != nil && s.cfg.PersistReports {
		// Persistence is best effort: the caller still gets the report.
		if err := s.sink.Save(ctx, rep); err != nil {
			log.Error("failed to persist report", zap.Error(err))
		}
	}

	log.Info("run finished",
		zap.Int("applied", rep.Summary.Applied),
		zap.Int("failed", rep.Summary.Failed),
		zap.Int("skipped", rep.Summary.Skipped),
		zap.Bool("partial", rep.Partial),
	)
	return rep, nil
}

// DryRun computes the changeset without dispatching anything.
func (s *Syncer) DryRun(ctx context.Context) (*Plan, error) {
	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}

	cs, rejects, err := s.plan(ctx, s.log)
	if err != nil {
		return nil, err
	}

	batches, err := reconcile.Split(cs, s.cfg.MaxBatchSize)
	if err != nil {
		return nil, err
	}

	return &Plan{Changeset: cs, Rejects: rejects, Batches: len(batches)}, nil
}

// plan loads and normalizes both snapshots and computes the diff.
func (s *Syncer) plan(ctx context.Context, log *zap.Logger) (reconcile.Changeset, []catalog.RejectReason, error) {
	rawFeed, err := s.feed.FetchFeed(ctx)
	if err != nil {
		return reconcile.Changeset{}, nil, fmt.Errorf("failed to fetch supplier feed: %w", err)
	}

	supplierItems, supplierRejects := catalog.Normalize(rawFeed, catalog.SourceSupplier)
	if len(supplierRejects) > 0 {
		log.Warn("supplier records rejected", zap.Int("count", len(supplierRejects)))
	}

	rawCatalog, err := s.market.FetchCatalogSnapshot(ctx)
	if err != nil {
		return reconcile.Changeset{}, nil, fmt.Errorf("failed to fetch catalog snapshot: %w", err)
	}

	marketItems, marketRejects := catalog.Normalize(rawCatalog, catalog.SourceMarketplace)
	if len(marketRejects) > 0 {
		log.Warn("marketplace records rejected", zap.Int("count", len(marketRejects)))
	}

	cs := reconcile.Reconcile(
		supplierItems,
		marketItems,
		catalog.RejectedSKUs(supplierRejects),
		catalog.RejectedSKUs(marketRejects),
	)

	rejects := make([]catalog.RejectReason, 0, len(supplierRejects)+len(marketRejects))
	rejects = append(rejects, supplierRejects...)
	rejects = append(rejects, marketRejects...)
	return cs, rejects, nil
}
