package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"marketsync/core/config"
	"marketsync/core/database"
	"marketsync/core/logger"
	"marketsync/core/report"
	"marketsync/core/storage"
	"marketsync/core/syncer"
	"marketsync/feature/marketplace"
	"marketsync/feature/supplier"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the sync command
	dryRunSync  bool
	onboardSync bool
	yesConfirm  bool
)

// syncCmd performs one reconciliation run from the command line.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one supplier-to-marketplace reconciliation",
	Long: `Fetch the supplier feed and the marketplace catalog, compute the
changeset, and dispatch batched stock and price updates.

Examples:
  # Preview the changeset without touching the marketplace
  sync --dry-run

  # Run with interactive confirmation
  sync

  # Run non-interactively
  sync --yes

  # Also create listings for new supplier items
  sync --onboard --yes`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&dryRunSync, "dry-run", false, "Compute and print the changeset without dispatching")
	syncCmd.Flags().BoolVar(&onboardSync, "onboard", false, "Create marketplace listings for new supplier items")
	syncCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm dispatch (non-interactive)")

	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if onboardSync {
		cfg.Sync.AutoOnboard = true
	}

	// Initialize logger
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	s, _ := buildSyncer(cfg, l)

	// Step 1: Plan (always runs)
	l.Info("Planning sync run")
	plan, err := s.DryRun(ctx)
	if err != nil {
		return fmt.Errorf("failed to plan sync: %w", err)
	}

	// Step 2: Print the planned changeset
	printPlan(l, plan)

	if dryRunSync {
		l.Info("Dry-run mode: No changes were made.")
		return nil
	}

	if plan.Changeset.Summary.TotalOps == 0 {
		l.Info("Catalog is already in sync. Nothing to dispatch.")
		return nil
	}

	// Step 3: Confirm before mutating the marketplace
	if !confirmDispatch() {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	// Step 4: Run for real
	rep, err := s.Run(ctx)
	if err != nil {
		return fmt.Errorf("failed to run sync: %w", err)
	}

	printSyncReport(l, rep)
	return nil
}

// buildSyncer wires the feed, the marketplace client and the optional
// report store from configuration. The returned store is nil when report
// persistence is disabled or the database is unreachable.
func buildSyncer(cfg *config.Config, l *zap.Logger) (*syncer.Syncer, *report.Store) {
	var archiver *supplier.Archiver
	if cfg.Sync.ArchiveFeeds {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			// Archival is best effort; the run proceeds without it.
			l.Warn("Feed archiving disabled, storage client failed", zap.Error(err))
		} else {
			archiver = supplier.NewArchiver(client, cfg.Storage.Bucket, cfg.Supplier.ArchivePrefix)
		}
	}

	var store *report.Store
	var sink syncer.ReportSink
	if cfg.Sync.PersistReports {
		db, err := database.Connect(cfg.Database)
		if err != nil {
			l.Warn("Report persistence disabled, database connection failed", zap.Error(err))
		} else {
			store = report.NewStore(db)
			if err := store.Migrate(); err != nil {
				l.Warn("Report persistence disabled, migration failed", zap.Error(err))
				store = nil
			}
		}
	}
	if store != nil {
		sink = store
	}

	feed := supplier.NewHTTPFeed(cfg.Supplier, archiver, l)
	market := marketplace.NewClient(cfg.Marketplace, nil, l)

	return syncer.New(feed, market, sink, cfg.Sync, l), store
}

// printPlan prints the planned changeset using the logger.
func printPlan(l *zap.Logger, plan *syncer.Plan) {
	s := plan.Changeset.Summary

	l.Info("Planned changeset",
		zap.Int("total_ops", s.TotalOps),
		zap.Int("quantity_updates", s.QuantityUpdates),
		zap.Int("price_updates", s.PriceUpdates),
		zap.Int("zero_outs", s.ZeroOuts),
		zap.Int("new_items", s.NewItems),
		zap.Int("missing_items", s.MissingItems),
		zap.Int("batches", plan.Batches),
		zap.Int("rejects", len(plan.Rejects)),
	)

	// Show a sample of the ops (max 5 for logger)
	maxShow := 5
	if len(plan.Changeset.Ops) < maxShow {
		maxShow = len(plan.Changeset.Ops)
	}
	for i := 0; i < maxShow; i++ {
		op := plan.Changeset.Ops[i]
		l.Info("Sample op",
			zap.String("type", string(op.Type)),
			zap.String("sku", op.SKU),
		)
	}
	if len(plan.Changeset.Ops) > maxShow {
		l.Info("Additional ops not shown", zap.Int("count", len(plan.Changeset.Ops)-maxShow))
	}
}

// printSyncReport prints the finished run report using the logger.
func printSyncReport(l *zap.Logger, rep *report.SyncReport) {
	l.Info("Sync report",
		zap.String("run_id", rep.RunID),
		zap.Int("applied", rep.Summary.Applied),
		zap.Int("failed", rep.Summary.Failed),
		zap.Int("skipped", rep.Summary.Skipped),
		zap.Int("rejects", rep.Summary.Rejects),
		zap.Bool("partial", rep.Partial),
	)

	for _, rec := range rep.Records {
		if rec.Status != report.StatusFailed {
			continue
		}
		l.Warn("Failed op",
			zap.String("sku", rec.SKU),
			zap.String("op", string(rec.Op)),
			zap.String("error_kind", rec.ErrorKind),
			zap.Int("attempts", rec.Attempts),
		)
	}
}

// confirmDispatch prompts the user for confirmation or uses the --yes flag.
func confirmDispatch() bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\nType 'yes' to dispatch the changeset to the marketplace: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.TrimSpace(response)
	return response == "yes"
}
