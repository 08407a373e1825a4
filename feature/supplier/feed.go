package supplier

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"marketsync/core/catalog"

	"go.uber.org/zap"
)

// HTTPFeed downloads and parses the supplier's zipped stock sheet.
type HTTPFeed struct {
	cfg     Config
	client  *http.Client
	archive *Archiver
	log     *zap.Logger
}

// NewHTTPFeed creates a feed source. archive may be nil when feed
// archiving is disabled.
func NewHTTPFeed(cfg Config, archive *Archiver, log *zap.Logger) *HTTPFeed {
	if log == nil {
		log = zap.NewNop()
	}
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 60
	}
	return &HTTPFeed{
		cfg:     cfg,
		client:  &http.Client{Timeout: time.Duration(timeout) * time.Second},
		archive: archive,
		log:     log,
	}
}

// FetchFeed downloads the feed archive and returns its raw records.
func (f *HTTPFeed) FetchFeed(ctx context.Context) ([]catalog.RawRecord, error) {
	if f.cfg.FeedURL == "" {
		return nil, fmt.Errorf("supplier feed url is not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.cfg.FeedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build feed request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed download returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed body: %w", err)
	}

	if f.archive != nil {
		// Archival is best effort; a broken archive bucket must not block
		// the sync.
		if err := f.archive.Store(ctx, data); err != nil {
			f.log.Warn("failed to archive feed", zap.Error(err))
		}
	}

	records, err := extractRecords(data)
	if err != nil {
		return nil, err
	}

	f.log.Info("supplier feed fetched",
		zap.Int("records", len(records)),
		zap.Int("bytes", len(data)),
	)
	return records, nil
}
