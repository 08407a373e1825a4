package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ErrNotFound is returned by Get when no report exists for the given run ID.
var ErrNotFound = errors.New("report not found")

// Row is the persisted form of a SyncReport. Aggregate counts are stored as
// columns for cheap listing; the full report travels as a JSON payload.
type Row struct {
	RunID      string    `gorm:"column:run_id;primaryKey;size:36"`
	StartedAt  time.Time `gorm:"column:started_at"`
	FinishedAt time.Time `gorm:"column:finished_at"`
	Partial    bool      `gorm:"column:partial"`
	Applied    int       `gorm:"column:applied"`
	Failed     int       `gorm:"column:failed"`
	Skipped    int       `gorm:"column:skipped"`
	Rejects    int       `gorm:"column:rejects"`
	Payload    []byte    `gorm:"column:payload;type:json"`
}

// TableName sets the table used for persisted reports.
func (Row) TableName() string {
	return "sync_reports"
}

// Store persists finished sync reports.
type Store struct {
	db *gorm.DB
}

// NewStore creates a report store over an existing database connection.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the backing table.
func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&Row{})
}

// Save persists a finished report.
func (s *Store) Save(ctx context.Context, rep *SyncReport) error {
	payload, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	row := Row{
		RunID:      rep.RunID,
		StartedAt:  rep.StartedAt,
		FinishedAt: rep.FinishedAt,
		Partial:    rep.Partial,
		Applied:    rep.Summary.Applied,
		Failed:     rep.Summary.Failed,
		Skipped:    rep.Summary.Skipped,
		Rejects:    rep.Summary.Rejects,
		Payload:    payload,
	}

	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to save report %s: %w", rep.RunID, err)
	}
	return nil
}

// Get loads a persisted report by run ID.
func (s *Store) Get(ctx context.Context, runID string) (*SyncReport, error) {
	var row Row
	err := s.db.WithContext(ctx).First(&row, "run_id = ?", runID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load report %s: %w", runID, err)
	}

	var rep SyncReport
	if err := json.Unmarshal(row.Payload, &rep); err != nil {
		return nil, fmt.Errorf("failed to decode report %s: %w", runID, err)
	}
	return &rep, nil
}

// Recent lists the most recent runs, newest first, without payloads.
func (s *Store) Recent(ctx context.Context, limit int) ([]Row, error) {
	if limit <= 0 {
		limit = 20
	}
	var rows []Row
	err := s.db.WithContext(ctx).
		Omit("payload").
		Order("started_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return rows, nil
}
