package report

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return NewStore(db), mock
}

func TestStore_Save(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `sync_reports`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	rep := &SyncReport{
		RunID:      "run-1",
		StartedAt:  time.Now().Add(-time.Minute),
		FinishedAt: time.Now(),
		Summary:    ReportSummary{Applied: 3},
	}

	err := store.Save(context.Background(), rep)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Get(t *testing.T) {
	store, mock := newMockStore(t)

	rep := &SyncReport{RunID: "run-1", Summary: ReportSummary{Applied: 2, Failed: 1}}
	payload, err := json.Marshal(rep)
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{"run_id", "partial", "payload"}).
		AddRow("run-1", false, payload)
	mock.ExpectQuery("SELECT \\* FROM `sync_reports`").
		WithArgs("run-1", 1).
		WillReturnRows(rows)

	got, err := store.Get(context.Background(), "run-1")
	assert.NoError(t, err)
	assert.Equal(t, "run-1", got.RunID)
	assert.Equal(t, 2, got.Summary.Applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_GetNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT \\* FROM `sync_reports`").
		WithArgs("missing", 1).
		WillReturnRows(sqlmock.NewRows([]string{"run_id"}))

	got, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, got)
}

func TestStore_Recent(t *testing.T) {
	store, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"run_id", "applied", "failed"}).
		AddRow("run-2", 5, 0).
		AddRow("run-1", 3, 1)
	mock.ExpectQuery("SELECT .* FROM `sync_reports` ORDER BY started_at DESC").
		WillReturnRows(rows)

	got, err := store.Recent(context.Background(), 10)
	assert.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, "run-2", got[0].RunID)
}
