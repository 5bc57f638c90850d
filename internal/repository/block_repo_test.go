package repository

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"drivelux/internal/db"
)

func setupBlockRepo(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *BlockRepository) {
	database, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewBlockRepository(database, zap.NewNop())
	return database, mock, repo
}

func TestCreateBlock_Inserts(t *testing.T) {
	database, mock, repo := setupBlockRepo(t)
	defer database.Close()

	day := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	created := time.Date(2026, 3, 20, 9, 30, 0, 0, time.UTC)
	block := &db.AvailabilityBlock{
		ID:        "b-1",
		VehicleID: 1,
		Day:       day,
		Reason:    db.ReasonMaintenance,
		Details:   "Brake inspection",
		CreatedAt: created,
	}

	mock.ExpectQuery(`INSERT INTO availability_blocks`).
		WithArgs("b-1", 1, day, "MAINTENANCE", sqlmock.AnyArg(), sqlmock.AnyArg(), created).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))

	require.NoError(t, repo.CreateBlock(block))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBlock_UniqueViolationMapsToDuplicate(t *testing.T) {
	database, mock, repo := setupBlockRepo(t)
	defer database.Close()

	day := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	block := &db.AvailabilityBlock{
		ID:        "b-2",
		VehicleID: 1,
		Day:       day,
		Reason:    db.ReasonOther,
		CreatedAt: time.Now().UTC(),
	}

	mock.ExpectQuery(`INSERT INTO availability_blocks`).
		WillReturnError(&pq.Error{Code: "23505"})

	err := repo.CreateBlock(block)
	assert.ErrorIs(t, err, ErrDuplicateBlock)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBlockExists(t *testing.T) {
	database, mock, repo := setupBlockRepo(t)
	defer database.Close()

	day := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(1, day).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.BlockExists(1, day)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteBlock_ReportsWhetherRowDeleted(t *testing.T) {
	database, mock, repo := setupBlockRepo(t)
	defer database.Close()

	mock.ExpectExec(`DELETE FROM availability_blocks WHERE id`).
		WithArgs("b-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM availability_blocks WHERE id`).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.DeleteBlock("b-1")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.DeleteBlock("missing")
	require.NoError(t, err)
	assert.False(t, deleted)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListBlocksFrom(t *testing.T) {
	database, mock, repo := setupBlockRepo(t)
	defer database.Close()

	from := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	created := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "vehicle_id", "day", "reason", "details", "created_by", "created_at"}).
		AddRow("b-1", 1, from.AddDate(0, 0, 2), "MAINTENANCE", nil, nil, created).
		AddRow("b-2", 1, from.AddDate(0, 0, 9), "ADMIN_BLOCKED", "Private event", "admin-7", created)

	mock.ExpectQuery(`SELECT id, vehicle_id, day, reason, details, created_by, created_at`).
		WithArgs(1, from).
		WillReturnRows(rows)

	blocks, err := repo.ListBlocksFrom(1, from)
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	assert.True(t, blocks[0].Day.Before(blocks[1].Day))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteBlocksBefore(t *testing.T) {
	database, mock, repo := setupBlockRepo(t)
	defer database.Close()

	today := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(`DELETE FROM availability_blocks WHERE day`).
		WithArgs(today).
		WillReturnResult(sqlmock.NewResult(0, 4))

	purged, err := repo.DeleteBlocksBefore(today)
	require.NoError(t, err)
	assert.Equal(t, int64(4), purged)

	assert.NoError(t, mock.ExpectationsWereMet())
}
