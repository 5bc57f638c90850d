package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"drivelux/internal/db"
)

// ErrDuplicateBlock reports the unique index on (vehicle_id, day) rejecting
// an insert. The service layer surfaces it as a conflict.
var ErrDuplicateBlock = errors.New("availability block already exists for this vehicle and day")

// BlockStore is the write side of the block lifecycle.
type BlockStore interface {
	CreateBlock(b *db.AvailabilityBlock) error
	BlockExists(vehicleID int, day time.Time) (bool, error)
	DeleteBlock(id string) (bool, error)
	ListBlocksFrom(vehicleID int, from time.Time) ([]db.AvailabilityBlock, error)
	DeleteBlocksBefore(day time.Time) (int64, error)
}

type BlockRepository struct {
	DB     *sql.DB
	logger *zap.Logger
}

func NewBlockRepository(database *sql.DB, logger *zap.Logger) *BlockRepository {
	return &BlockRepository{DB: database, logger: logger}
}

func (r *BlockRepository) CreateBlock(b *db.AvailabilityBlock) error {
	query := `
		INSERT INTO availability_blocks (id, vehicle_id, day, reason, details, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`
	err := r.DB.QueryRow(query,
		b.ID,
		b.VehicleID,
		b.Day,
		string(b.Reason),
		nullString(b.Details),
		nullString(b.CreatedBy),
		b.CreatedAt,
	).Scan(&b.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicateBlock
		}
		return fmt.Errorf("error inserting availability block: %w", err)
	}
	return nil
}

func (r *BlockRepository) BlockExists(vehicleID int, day time.Time) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(
		`SELECT EXISTS (SELECT 1 FROM availability_blocks WHERE vehicle_id = $1 AND day = $2)`,
		vehicleID, day,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking block existence: %w", err)
	}
	return exists, nil
}

// DeleteBlock removes a block by id and reports whether a row was deleted.
func (r *BlockRepository) DeleteBlock(id string) (bool, error) {
	result, err := r.DB.Exec(`DELETE FROM availability_blocks WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("error deleting availability block %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error reading rows affected: %w", err)
	}
	return affected > 0, nil
}

func (r *BlockRepository) ListBlocksFrom(vehicleID int, from time.Time) ([]db.AvailabilityBlock, error) {
	rows, err := r.DB.Query(`
		SELECT id, vehicle_id, day, reason, details, created_by, created_at
		FROM availability_blocks
		WHERE vehicle_id = $1 AND day >= $2
		ORDER BY day ASC`,
		vehicleID, from,
	)
	if err != nil {
		return nil, fmt.Errorf("error querying blocks for vehicle %d: %w", vehicleID, err)
	}
	defer rows.Close()

	var blocks []db.AvailabilityBlock
	for rows.Next() {
		b, err := scanBlock(rows)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating blocks: %w", err)
	}
	return blocks, nil
}

// DeleteBlocksBefore purges blocks whose day is before the given day. Used
// by the nightly maintenance job; expired blocks have no effect on any
// computation but accumulate forever otherwise.
func (r *BlockRepository) DeleteBlocksBefore(day time.Time) (int64, error) {
	result, err := r.DB.Exec(`DELETE FROM availability_blocks WHERE day < $1`, day)
	if err != nil {
		return 0, fmt.Errorf("error purging expired blocks: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		r.logger.Warn("could not read rows affected after purge", zap.Error(err))
		return 0, nil
	}
	return affected, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
