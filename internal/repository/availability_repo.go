package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"drivelux/internal/db"
)

// AvailabilityStore is the read side consumed by the availability engine:
// vehicles, unit counts, admin blocks and capacity-consuming reservations.
type AvailabilityStore interface {
	GetVehicleByID(id int) (*db.Vehicle, error)
	ListActiveVehicles() ([]db.Vehicle, error)
	GetUnitCount(vehicleID int) (int, error)
	GetUnitCounts(vehicleIDs []int) (map[int]int, error)
	GetBlocksInRange(vehicleID int, start, end time.Time) ([]db.AvailabilityBlock, error)
	CountActiveReservations(vehicleID int, start, end time.Time) (int, error)
	GetActiveReservationsInRange(vehicleID int, start, end time.Time) ([]db.Reservation, error)
}

type AvailabilityRepository struct {
	DB     *sql.DB
	logger *zap.Logger
}

func NewAvailabilityRepository(database *sql.DB, logger *zap.Logger) *AvailabilityRepository {
	return &AvailabilityRepository{DB: database, logger: logger}
}

func activeStatusArray() pq.StringArray {
	arr := make(pq.StringArray, 0, len(db.ActiveReservationStatuses))
	for _, s := range db.ActiveReservationStatuses {
		arr = append(arr, string(s))
	}
	return arr
}

// GetVehicleByID returns (nil, nil) when no vehicle with that id exists.
func (r *AvailabilityRepository) GetVehicleByID(id int) (*db.Vehicle, error) {
	var v db.Vehicle
	err := r.DB.QueryRow(`SELECT id, name, status FROM vehicles WHERE id = $1`, id).
		Scan(&v.ID, &v.Name, &v.Status)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying vehicle %d: %w", id, err)
	}
	return &v, nil
}

func (r *AvailabilityRepository) ListActiveVehicles() ([]db.Vehicle, error) {
	rows, err := r.DB.Query(`SELECT id, name, status FROM vehicles WHERE status = $1 ORDER BY name`,
		string(db.VehicleActive))
	if err != nil {
		return nil, fmt.Errorf("error querying active vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []db.Vehicle
	for rows.Next() {
		var v db.Vehicle
		if err := rows.Scan(&v.ID, &v.Name, &v.Status); err != nil {
			return nil, fmt.Errorf("error scanning vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating vehicles: %w", err)
	}
	return vehicles, nil
}

// GetUnitCount resolves a vehicle's unit capacity. A vehicle without a
// vehicle_units row counts as exactly one unit; the default lives here, not
// at the call sites.
func (r *AvailabilityRepository) GetUnitCount(vehicleID int) (int, error) {
	var quantity int
	err := r.DB.QueryRow(
		`SELECT COALESCE((SELECT quantity FROM vehicle_units WHERE vehicle_id = $1), 1)`,
		vehicleID,
	).Scan(&quantity)
	if err != nil {
		return 0, fmt.Errorf("error querying unit count for vehicle %d: %w", vehicleID, err)
	}
	return quantity, nil
}

// GetUnitCounts batch-resolves unit counts. Vehicles absent from the result
// default to 1 on the caller's side.
func (r *AvailabilityRepository) GetUnitCounts(vehicleIDs []int) (map[int]int, error) {
	counts := make(map[int]int, len(vehicleIDs))
	if len(vehicleIDs) == 0 {
		return counts, nil
	}
	rows, err := r.DB.Query(
		`SELECT vehicle_id, quantity FROM vehicle_units WHERE vehicle_id = ANY($1)`,
		pq.Array(vehicleIDs),
	)
	if err != nil {
		return nil, fmt.Errorf("error querying unit counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, quantity int
		if err := rows.Scan(&id, &quantity); err != nil {
			return nil, fmt.Errorf("error scanning unit count: %w", err)
		}
		counts[id] = quantity
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating unit counts: %w", err)
	}
	return counts, nil
}

// GetBlocksInRange fetches admin blocks with day in [start, end). A
// vehicleID of 0 fetches blocks for every vehicle.
func (r *AvailabilityRepository) GetBlocksInRange(vehicleID int, start, end time.Time) ([]db.AvailabilityBlock, error) {
	query := `
		SELECT id, vehicle_id, day, reason, details, created_by, created_at
		FROM availability_blocks
		WHERE day >= $1 AND day < $2`
	args := []interface{}{start, end}
	if vehicleID > 0 {
		query += ` AND vehicle_id = $3`
		args = append(args, vehicleID)
	}
	query += ` ORDER BY day, created_at`

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying availability blocks: %w", err)
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
		return nil, fmt.Errorf("error after iterating availability blocks: %w", err)
	}
	return blocks, nil
}

func (r *AvailabilityRepository) CountActiveReservations(vehicleID int, start, end time.Time) (int, error) {
	var count int
	err := r.DB.QueryRow(`
		SELECT COUNT(id) FROM reservations
		WHERE vehicle_id = $1 AND event_date >= $2 AND event_date < $3 AND status = ANY($4)`,
		vehicleID, start, end, activeStatusArray(),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting active reservations for vehicle %d: %w", vehicleID, err)
	}
	return count, nil
}

// GetActiveReservationsInRange fetches capacity-consuming reservations with
// event_date in [start, end), joined with their vehicle and package for
// display. A vehicleID of 0 fetches the whole fleet.
func (r *AvailabilityRepository) GetActiveReservationsInRange(vehicleID int, start, end time.Time) ([]db.Reservation, error) {
	query := `
		SELECT r.id, r.vehicle_id, v.name, COALESCE(p.name, ''),
		       r.customer_name, r.customer_email, r.customer_phone,
		       r.event_date, r.start_time, r.end_time, r.status
		FROM reservations r
		JOIN vehicles v ON v.id = r.vehicle_id
		LEFT JOIN packages p ON p.id = r.package_id
		WHERE r.event_date >= $1 AND r.event_date < $2 AND r.status = ANY($3)`
	args := []interface{}{start, end, activeStatusArray()}
	if vehicleID > 0 {
		query += ` AND r.vehicle_id = $4`
		args = append(args, vehicleID)
	}
	query += ` ORDER BY r.event_date, r.start_time`

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying active reservations: %w", err)
	}
	defer rows.Close()

	var reservations []db.Reservation
	for rows.Next() {
		var res db.Reservation
		err := rows.Scan(
			&res.ID, &res.VehicleID, &res.VehicleName, &res.PackageName,
			&res.CustomerName, &res.CustomerEmail, &res.CustomerPhone,
			&res.EventDate, &res.StartTime, &res.EndTime, &res.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning reservation: %w", err)
		}
		reservations = append(reservations, res)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating reservations: %w", err)
	}
	return reservations, nil
}

func scanBlock(rows *sql.Rows) (db.AvailabilityBlock, error) {
	var (
		b         db.AvailabilityBlock
		details   sql.NullString
		createdBy sql.NullString
	)
	err := rows.Scan(&b.ID, &b.VehicleID, &b.Day, &b.Reason, &details, &createdBy, &b.CreatedAt)
	if err != nil {
		return b, fmt.Errorf("error scanning availability block: %w", err)
	}
	b.Details = details.String
	b.CreatedBy = createdBy.String
	return b, nil
}
