package db

import "time"

type VehicleStatus string

const (
	VehicleActive   VehicleStatus = "ACTIVE"
	VehicleInactive VehicleStatus = "INACTIVE"
)

type ReservationStatus string

const (
	StatusPendingPayment ReservationStatus = "PENDING_PAYMENT"
	StatusPartialPayment ReservationStatus = "PARTIAL_PAYMENT"
	StatusConfirmed      ReservationStatus = "CONFIRMED"
	StatusCompleted      ReservationStatus = "COMPLETED"
	StatusCancelled      ReservationStatus = "CANCELLED"
	StatusNoShow         ReservationStatus = "NO_SHOW"
)

// ActiveReservationStatuses are the statuses that consume vehicle capacity
// for their event date. Cancelled and no-show reservations do not.
var ActiveReservationStatuses = []ReservationStatus{
	StatusPendingPayment,
	StatusPartialPayment,
	StatusConfirmed,
	StatusCompleted,
}

func (s ReservationStatus) ConsumesCapacity() bool {
	for _, a := range ActiveReservationStatuses {
		if s == a {
			return true
		}
	}
	return false
}

type BlockReason string

const (
	ReasonReserved     BlockReason = "RESERVED"
	ReasonMaintenance  BlockReason = "MAINTENANCE"
	ReasonAdminBlocked BlockReason = "ADMIN_BLOCKED"
	ReasonOther        BlockReason = "OTHER"
)

// ParseBlockReason validates a raw reason string at the system boundary.
func ParseBlockReason(raw string) (BlockReason, bool) {
	switch BlockReason(raw) {
	case ReasonReserved, ReasonMaintenance, ReasonAdminBlocked, ReasonOther:
		return BlockReason(raw), true
	}
	return "", false
}

type Vehicle struct {
	ID     int
	Name   string
	Status VehicleStatus
}

// VehicleUnit records how many interchangeable physical cars a vehicle
// listing represents. A vehicle with no row counts as a single unit.
type VehicleUnit struct {
	VehicleID int
	Quantity  int
}

type Reservation struct {
	ID            int
	VehicleID     int
	VehicleName   string
	PackageName   string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	EventDate     time.Time
	StartTime     string
	EndTime       string
	Status        ReservationStatus
}

type AvailabilityBlock struct {
	ID        string
	VehicleID int
	Day       time.Time
	Reason    BlockReason
	Details   string
	CreatedBy string
	CreatedAt time.Time
}
