package entities

import "drivelux/internal/db"

// Four-tier day classification shared by the single-vehicle and fleet views.
// Color classes are the CSS hooks the admin calendar renders with.
const (
	ColorBlocked       = "bg-red-500"
	ColorHighOccupancy = "bg-yellow-400"
	ColorPartial       = "bg-blue-400"
	ColorAvailable     = "bg-green-500"

	LabelBlocked       = "No availability"
	LabelHighOccupancy = "High occupancy"
	LabelPartial       = "Partial occupancy"
	LabelAvailable     = "Available"
)

// VehicleDayBreakdown is one fleet vehicle's contribution to a calendar day.
type VehicleDayBreakdown struct {
	VehicleID        int    `json:"vehicle_id"`
	VehicleName      string `json:"vehicle_name"`
	UnitsTotal       int    `json:"units_total"`
	IsBlocked        bool   `json:"is_blocked"`
	ReservationCount int    `json:"reservation_count"`
	UnitsAvailable   int    `json:"units_available"`
}

// ReservationOfDay is the flattened listing of one active reservation shown
// on a fleet calendar day.
type ReservationOfDay struct {
	ReservationID int                  `json:"reservation_id"`
	VehicleName   string               `json:"vehicle_name"`
	PackageName   string               `json:"package_name"`
	CustomerName  string               `json:"customer_name"`
	Status        db.ReservationStatus `json:"status"`
	StartTime     string               `json:"start_time"`
	EndTime       string               `json:"end_time"`
}

type CalendarDayCell struct {
	Date             string                `json:"date"`
	ColorClass       string                `json:"color_class"`
	StatusLabel      string                `json:"status_label"`
	IsBlocked        bool                  `json:"is_blocked"`
	Reason           *db.BlockReason       `json:"reason,omitempty"`
	Details          string                `json:"details,omitempty"`
	ReservationCount int                   `json:"reservation_count"`
	UnitsAvailable   int                   `json:"units_available"`
	UnitsTotal       int                   `json:"units_total"`
	PerVehicle       []VehicleDayBreakdown `json:"per_vehicle_breakdown,omitempty"`
	Reservations     []ReservationOfDay    `json:"reservations_of_day,omitempty"`
}

type MonthlyCalendar struct {
	VehicleID  *int              `json:"vehicle_id"`
	Year       int               `json:"year"`
	Month      int               `json:"month"`
	TotalUnits int               `json:"total_units"`
	Days       []CalendarDayCell `json:"days"`
}
