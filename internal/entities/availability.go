package entities

import (
	"time"

	"drivelux/internal/db"
)

// DayAvailability is the computed availability of one vehicle on one day.
type DayAvailability struct {
	VehicleID      int             `json:"vehicle_id"`
	Date           string          `json:"date"`
	Available      bool            `json:"available"`
	BlockedBy      *db.BlockReason `json:"blocked_by"`
	Details        string          `json:"details,omitempty"`
	UnitsAvailable int             `json:"units_available"`
	UnitsTotal     int             `json:"units_total"`
}

type BlockResponse struct {
	ID        string         `json:"id"`
	VehicleID int            `json:"vehicle_id"`
	Date      string         `json:"date"`
	Reason    db.BlockReason `json:"reason"`
	Details   string         `json:"details,omitempty"`
	CreatedBy string         `json:"created_by,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

func NewBlockResponse(b *db.AvailabilityBlock) BlockResponse {
	return BlockResponse{
		ID:        b.ID,
		VehicleID: b.VehicleID,
		Date:      b.Day.UTC().Format("2006-01-02"),
		Reason:    b.Reason,
		Details:   b.Details,
		CreatedBy: b.CreatedBy,
		CreatedAt: b.CreatedAt,
	}
}
