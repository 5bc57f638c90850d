package api

// Block management
type CreateBlockRequest struct {
	VehicleID int    `json:"vehicle_id"`
	Date      string `json:"date"`
	Reason    string `json:"reason"`
	Details   string `json:"details,omitempty"`
	CreatedBy string `json:"created_by,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
