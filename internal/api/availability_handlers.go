package api

import (
	"net/http"
	"strconv"

	"drivelux/internal/errors"
	"drivelux/internal/service"
	"drivelux/internal/utils"
)

type AvailabilityHandler struct {
	Service *service.AvailabilityService
}

func NewAvailabilityHandler(svc *service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{Service: svc}
}

// CheckAvailability handles GET /api/availability/check?vehicle_id=&date=
func (h *AvailabilityHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := strconv.Atoi(r.URL.Query().Get("vehicle_id"))
	if err != nil || vehicleID <= 0 {
		writeError(w, errors.Validation("vehicle_id must be a positive integer"))
		return
	}
	date, err := utils.ParseDayKey(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, errors.Validation("date must be formatted as YYYY-MM-DD"))
		return
	}

	result, err := h.Service.CheckDayAvailability(vehicleID, date)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GetMonthlyCalendar handles GET /api/availability/calendar?year=&month=[&vehicle_id=].
// Without a vehicle_id the calendar aggregates the whole active fleet.
func (h *AvailabilityHandler) GetMonthlyCalendar(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil || year < 1 {
		writeError(w, errors.Validation("year must be a positive integer"))
		return
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		writeError(w, errors.Validation("month must be an integer between 1 and 12"))
		return
	}

	var vehicleID *int
	if raw := r.URL.Query().Get("vehicle_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			writeError(w, errors.Validation("vehicle_id must be a positive integer"))
			return
		}
		vehicleID = &id
	}

	calendar, err := h.Service.GetMonthlyCalendar(year, month, vehicleID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, calendar)
}
