package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"drivelux/internal/db"
	"drivelux/internal/entities"
	"drivelux/internal/errors"
	"drivelux/internal/service"
	"drivelux/internal/utils"
)

type AdminHandler struct {
	Blocks *service.BlockService
}

func NewAdminHandler(blocks *service.BlockService) *AdminHandler {
	return &AdminHandler{Blocks: blocks}
}

// CreateBlock handles POST /api/admin/availability/blocks
func (h *AdminHandler) CreateBlock(w http.ResponseWriter, r *http.Request) {
	var req CreateBlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Validation("invalid request body"))
		return
	}
	if req.VehicleID <= 0 {
		writeError(w, errors.Validation("vehicle_id must be a positive integer"))
		return
	}
	date, err := utils.ParseDayKey(req.Date)
	if err != nil {
		writeError(w, errors.Validation("date must be formatted as YYYY-MM-DD"))
		return
	}
	reason, ok := db.ParseBlockReason(req.Reason)
	if !ok {
		writeError(w, errors.Validation("reason must be one of RESERVED, MAINTENANCE, ADMIN_BLOCKED, OTHER"))
		return
	}

	block, err := h.Blocks.CreateBlock(req.VehicleID, date, reason, req.Details, req.CreatedBy)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entities.NewBlockResponse(block))
}

// DeleteBlock handles DELETE /api/admin/availability/blocks/{id}
func (h *AdminHandler) DeleteBlock(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.Blocks.DeleteBlock(id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Availability block deleted"})
}

// ListVehicleBlocks handles GET /api/admin/availability/vehicles/{vehicle_id}/blocks
func (h *AdminHandler) ListVehicleBlocks(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := strconv.Atoi(mux.Vars(r)["vehicle_id"])
	if err != nil || vehicleID <= 0 {
		writeError(w, errors.Validation("vehicle_id must be a positive integer"))
		return
	}

	blocks, err := h.Blocks.ListFutureBlocks(vehicleID)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]entities.BlockResponse, 0, len(blocks))
	for i := range blocks {
		out = append(out, entities.NewBlockResponse(&blocks[i]))
	}
	writeJSON(w, http.StatusOK, out)
}
