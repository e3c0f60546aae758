package handlers

import (
	"encoding/json"
	"net/http"

	"sailbook/internal/logger"
	"sailbook/internal/models"
	"sailbook/internal/services"
	helpers "sailbook/internal/utils/helpers"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type WaypointHandler struct {
	waypoints *services.WaypointService
}

func NewWaypointHandler(waypoints *services.WaypointService) *WaypointHandler {
	return &WaypointHandler{waypoints: waypoints}
}

// Create godoc
// @Summary Record a waypoint
// @Tags waypoints
// @Accept json
// @Produce json
// @Param input body models.Waypoint true "Waypoint data"
// @Success 201 {object} models.Waypoint
// @Failure 404 {string} string "Unknown boat"
// @Router /api/waypoints [post]
func (h *WaypointHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, ok := accountIDFrom(r)
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "not signed in")
		return
	}

	var wp models.Waypoint
	if err := json.NewDecoder(r.Body).Decode(&wp); err != nil {
		logger.WithCtx(r.Context()).Warn("invalid JSON in waypoint Create", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	created, err := h.waypoints.CreateWaypoint(r.Context(), id, &wp)
	if err != nil {
		helpers.Error(w, statusFromErr(err), err.Error())
		return
	}
	helpers.JSON(w, http.StatusCreated, created)
}

// ListByBoat godoc
// @Summary Waypoints of a boat
// @Tags waypoints
// @Produce json
// @Param id path string true "Boat id"
// @Success 200 {array} models.Waypoint
// @Failure 404 {string} string "Unknown boat"
// @Router /api/boats/{id}/waypoints [get]
func (h *WaypointHandler) ListByBoat(w http.ResponseWriter, r *http.Request) {
	id, ok := accountIDFrom(r)
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "not signed in")
		return
	}

	waypoints, err := h.waypoints.ListByBoat(r.Context(), id, mux.Vars(r)["id"])
	if err != nil {
		helpers.Error(w, statusFromErr(err), err.Error())
		return
	}
	helpers.JSON(w, http.StatusOK, waypoints)
}

// Get godoc
// @Summary A single waypoint
// @Tags waypoints
// @Produce json
// @Param id path string true "Waypoint id"
// @Success 200 {object} models.Waypoint
// @Failure 404 {string} string "Unknown waypoint"
// @Router /api/waypoints/{id} [get]
func (h *WaypointHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := accountIDFrom(r)
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "not signed in")
		return
	}

	wp, err := h.waypoints.GetWaypoint(r.Context(), id, mux.Vars(r)["id"])
	if err != nil {
		helpers.Error(w, statusFromErr(err), err.Error())
		return
	}
	helpers.JSON(w, http.StatusOK, wp)
}

// Update godoc
// @Summary Update waypoint fields
// @Tags waypoints
// @Accept json
// @Produce json
// @Param id path string true "Waypoint id"
// @Param input body models.UpdateWaypointRequest true "Fields to update"
// @Success 200 {object} models.Waypoint
// @Failure 409 {string} string "Concurrent modification"
// @Router /api/waypoints/{id} [put]
func (h *WaypointHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := accountIDFrom(r)
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "not signed in")
		return
	}

	var input models.UpdateWaypointRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		helpers.Error(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	wp, err := h.waypoints.UpdateWaypoint(r.Context(), id, mux.Vars(r)["id"], &input)
	if err != nil {
		logger.WithCtx(r.Context()).Warn("waypoint update failed", zap.Error(err))
		helpers.Error(w, statusFromErr(err), err.Error())
		return
	}
	helpers.JSON(w, http.StatusOK, wp)
}

// Delete godoc
// @Summary Delete a waypoint
// @Tags waypoints
// @Param id path string true "Waypoint id"
// @Success 200 {string} string "Waypoint deleted"
// @Failure 404 {string} string "Unknown waypoint"
// @Router /api/waypoints/{id} [delete]
func (h *WaypointHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := accountIDFrom(r)
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "not signed in")
		return
	}

	if err := h.waypoints.DeleteWaypoint(r.Context(), id, mux.Vars(r)["id"]); err != nil {
		helpers.Error(w, statusFromErr(err), err.Error())
		return
	}
	helpers.JSON(w, http.StatusOK, "waypoint deleted")
}
