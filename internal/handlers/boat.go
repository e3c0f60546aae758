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

type BoatHandler struct {
	boats *services.BoatService
}

func NewBoatHandler(boats *services.BoatService) *BoatHandler {
	return &BoatHandler{boats: boats}
}

// Create godoc
// @Summary Register a boat for the signed-in account
// @Tags boats
// @Accept json
// @Produce json
// @Param input body models.Boat true "Boat data"
// @Success 201 {object} models.Boat
// @Router /api/boats [post]
func (h *BoatHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, ok := accountIDFrom(r)
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "not signed in")
		return
	}

	var boat models.Boat
	if err := json.NewDecoder(r.Body).Decode(&boat); err != nil {
		logger.WithCtx(r.Context()).Warn("invalid JSON in boat Create", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	created, err := h.boats.CreateBoat(r.Context(), id, &boat)
	if err != nil {
		helpers.Error(w, statusFromErr(err), err.Error())
		return
	}
	helpers.JSON(w, http.StatusCreated, created)
}

// List godoc
// @Summary List the boats of the signed-in account
// @Tags boats
// @Produce json
// @Success 200 {array} models.Boat
// @Router /api/boats [get]
func (h *BoatHandler) List(w http.ResponseWriter, r *http.Request) {
	id, ok := accountIDFrom(r)
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "not signed in")
		return
	}

	boats, err := h.boats.ListBoats(r.Context(), id)
	if err != nil {
		helpers.Error(w, statusFromErr(err), err.Error())
		return
	}
	helpers.JSON(w, http.StatusOK, boats)
}

// Get godoc
// @Summary A single boat
// @Tags boats
// @Produce json
// @Param id path string true "Boat id"
// @Success 200 {object} models.Boat
// @Failure 404 {string} string "Unknown boat"
// @Router /api/boats/{id} [get]
func (h *BoatHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := accountIDFrom(r)
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "not signed in")
		return
	}

	boat, err := h.boats.GetBoat(r.Context(), id, mux.Vars(r)["id"])
	if err != nil {
		helpers.Error(w, statusFromErr(err), err.Error())
		return
	}
	helpers.JSON(w, http.StatusOK, boat)
}

// Update godoc
// @Summary Update boat fields
// @Tags boats
// @Accept json
// @Produce json
// @Param id path string true "Boat id"
// @Param input body models.UpdateBoatRequest true "Fields to update"
// @Success 200 {object} models.Boat
// @Failure 409 {string} string "Concurrent modification"
// @Router /api/boats/{id} [put]
func (h *BoatHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := accountIDFrom(r)
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "not signed in")
		return
	}

	var input models.UpdateBoatRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		helpers.Error(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	boat, err := h.boats.UpdateBoat(r.Context(), id, mux.Vars(r)["id"], &input)
	if err != nil {
		logger.WithCtx(r.Context()).Warn("boat update failed", zap.Error(err))
		helpers.Error(w, statusFromErr(err), err.Error())
		return
	}
	helpers.JSON(w, http.StatusOK, boat)
}

// Delete godoc
// @Summary Delete a boat and its waypoints
// @Tags boats
// @Param id path string true "Boat id"
// @Success 200 {string} string "Boat deleted"
// @Failure 404 {string} string "Unknown boat"
// @Router /api/boats/{id} [delete]
func (h *BoatHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := accountIDFrom(r)
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "not signed in")
		return
	}

	if err := h.boats.DeleteBoat(r.Context(), id, mux.Vars(r)["id"]); err != nil {
		helpers.Error(w, statusFromErr(err), err.Error())
		return
	}
	helpers.JSON(w, http.StatusOK, "boat deleted")
}
