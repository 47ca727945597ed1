package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"parkspot/internal/entities"
	"parkspot/internal/service"
)

type SpotHandler struct {
	Service      *service.SpotService
	Availability *service.SpotAvailability
}

func NewSpotHandler(svc *service.SpotService, availability *service.SpotAvailability) *SpotHandler {
	return &SpotHandler{Service: svc, Availability: availability}
}

func (h *SpotHandler) CreateSpot(w http.ResponseWriter, r *http.Request) {
	var req entities.SpotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Number == "" || req.HourlyPrice < 0 {
		http.Error(w, "number is required and hourly_price must be non-negative", http.StatusBadRequest)
		return
	}
	spot, err := h.Service.CreateSpot(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSpotResponse(spot))
}

func (h *SpotHandler) ListSpots(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	spots, err := h.Service.ListSpots(r.Context(), status)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	resp := make([]entities.SpotResponse, 0, len(spots))
	for i := range spots {
		resp = append(resp, toSpotResponse(&spots[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *SpotHandler) GetSpot(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	spot, err := h.Service.GetSpot(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSpotResponse(spot))
}

func (h *SpotHandler) UpdateSpot(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	var req entities.SpotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	spot, err := h.Service.UpdateSpot(r.Context(), id, req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSpotResponse(spot))
}

// CheckAvailability answers whether a spot can be reserved right now.
func (h *SpotHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	available, err := h.Availability.IsAvailable(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"spot_id":   id,
		"available": available,
	})
}

func (h *SpotHandler) EnterMaintenance(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	if err := h.Service.EnterMaintenance(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Spot moved to maintenance"})
}

func (h *SpotHandler) ExitMaintenance(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	if err := h.Service.ExitMaintenance(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Spot back in service"})
}
