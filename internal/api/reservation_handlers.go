package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"parkspot/internal/entities"
	"parkspot/internal/service"
)

type ReservationHandler struct {
	Service *service.ReservationService
}

func NewReservationHandler(svc *service.ReservationService) *ReservationHandler {
	return &ReservationHandler{Service: svc}
}

func (h *ReservationHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	entryTime, err := time.Parse(time.RFC3339, req.EntryTime)
	if err != nil {
		http.Error(w, "entry_time must be a valid ISO-8601 timestamp", http.StatusBadRequest)
		return
	}

	input := entities.ReservationRequest{
		CustomerID: req.CustomerID,
		VehicleID:  req.VehicleID,
		SpotID:     req.SpotID,
		EntryTime:  entryTime,
	}
	if req.ExpectedExitTime != "" {
		expected, err := time.Parse(time.RFC3339, req.ExpectedExitTime)
		if err != nil {
			http.Error(w, "expected_exit_time must be a valid ISO-8601 timestamp", http.StatusBadRequest)
			return
		}
		input.ExpectedExitTime = &expected
	}

	res, err := h.Service.Create(r.Context(), input)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toReservationResponse(res))
}

func (h *ReservationHandler) GetReservation(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	res, err := h.Service.GetReservation(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toReservationResponse(res))
}

func (h *ReservationHandler) CompleteReservation(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	var req CompleteReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	exitTime, err := time.Parse(time.RFC3339, req.ExitTime)
	if err != nil {
		http.Error(w, "exit_time must be a valid ISO-8601 timestamp", http.StatusBadRequest)
		return
	}

	res, err := h.Service.Complete(r.Context(), id, exitTime)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toReservationResponse(res))
}

func (h *ReservationHandler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	res, err := h.Service.Cancel(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toReservationResponse(res))
}

func (h *ReservationHandler) ListReservations(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	status := r.URL.Query().Get("status")

	reservations, err := h.Service.ListReservations(r.Context(), date, status)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	list := entities.ReservationsList{Total: len(reservations)}
	for i := range reservations {
		list.Reservations = append(list.Reservations, toReservationResponse(&reservations[i]))
	}
	writeJSON(w, http.StatusOK, list)
}
