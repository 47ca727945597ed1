package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"parkspot/internal/entities"
	"parkspot/internal/service"
)

type PaymentHandler struct {
	Service *service.PaymentService
}

func NewPaymentHandler(svc *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{Service: svc}
}

func (h *PaymentHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	reservationID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid reservation ID", http.StatusBadRequest)
		return
	}
	var req entities.PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	payment, err := h.Service.RecordPayment(r.Context(), reservationID, req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, payment)
}

// RefundPayment starts a refund for a reservation's payment. For online
// payments the status flips when Stripe confirms via webhook.
func (h *PaymentHandler) RefundPayment(w http.ResponseWriter, r *http.Request) {
	reservationID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid reservation ID", http.StatusBadRequest)
		return
	}
	if err := h.Service.RefundPayment(r.Context(), reservationID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Refund initiated"})
}

func (h *PaymentHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	reservationID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid reservation ID", http.StatusBadRequest)
		return
	}
	payment, err := h.Service.GetPayment(r.Context(), reservationID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if payment == nil {
		http.Error(w, "No payment recorded for reservation", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, entities.PaymentResponse{
		ID:            payment.ID,
		ReservationID: payment.ReservationID,
		Amount:        payment.Amount,
		Method:        payment.Method,
		Status:        payment.Status,
	})
}
