package api

import (
	"encoding/json"
	"net/http"

	"parkspot/internal/service"
)

type OperatorAuthHandler struct {
	service service.OperatorAuthService
}

func NewOperatorAuthHandler(svc service.OperatorAuthService) *OperatorAuthHandler {
	return &OperatorAuthHandler{service: svc}
}

func (h *OperatorAuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	token, err := h.service.Login(req.Email, req.Password)
	if err != nil {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{Token: token})
}

func (h *OperatorAuthHandler) CreateOperator(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.CreateOperator(req.Email, req.Password); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, MessageResponse{Message: "Operator created"})
}
