package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"parkspot/internal/entities"
	"parkspot/internal/service"
)

type CustomerHandler struct {
	Service *service.CustomerService
}

func NewCustomerHandler(svc *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{Service: svc}
}

func (h *CustomerHandler) RegisterCustomer(w http.ResponseWriter, r *http.Request) {
	var req entities.CustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.Email == "" {
		http.Error(w, "name and email are required", http.StatusBadRequest)
		return
	}
	customer, err := h.Service.RegisterCustomer(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entities.CustomerResponse{
		ID:        customer.ID,
		Name:      customer.Name,
		Email:     customer.Email,
		Phone:     customer.Phone,
		CreatedAt: customer.CreatedAt,
	})
}

func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["customer_id"])
	if err != nil {
		http.Error(w, "Invalid customer ID", http.StatusBadRequest)
		return
	}
	customer, err := h.Service.GetCustomer(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entities.CustomerResponse{
		ID:        customer.ID,
		Name:      customer.Name,
		Email:     customer.Email,
		Phone:     customer.Phone,
		CreatedAt: customer.CreatedAt,
	})
}

func (h *CustomerHandler) RegisterVehicle(w http.ResponseWriter, r *http.Request) {
	customerID, err := strconv.Atoi(mux.Vars(r)["customer_id"])
	if err != nil {
		http.Error(w, "Invalid customer ID", http.StatusBadRequest)
		return
	}
	var req entities.VehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Plate == "" {
		http.Error(w, "plate is required", http.StatusBadRequest)
		return
	}
	vehicle, err := h.Service.RegisterVehicle(r.Context(), customerID, req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entities.VehicleResponse{
		ID:         vehicle.ID,
		CustomerID: vehicle.CustomerID,
		Plate:      vehicle.Plate,
		Model:      vehicle.Model,
		Category:   vehicle.Category,
		CreatedAt:  vehicle.CreatedAt,
	})
}

func (h *CustomerHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	customerID, err := strconv.Atoi(mux.Vars(r)["customer_id"])
	if err != nil {
		http.Error(w, "Invalid customer ID", http.StatusBadRequest)
		return
	}
	vehicles, err := h.Service.ListVehicles(r.Context(), customerID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	resp := make([]entities.VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		resp = append(resp, entities.VehicleResponse{
			ID:         v.ID,
			CustomerID: v.CustomerID,
			Plate:      v.Plate,
			Model:      v.Model,
			Category:   v.Category,
			CreatedAt:  v.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *CustomerHandler) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	customerID, err := strconv.Atoi(vars["customer_id"])
	if err != nil {
		http.Error(w, "Invalid customer ID", http.StatusBadRequest)
		return
	}
	vehicleID, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "Invalid vehicle ID", http.StatusBadRequest)
		return
	}
	if err := h.Service.DeleteVehicle(r.Context(), vehicleID, customerID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Vehicle deleted"})
}
