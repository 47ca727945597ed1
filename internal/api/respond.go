package api

import (
	"encoding/json"
	"log"
	"net/http"

	"parkspot/internal/db"
	"parkspot/internal/entities"
	"parkspot/internal/httperr"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// writeDomainError maps a business-rule error to its HTTP status and a
// stable message body.
func writeDomainError(w http.ResponseWriter, err error) {
	httpErr := httperr.FromDomain(err)
	if httpErr.Code == http.StatusInternalServerError {
		log.Printf("Internal error: %v", err)
	}
	http.Error(w, httpErr.Message, httpErr.Code)
}

func toReservationResponse(res *db.Reservation) entities.ReservationResponse {
	return entities.ReservationResponse{
		ID:               res.ID,
		CustomerID:       res.CustomerID,
		VehicleID:        res.VehicleID,
		SpotID:           res.SpotID,
		EntryTime:        res.EntryTime,
		ExpectedExitTime: res.ExpectedExitTime,
		ExitTime:         res.ExitTime,
		TotalAmount:      res.TotalAmount,
		Status:           res.Status,
		CreatedAt:        res.CreatedAt,
		UpdatedAt:        res.UpdatedAt,
	}
}

func toSpotResponse(spot *db.ParkingSpot) entities.SpotResponse {
	return entities.SpotResponse{
		ID:          spot.ID,
		Number:      spot.Number,
		Category:    spot.Category,
		HourlyPrice: spot.HourlyPrice,
		Status:      spot.Status,
		CreatedAt:   spot.CreatedAt,
		UpdatedAt:   spot.UpdatedAt,
	}
}
