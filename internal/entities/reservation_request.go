package entities

import "time"

type ReservationRequest struct {
	CustomerID       int        `json:"customer_id"`
	VehicleID        int        `json:"vehicle_id"`
	SpotID           int        `json:"spot_id"`
	EntryTime        time.Time  `json:"entry_time"`
	ExpectedExitTime *time.Time `json:"expected_exit_time,omitempty"`
}
