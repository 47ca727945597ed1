package entities

import "time"

type ReservationResponse struct {
	ID               int        `json:"id"`
	CustomerID       int        `json:"customer_id"`
	VehicleID        int        `json:"vehicle_id"`
	SpotID           int        `json:"spot_id"`
	SpotNumber       string     `json:"spot_number,omitempty"`
	EntryTime        time.Time  `json:"entry_time"`
	ExpectedExitTime *time.Time `json:"expected_exit_time,omitempty"`
	ExitTime         *time.Time `json:"exit_time,omitempty"`
	TotalAmount      *float64   `json:"total_amount,omitempty"`
	Status           string     `json:"status"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

type ReservationsList struct {
	Total        int                   `json:"total"`
	Reservations []ReservationResponse `json:"reservations"`
}
