package entities

import "time"

type VehicleRequest struct {
	Plate    string `json:"plate"`
	Model    string `json:"model"`
	Category string `json:"category"`
}

type VehicleResponse struct {
	ID         int       `json:"id"`
	CustomerID int       `json:"customer_id"`
	Plate      string    `json:"plate"`
	Model      string    `json:"model"`
	Category   string    `json:"category"`
	CreatedAt  time.Time `json:"created_at"`
}
