package entities

import "time"

type SpotRequest struct {
	Number      string  `json:"number"`
	Category    string  `json:"category"`
	HourlyPrice float64 `json:"hourly_price"`
}

type SpotResponse struct {
	ID          int       `json:"id"`
	Number      string    `json:"number"`
	Category    string    `json:"category"`
	HourlyPrice float64   `json:"hourly_price"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
