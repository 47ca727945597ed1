package api

// CreateReservationRequest is the wire form of a reservation create call.
// Timestamps are ISO-8601.
type CreateReservationRequest struct {
	CustomerID       int    `json:"customer_id"`
	VehicleID        int    `json:"vehicle_id"`
	SpotID           int    `json:"spot_id"`
	EntryTime        string `json:"entry_time"`
	ExpectedExitTime string `json:"expected_exit_time,omitempty"`
}

type CompleteReservationRequest struct {
	ExitTime string `json:"exit_time"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
