package entities

type PaymentRequest struct {
	Method        string `json:"method"` // cash | online
	CustomerEmail string `json:"customer_email,omitempty"`
}

type PaymentResponse struct {
	ID            int     `json:"id"`
	ReservationID int     `json:"reservation_id"`
	Amount        float64 `json:"amount"`
	Method        string  `json:"method"`
	Status        string  `json:"status"`
	CheckoutURL   string  `json:"checkout_url,omitempty"`
}
