package entities

// ReceiptData feeds the email and SMS templates sent when a reservation
// reaches a terminal state.
type ReceiptData struct {
	CustomerName       string
	CustomerEmail      string
	CustomerPhone      string
	SpotNumber         string
	VehiclePlate       string
	EntryTimeFormatted string
	ExitTimeFormatted  string
	TotalAmount        string
	Status             string
}
