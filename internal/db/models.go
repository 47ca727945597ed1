package db

import "time"

// Spot statuses. Any status other than available blocks new reservations.
const (
	SpotStatusAvailable   = "available"
	SpotStatusOccupied    = "occupied"
	SpotStatusReserved    = "reserved"
	SpotStatusMaintenance = "maintenance"
)

// Reservation statuses. Completed and cancelled are terminal.
const (
	ReservationStatusActive    = "active"
	ReservationStatusCompleted = "completed"
	ReservationStatusCancelled = "cancelled"
)

// Payment methods and statuses.
const (
	PaymentMethodCash   = "cash"
	PaymentMethodOnline = "online"

	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"
)

type ParkingSpot struct {
	ID          int
	Number      string
	Category    string
	HourlyPrice float64
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Reservation struct {
	ID               int
	CustomerID       int
	VehicleID        int
	SpotID           int
	EntryTime        time.Time
	ExpectedExitTime *time.Time
	ExitTime         *time.Time
	TotalAmount      *float64
	Status           string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type Customer struct {
	ID        int
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
}

type Vehicle struct {
	ID         int
	CustomerID int
	Plate      string
	Model      string
	Category   string
	CreatedAt  time.Time
}

type Payment struct {
	ID              int
	ReservationID   int
	Amount          float64
	Method          string
	Status          string
	StripeSessionID string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
