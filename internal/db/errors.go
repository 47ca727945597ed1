package db

import "errors"

// Business-rule errors shared by the repositories and services. The messages
// are user-facing and stable; handlers map them to HTTP status codes.
var (
	ErrSpotNotFound        = errors.New("Parking spot not found")
	ErrReservationNotFound = errors.New("Reservation not found")
	ErrVehicleNotFound     = errors.New("Vehicle not found")
	ErrCustomerNotFound    = errors.New("Customer not found")

	ErrSpotNotAvailable           = errors.New("Parking spot is not available")
	ErrDuplicateActiveReservation = errors.New("Parking spot already has an active reservation")
	ErrSpotInUse                  = errors.New("Parking spot has an active reservation")

	ErrCompleteNotActive = errors.New("Only active reservations can be completed")
	ErrCancelNotActive   = errors.New("Only active reservations can be cancelled")

	ErrInvalidDuration = errors.New("Exit time must be after entry time")

	ErrDuplicatePayment    = errors.New("Reservation already has a payment")
	ErrPaymentNotCompleted = errors.New("Only completed reservations can be paid")
	ErrPaymentNotFound     = errors.New("Payment not found")
	ErrRefundNotPaid       = errors.New("Only paid payments can be refunded")

	ErrDuplicatePlate    = errors.New("Vehicle plate already registered")
	ErrDuplicateSpot     = errors.New("Parking spot number already exists")
	ErrDuplicateCustomer = errors.New("Customer email already registered")
)
