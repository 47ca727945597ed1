package service

import (
	"context"
	"errors"
	"log"
	"math"
	"time"

	"parkspot/internal/db"
	"parkspot/internal/entities"
)

// fallbackHourlyPrice is charged when a completed reservation references a
// spot that can no longer be resolved (deleted by an operator mid-stay). The
// fare must still be produced for billing, so the operation does not fail.
const fallbackHourlyPrice = 10.00

// ReservationStore is the persistence contract for reservations. Implemented
// by repository.ReservationRepository.
type ReservationStore interface {
	FindReservation(ctx context.Context, id int) (*db.Reservation, error)
	// InsertReservation assigns the id. It must return
	// db.ErrDuplicateActiveReservation when another active reservation for the
	// same spot already exists, which the Postgres implementation enforces
	// with a partial unique index.
	InsertReservation(ctx context.Context, res *db.Reservation) error
	UpdateReservation(ctx context.Context, res *db.Reservation) error
	// FindActiveReservationBySpot returns (nil, nil) when the spot has no
	// active reservation.
	FindActiveReservationBySpot(ctx context.Context, spotID int) (*db.Reservation, error)
	ListReservations(ctx context.Context, date, status string) ([]db.Reservation, error)
}

// ReceiptNotifier sends the customer a receipt once a reservation reaches a
// terminal state. Delivery is best-effort and never fails the operation.
type ReceiptNotifier interface {
	SendReceipt(res *db.Reservation, spot *db.ParkingSpot)
}

// ReservationService owns the reservation state machine:
//
//	create() -> active -> complete() -> completed
//	                   -> cancel()   -> cancelled
//
// Both terminal states are final. It enforces the one-active-reservation-per-
// spot invariant end to end and computes fares on completion.
type ReservationService struct {
	reservations ReservationStore
	spots        SpotStore
	availability *SpotAvailability
	notifier     ReceiptNotifier
}

func NewReservationService(reservations ReservationStore, spots SpotStore, availability *SpotAvailability) *ReservationService {
	return &ReservationService{
		reservations: reservations,
		spots:        spots,
		availability: availability,
	}
}

// SetNotifier attaches an optional receipt sender. Wired in main; left nil in
// tests.
func (s *ReservationService) SetNotifier(n ReceiptNotifier) {
	s.notifier = n
}

// Create opens a reservation on a free spot. Guards run in order and the
// first failure wins: the spot must exist, must be available, and must not
// already carry an active reservation. The last guard holds even when the
// availability check implies it, because spot status and reservation rows are
// written separately and a concurrent writer may have won the race; the store
// repeats it as a uniqueness constraint on insert.
//
// The reservation row is written before the spot flips to occupied: a crash
// between the two leaves an available spot with an active reservation, which
// the duplicate guard catches on retry. The reverse order would leave the
// spot blocked forever.
func (s *ReservationService) Create(ctx context.Context, req entities.ReservationRequest) (*db.Reservation, error) {
	if _, err := s.spots.FindSpot(ctx, req.SpotID); err != nil {
		return nil, err
	}

	available, err := s.availability.IsAvailable(ctx, req.SpotID)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, db.ErrSpotNotAvailable
	}

	active, err := s.reservations.FindActiveReservationBySpot(ctx, req.SpotID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, db.ErrDuplicateActiveReservation
	}

	now := time.Now().UTC()
	res := &db.Reservation{
		CustomerID:       req.CustomerID,
		VehicleID:        req.VehicleID,
		SpotID:           req.SpotID,
		EntryTime:        req.EntryTime.UTC(),
		ExpectedExitTime: req.ExpectedExitTime,
		Status:           db.ReservationStatusActive,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.reservations.InsertReservation(ctx, res); err != nil {
		return nil, err
	}

	if err := s.availability.MarkOccupied(ctx, req.SpotID); err != nil {
		return nil, err
	}
	return res, nil
}

// Complete closes an active reservation, bills it and releases the spot.
func (s *ReservationService) Complete(ctx context.Context, reservationID int, exitTime time.Time) (*db.Reservation, error) {
	res, err := s.reservations.FindReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if res.Status != db.ReservationStatusActive {
		return nil, db.ErrCompleteNotActive
	}

	hourlyPrice := fallbackHourlyPrice
	spot, err := s.spots.FindSpot(ctx, res.SpotID)
	if err != nil {
		if !errors.Is(err, db.ErrSpotNotFound) {
			return nil, err
		}
		log.Printf("Spot %d not found for reservation %d, billing at fallback hourly price %.2f", res.SpotID, res.ID, fallbackHourlyPrice)
	} else {
		hourlyPrice = spot.HourlyPrice
	}

	exit := exitTime.UTC()
	amount, err := CalculateFare(res.EntryTime, exit, hourlyPrice)
	if err != nil {
		return nil, err
	}

	res.Status = db.ReservationStatusCompleted
	res.ExitTime = &exit
	res.TotalAmount = &amount
	res.UpdatedAt = time.Now().UTC()
	if err := s.reservations.UpdateReservation(ctx, res); err != nil {
		return nil, err
	}

	if err := s.availability.MarkAvailable(ctx, res.SpotID); err != nil {
		// The reservation is already billed and closed; a missing spot row
		// just means there is nothing left to release.
		if !errors.Is(err, db.ErrSpotNotFound) {
			return nil, err
		}
		log.Printf("Could not release spot %d for reservation %d: %v", res.SpotID, res.ID, err)
	}

	if s.notifier != nil {
		s.notifier.SendReceipt(res, spot)
	}
	return res, nil
}

// Cancel aborts an active reservation with no charge and releases the spot.
func (s *ReservationService) Cancel(ctx context.Context, reservationID int) (*db.Reservation, error) {
	res, err := s.reservations.FindReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if res.Status != db.ReservationStatusActive {
		return nil, db.ErrCancelNotActive
	}

	now := time.Now().UTC()
	res.Status = db.ReservationStatusCancelled
	res.ExitTime = &now
	res.UpdatedAt = now
	if err := s.reservations.UpdateReservation(ctx, res); err != nil {
		return nil, err
	}

	if err := s.availability.MarkAvailable(ctx, res.SpotID); err != nil {
		if !errors.Is(err, db.ErrSpotNotFound) {
			return nil, err
		}
		log.Printf("Could not release spot %d for reservation %d: %v", res.SpotID, res.ID, err)
	}

	if s.notifier != nil {
		spot, _ := s.spots.FindSpot(ctx, res.SpotID)
		s.notifier.SendReceipt(res, spot)
	}
	return res, nil
}

// GetReservation returns a single reservation by id.
func (s *ReservationService) GetReservation(ctx context.Context, id int) (*db.Reservation, error) {
	return s.reservations.FindReservation(ctx, id)
}

// ListReservations returns reservations filtered by entry date (YYYY-MM-DD)
// and status, both optional.
func (s *ReservationService) ListReservations(ctx context.Context, date, status string) ([]db.Reservation, error) {
	return s.reservations.ListReservations(ctx, date, status)
}

// CalculateFare prices a stay proportionally to elapsed time at the hourly
// rate: amount = elapsed_seconds / 3600 * hourlyPrice. This is the billing
// policy for the whole system; stays are never rounded up to whole hours.
// Intermediate math stays at full precision, and the result is rounded
// half-up to cents at the final step only.
//
// A non-positive interval means a clock or input bug upstream and is rejected
// rather than clamped.
func CalculateFare(entryTime, exitTime time.Time, hourlyPrice float64) (float64, error) {
	elapsed := exitTime.Sub(entryTime)
	if elapsed <= 0 {
		return 0, db.ErrInvalidDuration
	}
	amount := elapsed.Seconds() / 3600 * hourlyPrice
	return math.Round(amount*100) / 100, nil
}
