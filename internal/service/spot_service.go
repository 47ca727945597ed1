package service

import (
	"context"

	"parkspot/internal/db"
	"parkspot/internal/entities"
)

// SpotInventoryStore extends SpotStore with the operator-side inventory
// operations. Implemented by repository.SpotRepository.
type SpotInventoryStore interface {
	SpotStore
	CreateSpot(ctx context.Context, spot *db.ParkingSpot) error
	UpdateSpot(ctx context.Context, spot *db.ParkingSpot) error
	ListSpots(ctx context.Context, status string) ([]db.ParkingSpot, error)
	// UpdateSpotStatusIf flips status only when the current value matches
	// from, and reports whether a row changed.
	UpdateSpotStatusIf(ctx context.Context, id int, from, to string) (bool, error)
}

// SpotService covers the operator side of spot inventory: creating spots,
// editing number/category/price and toggling maintenance. Occupancy flips are
// owned by the reservation lifecycle and never go through here.
type SpotService struct {
	spots        SpotInventoryStore
	reservations ReservationStore
}

func NewSpotService(spots SpotInventoryStore, reservations ReservationStore) *SpotService {
	return &SpotService{spots: spots, reservations: reservations}
}

func (s *SpotService) CreateSpot(ctx context.Context, req entities.SpotRequest) (*db.ParkingSpot, error) {
	spot := &db.ParkingSpot{
		Number:      req.Number,
		Category:    req.Category,
		HourlyPrice: req.HourlyPrice,
		Status:      db.SpotStatusAvailable,
	}
	if err := s.spots.CreateSpot(ctx, spot); err != nil {
		return nil, err
	}
	return spot, nil
}

func (s *SpotService) ListSpots(ctx context.Context, status string) ([]db.ParkingSpot, error) {
	return s.spots.ListSpots(ctx, status)
}

func (s *SpotService) GetSpot(ctx context.Context, id int) (*db.ParkingSpot, error) {
	return s.spots.FindSpot(ctx, id)
}

// UpdateSpot edits number, category and hourly price. Status is deliberately
// not editable here.
func (s *SpotService) UpdateSpot(ctx context.Context, id int, req entities.SpotRequest) (*db.ParkingSpot, error) {
	spot, err := s.spots.FindSpot(ctx, id)
	if err != nil {
		return nil, err
	}
	spot.Number = req.Number
	spot.Category = req.Category
	spot.HourlyPrice = req.HourlyPrice
	if err := s.spots.UpdateSpot(ctx, spot); err != nil {
		return nil, err
	}
	return spot, nil
}

// EnterMaintenance takes a spot out of service. Only an available spot can
// enter maintenance; the conditional update in the repository makes the check
// and the flip one statement, so the operator path cannot race the
// reservation lifecycle into occupying a maintenance spot.
func (s *SpotService) EnterMaintenance(ctx context.Context, id int) error {
	if _, err := s.spots.FindSpot(ctx, id); err != nil {
		return err
	}
	active, err := s.reservations.FindActiveReservationBySpot(ctx, id)
	if err != nil {
		return err
	}
	if active != nil {
		return db.ErrSpotInUse
	}
	flipped, err := s.spots.UpdateSpotStatusIf(ctx, id, db.SpotStatusAvailable, db.SpotStatusMaintenance)
	if err != nil {
		return err
	}
	if !flipped {
		return db.ErrSpotNotAvailable
	}
	return nil
}

// ExitMaintenance puts a maintenance spot back in service.
func (s *SpotService) ExitMaintenance(ctx context.Context, id int) error {
	if _, err := s.spots.FindSpot(ctx, id); err != nil {
		return err
	}
	flipped, err := s.spots.UpdateSpotStatusIf(ctx, id, db.SpotStatusMaintenance, db.SpotStatusAvailable)
	if err != nil {
		return err
	}
	if !flipped {
		return db.ErrSpotNotAvailable
	}
	return nil
}
