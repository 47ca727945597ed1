package service

import (
	"context"

	"parkspot/internal/db"
)

// SpotStore is the narrow persistence contract the availability register and
// the reservation lifecycle need for spots. Implemented by
// repository.SpotRepository; tests use an in-memory fake.
type SpotStore interface {
	FindSpot(ctx context.Context, id int) (*db.ParkingSpot, error)
	UpdateSpotStatus(ctx context.Context, id int, status string) error
}

// SpotAvailability is a thin status register over the spot store. It has no
// knowledge of reservations; the lifecycle performs the duplicate-reservation
// guard before flipping a spot to occupied.
type SpotAvailability struct {
	spots SpotStore
}

func NewSpotAvailability(spots SpotStore) *SpotAvailability {
	return &SpotAvailability{spots: spots}
}

// IsAvailable reports whether the spot can take a new reservation right now.
// Occupied, reserved and maintenance spots all block.
func (a *SpotAvailability) IsAvailable(ctx context.Context, spotID int) (bool, error) {
	spot, err := a.spots.FindSpot(ctx, spotID)
	if err != nil {
		return false, err
	}
	return spot.Status == db.SpotStatusAvailable, nil
}

// MarkOccupied flips the spot to occupied. The caller is responsible for
// having checked availability first.
func (a *SpotAvailability) MarkOccupied(ctx context.Context, spotID int) error {
	return a.spots.UpdateSpotStatus(ctx, spotID, db.SpotStatusOccupied)
}

// MarkAvailable flips the spot back to available.
func (a *SpotAvailability) MarkAvailable(ctx context.Context, spotID int) error {
	return a.spots.UpdateSpotStatus(ctx, spotID, db.SpotStatusAvailable)
}
