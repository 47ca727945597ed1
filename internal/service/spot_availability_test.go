package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parkspot/internal/db"
)

func TestIsAvailable(t *testing.T) {
	ctx := context.Background()
	spots := newFakeSpotStore()
	availability := NewSpotAvailability(spots)

	free := spots.addSpot("A01", 5.00, db.SpotStatusAvailable)
	occupied := spots.addSpot("A02", 5.00, db.SpotStatusOccupied)
	reserved := spots.addSpot("A03", 5.00, db.SpotStatusReserved)
	maintenance := spots.addSpot("A04", 5.00, db.SpotStatusMaintenance)

	got, err := availability.IsAvailable(ctx, free.ID)
	require.NoError(t, err)
	assert.True(t, got)

	for _, spot := range []*db.ParkingSpot{occupied, reserved, maintenance} {
		got, err := availability.IsAvailable(ctx, spot.ID)
		require.NoError(t, err)
		assert.False(t, got, "status %s must not be available", spot.Status)
	}

	_, err = availability.IsAvailable(ctx, 99)
	assert.True(t, errors.Is(err, db.ErrSpotNotFound))
}

func TestMarkOccupiedAndAvailable(t *testing.T) {
	ctx := context.Background()
	spots := newFakeSpotStore()
	availability := NewSpotAvailability(spots)
	spot := spots.addSpot("A01", 5.00, db.SpotStatusAvailable)

	require.NoError(t, availability.MarkOccupied(ctx, spot.ID))
	current, err := spots.FindSpot(ctx, spot.ID)
	require.NoError(t, err)
	assert.Equal(t, db.SpotStatusOccupied, current.Status)

	require.NoError(t, availability.MarkAvailable(ctx, spot.ID))
	current, err = spots.FindSpot(ctx, spot.ID)
	require.NoError(t, err)
	assert.Equal(t, db.SpotStatusAvailable, current.Status)

	assert.True(t, errors.Is(availability.MarkOccupied(ctx, 99), db.ErrSpotNotFound))
	assert.True(t, errors.Is(availability.MarkAvailable(ctx, 99), db.ErrSpotNotFound))
}
