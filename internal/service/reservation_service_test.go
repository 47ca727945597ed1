package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parkspot/internal/db"
	"parkspot/internal/entities"
)

func newTestService() (*ReservationService, *fakeSpotStore, *fakeReservationStore) {
	spots := newFakeSpotStore()
	reservations := newFakeReservationStore()
	svc := NewReservationService(reservations, spots, NewSpotAvailability(spots))
	return svc, spots, reservations
}

func reservationRequest(spotID int, entry time.Time) entities.ReservationRequest {
	return entities.ReservationRequest{
		CustomerID: 1,
		VehicleID:  1,
		SpotID:     spotID,
		EntryTime:  entry,
	}
}

func TestCreateReservation(t *testing.T) {
	ctx := context.Background()
	entry := time.Date(2025, 1, 18, 14, 0, 0, 0, time.UTC)

	t.Run("success occupies the spot before returning", func(t *testing.T) {
		svc, spots, _ := newTestService()
		spot := spots.addSpot("A01", 5.00, db.SpotStatusAvailable)

		res, err := svc.Create(ctx, reservationRequest(spot.ID, entry))
		require.NoError(t, err)
		assert.NotZero(t, res.ID)
		assert.Equal(t, db.ReservationStatusActive, res.Status)
		assert.Nil(t, res.ExitTime)
		assert.Nil(t, res.TotalAmount)

		available, err := svc.availability.IsAvailable(ctx, spot.ID)
		require.NoError(t, err)
		assert.False(t, available, "spot must be unavailable as soon as Create returns")
	})

	t.Run("unknown spot", func(t *testing.T) {
		svc, _, _ := newTestService()
		_, err := svc.Create(ctx, reservationRequest(99, entry))
		assert.True(t, errors.Is(err, db.ErrSpotNotFound))
	})

	t.Run("occupied, reserved and maintenance spots all block", func(t *testing.T) {
		svc, spots, _ := newTestService()
		for _, status := range []string{db.SpotStatusOccupied, db.SpotStatusReserved, db.SpotStatusMaintenance} {
			spot := spots.addSpot("B-"+status, 5.00, status)
			_, err := svc.Create(ctx, reservationRequest(spot.ID, entry))
			assert.True(t, errors.Is(err, db.ErrSpotNotAvailable), "status %s must block", status)
		}
	})

	t.Run("active reservation blocks even when spot status says available", func(t *testing.T) {
		// Crash window: reservation row written, spot flip lost. The
		// duplicate guard must catch the retry on its own.
		svc, spots, reservations := newTestService()
		spot := spots.addSpot("A02", 5.00, db.SpotStatusAvailable)
		reservations.seedActive(spot.ID, entry)

		_, err := svc.Create(ctx, reservationRequest(spot.ID, entry))
		assert.True(t, errors.Is(err, db.ErrDuplicateActiveReservation))
	})

	t.Run("concurrent creates for one spot cannot both win", func(t *testing.T) {
		svc, spots, reservations := newTestService()
		spot := spots.addSpot("A03", 5.00, db.SpotStatusAvailable)

		const callers = 8
		errs := make([]error, callers)
		var wg sync.WaitGroup
		for i := 0; i < callers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = svc.Create(ctx, reservationRequest(spot.ID, entry))
			}(i)
		}
		wg.Wait()

		var won int
		for _, err := range errs {
			if err == nil {
				won++
				continue
			}
			assert.True(t,
				errors.Is(err, db.ErrDuplicateActiveReservation) || errors.Is(err, db.ErrSpotNotAvailable),
				"unexpected error: %v", err)
		}
		assert.Equal(t, 1, won, "exactly one caller may win the spot")

		active, err := reservations.FindActiveReservationBySpot(ctx, spot.ID)
		require.NoError(t, err)
		require.NotNil(t, active)
	})
}

func TestCompleteReservation(t *testing.T) {
	ctx := context.Background()
	entry := time.Date(2025, 1, 18, 14, 0, 0, 0, time.UTC)

	t.Run("bills the stay and releases the spot", func(t *testing.T) {
		svc, spots, _ := newTestService()
		spot := spots.addSpot("A01", 5.00, db.SpotStatusAvailable)
		res, err := svc.Create(ctx, reservationRequest(spot.ID, entry))
		require.NoError(t, err)

		exit := entry.Add(2 * time.Hour)
		completed, err := svc.Complete(ctx, res.ID, exit)
		require.NoError(t, err)
		assert.Equal(t, db.ReservationStatusCompleted, completed.Status)
		require.NotNil(t, completed.ExitTime)
		assert.True(t, completed.ExitTime.Equal(exit))
		require.NotNil(t, completed.TotalAmount)
		assert.InDelta(t, 10.00, *completed.TotalAmount, 0.0001)

		available, err := svc.availability.IsAvailable(ctx, spot.ID)
		require.NoError(t, err)
		assert.True(t, available, "spot must be released after completion")

		// The freed spot is immediately reservable again.
		_, err = svc.Create(ctx, reservationRequest(spot.ID, exit.Add(time.Second)))
		require.NoError(t, err)
	})

	t.Run("unknown reservation", func(t *testing.T) {
		svc, _, _ := newTestService()
		_, err := svc.Complete(ctx, 42, entry.Add(time.Hour))
		assert.True(t, errors.Is(err, db.ErrReservationNotFound))
	})

	t.Run("terminal states are final", func(t *testing.T) {
		svc, spots, _ := newTestService()
		spot := spots.addSpot("A01", 5.00, db.SpotStatusAvailable)
		res, err := svc.Create(ctx, reservationRequest(spot.ID, entry))
		require.NoError(t, err)
		_, err = svc.Complete(ctx, res.ID, entry.Add(time.Hour))
		require.NoError(t, err)

		_, err = svc.Complete(ctx, res.ID, entry.Add(2*time.Hour))
		assert.True(t, errors.Is(err, db.ErrCompleteNotActive))
		_, err = svc.Cancel(ctx, res.ID)
		assert.True(t, errors.Is(err, db.ErrCancelNotActive))
	})

	t.Run("non-positive duration is rejected, reservation stays active", func(t *testing.T) {
		svc, spots, _ := newTestService()
		spot := spots.addSpot("A01", 5.00, db.SpotStatusAvailable)
		res, err := svc.Create(ctx, reservationRequest(spot.ID, entry))
		require.NoError(t, err)

		_, err = svc.Complete(ctx, res.ID, entry)
		assert.True(t, errors.Is(err, db.ErrInvalidDuration))

		current, err := svc.GetReservation(ctx, res.ID)
		require.NoError(t, err)
		assert.Equal(t, db.ReservationStatusActive, current.Status)
	})

	t.Run("missing spot falls back to the default hourly price", func(t *testing.T) {
		svc, spots, _ := newTestService()
		spot := spots.addSpot("A01", 5.00, db.SpotStatusAvailable)
		res, err := svc.Create(ctx, reservationRequest(spot.ID, entry))
		require.NoError(t, err)

		spots.removeSpot(spot.ID)

		completed, err := svc.Complete(ctx, res.ID, entry.Add(time.Hour))
		require.NoError(t, err, "billing must not fail on an unresolvable spot")
		require.NotNil(t, completed.TotalAmount)
		assert.InDelta(t, fallbackHourlyPrice, *completed.TotalAmount, 0.0001)
	})
}

func TestCancelReservation(t *testing.T) {
	ctx := context.Background()
	entry := time.Date(2025, 1, 18, 14, 0, 0, 0, time.UTC)

	t.Run("releases the spot with no charge", func(t *testing.T) {
		svc, spots, _ := newTestService()
		spot := spots.addSpot("A01", 5.00, db.SpotStatusAvailable)
		res, err := svc.Create(ctx, reservationRequest(spot.ID, entry.Add(-48*time.Hour)))
		require.NoError(t, err)

		cancelled, err := svc.Cancel(ctx, res.ID)
		require.NoError(t, err)
		assert.Equal(t, db.ReservationStatusCancelled, cancelled.Status)
		assert.NotNil(t, cancelled.ExitTime)
		assert.Nil(t, cancelled.TotalAmount, "cancellation never produces a charge")

		available, err := svc.availability.IsAvailable(ctx, spot.ID)
		require.NoError(t, err)
		assert.True(t, available)

		_, err = svc.Create(ctx, reservationRequest(spot.ID, entry))
		require.NoError(t, err, "spot must be reservable right after cancellation")
	})

	t.Run("cancelled reservations are final", func(t *testing.T) {
		svc, spots, _ := newTestService()
		spot := spots.addSpot("A01", 5.00, db.SpotStatusAvailable)
		res, err := svc.Create(ctx, reservationRequest(spot.ID, entry))
		require.NoError(t, err)
		_, err = svc.Cancel(ctx, res.ID)
		require.NoError(t, err)

		_, err = svc.Cancel(ctx, res.ID)
		assert.True(t, errors.Is(err, db.ErrCancelNotActive))
		_, err = svc.Complete(ctx, res.ID, entry.Add(time.Hour))
		assert.True(t, errors.Is(err, db.ErrCompleteNotActive))
	})

	t.Run("unknown reservation", func(t *testing.T) {
		svc, _, _ := newTestService()
		_, err := svc.Cancel(ctx, 42)
		assert.True(t, errors.Is(err, db.ErrReservationNotFound))
	})
}
