package service

import (
	"context"
	"sync"
	"time"

	"parkspot/internal/db"
)

// fakeSpotStore is an in-memory SpotInventoryStore.
type fakeSpotStore struct {
	mu     sync.Mutex
	spots  map[int]*db.ParkingSpot
	nextID int
}

func newFakeSpotStore() *fakeSpotStore {
	return &fakeSpotStore{spots: make(map[int]*db.ParkingSpot), nextID: 1}
}

func (f *fakeSpotStore) addSpot(number string, price float64, status string) *db.ParkingSpot {
	f.mu.Lock()
	defer f.mu.Unlock()
	spot := &db.ParkingSpot{
		ID:          f.nextID,
		Number:      number,
		Category:    "regular",
		HourlyPrice: price,
		Status:      status,
	}
	f.spots[spot.ID] = spot
	f.nextID++
	return spot
}

func (f *fakeSpotStore) removeSpot(id int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.spots, id)
}

func (f *fakeSpotStore) FindSpot(ctx context.Context, id int) (*db.ParkingSpot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	spot, ok := f.spots[id]
	if !ok {
		return nil, db.ErrSpotNotFound
	}
	copied := *spot
	return &copied, nil
}

func (f *fakeSpotStore) UpdateSpotStatus(ctx context.Context, id int, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	spot, ok := f.spots[id]
	if !ok {
		return db.ErrSpotNotFound
	}
	spot.Status = status
	return nil
}

func (f *fakeSpotStore) UpdateSpotStatusIf(ctx context.Context, id int, from, to string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	spot, ok := f.spots[id]
	if !ok {
		return false, nil
	}
	if spot.Status != from {
		return false, nil
	}
	spot.Status = to
	return true, nil
}

func (f *fakeSpotStore) CreateSpot(ctx context.Context, spot *db.ParkingSpot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.spots {
		if existing.Number == spot.Number {
			return db.ErrDuplicateSpot
		}
	}
	spot.ID = f.nextID
	f.nextID++
	copied := *spot
	f.spots[spot.ID] = &copied
	return nil
}

func (f *fakeSpotStore) UpdateSpot(ctx context.Context, spot *db.ParkingSpot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.spots[spot.ID]
	if !ok {
		return db.ErrSpotNotFound
	}
	existing.Number = spot.Number
	existing.Category = spot.Category
	existing.HourlyPrice = spot.HourlyPrice
	return nil
}

func (f *fakeSpotStore) ListSpots(ctx context.Context, status string) ([]db.ParkingSpot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var spots []db.ParkingSpot
	for _, spot := range f.spots {
		if status == "" || spot.Status == status {
			spots = append(spots, *spot)
		}
	}
	return spots, nil
}

// fakeReservationStore is an in-memory ReservationStore. Insert enforces the
// same one-active-per-spot uniqueness the Postgres partial index provides.
type fakeReservationStore struct {
	mu           sync.Mutex
	reservations map[int]*db.Reservation
	nextID       int
}

func newFakeReservationStore() *fakeReservationStore {
	return &fakeReservationStore{reservations: make(map[int]*db.Reservation), nextID: 1}
}

func (f *fakeReservationStore) FindReservation(ctx context.Context, id int) (*db.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	res, ok := f.reservations[id]
	if !ok {
		return nil, db.ErrReservationNotFound
	}
	copied := *res
	return &copied, nil
}

func (f *fakeReservationStore) InsertReservation(ctx context.Context, res *db.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.reservations {
		if existing.SpotID == res.SpotID && existing.Status == db.ReservationStatusActive {
			return db.ErrDuplicateActiveReservation
		}
	}
	res.ID = f.nextID
	f.nextID++
	copied := *res
	f.reservations[res.ID] = &copied
	return nil
}

func (f *fakeReservationStore) UpdateReservation(ctx context.Context, res *db.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.reservations[res.ID]; !ok {
		return db.ErrReservationNotFound
	}
	copied := *res
	f.reservations[res.ID] = &copied
	return nil
}

func (f *fakeReservationStore) FindActiveReservationBySpot(ctx context.Context, spotID int) (*db.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, res := range f.reservations {
		if res.SpotID == spotID && res.Status == db.ReservationStatusActive {
			copied := *res
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeReservationStore) ListReservations(ctx context.Context, date, status string) ([]db.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []db.Reservation
	for _, res := range f.reservations {
		if date != "" && res.EntryTime.Format("2006-01-02") != date {
			continue
		}
		if status != "" && res.Status != status {
			continue
		}
		out = append(out, *res)
	}
	return out, nil
}

// seedActive plants an active reservation directly, bypassing the service.
func (f *fakeReservationStore) seedActive(spotID int, entry time.Time) *db.Reservation {
	res := &db.Reservation{
		CustomerID: 1,
		VehicleID:  1,
		SpotID:     spotID,
		EntryTime:  entry,
		Status:     db.ReservationStatusActive,
	}
	if err := f.InsertReservation(context.Background(), res); err != nil {
		panic(err)
	}
	return res
}
