package service

import (
	"sort"
	"time"

	"drivelux/internal/db"
	"drivelux/internal/repository"
)

// fakeStore is an in-memory stand-in for both repository interfaces so the
// service layer can be tested without a database.
type fakeStore struct {
	vehicles     map[int]db.Vehicle
	units        map[int]int
	blocks       []db.AvailabilityBlock
	reservations []db.Reservation
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		vehicles: make(map[int]db.Vehicle),
		units:    make(map[int]int),
	}
}

func (f *fakeStore) addVehicle(id int, name string, status db.VehicleStatus) {
	f.vehicles[id] = db.Vehicle{ID: id, Name: name, Status: status}
}

func (f *fakeStore) addReservation(vehicleID int, day time.Time, status db.ReservationStatus) {
	f.reservations = append(f.reservations, db.Reservation{
		ID:            len(f.reservations) + 1,
		VehicleID:     vehicleID,
		VehicleName:   f.vehicles[vehicleID].Name,
		PackageName:   "City Tour",
		CustomerName:  "Test Customer",
		CustomerEmail: "customer@example.com",
		CustomerPhone: "+15550100",
		EventDate:     day,
		StartTime:     "10:00",
		EndTime:       "14:00",
		Status:        status,
	})
}

func inRange(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}

// AvailabilityStore

func (f *fakeStore) GetVehicleByID(id int) (*db.Vehicle, error) {
	v, ok := f.vehicles[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (f *fakeStore) ListActiveVehicles() ([]db.Vehicle, error) {
	var out []db.Vehicle
	for _, v := range f.vehicles {
		if v.Status == db.VehicleActive {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeStore) GetUnitCount(vehicleID int) (int, error) {
	if q, ok := f.units[vehicleID]; ok {
		return q, nil
	}
	return 1, nil
}

func (f *fakeStore) GetUnitCounts(vehicleIDs []int) (map[int]int, error) {
	out := make(map[int]int)
	for _, id := range vehicleIDs {
		if q, ok := f.units[id]; ok {
			out[id] = q
		}
	}
	return out, nil
}

func (f *fakeStore) GetBlocksInRange(vehicleID int, start, end time.Time) ([]db.AvailabilityBlock, error) {
	var out []db.AvailabilityBlock
	for _, b := range f.blocks {
		if vehicleID > 0 && b.VehicleID != vehicleID {
			continue
		}
		if inRange(b.Day, start, end) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeStore) CountActiveReservations(vehicleID int, start, end time.Time) (int, error) {
	count := 0
	for _, r := range f.reservations {
		if r.VehicleID == vehicleID && r.Status.ConsumesCapacity() && inRange(r.EventDate, start, end) {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) GetActiveReservationsInRange(vehicleID int, start, end time.Time) ([]db.Reservation, error) {
	var out []db.Reservation
	for _, r := range f.reservations {
		if vehicleID > 0 && r.VehicleID != vehicleID {
			continue
		}
		if r.Status.ConsumesCapacity() && inRange(r.EventDate, start, end) {
			out = append(out, r)
		}
	}
	return out, nil
}

// BlockStore

func (f *fakeStore) CreateBlock(b *db.AvailabilityBlock) error {
	for _, existing := range f.blocks {
		if existing.VehicleID == b.VehicleID && existing.Day.Equal(b.Day) {
			return repository.ErrDuplicateBlock
		}
	}
	f.blocks = append(f.blocks, *b)
	return nil
}

func (f *fakeStore) BlockExists(vehicleID int, day time.Time) (bool, error) {
	for _, b := range f.blocks {
		if b.VehicleID == vehicleID && b.Day.Equal(day) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) DeleteBlock(id string) (bool, error) {
	for i, b := range f.blocks {
		if b.ID == id {
			f.blocks = append(f.blocks[:i], f.blocks[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) ListBlocksFrom(vehicleID int, from time.Time) ([]db.AvailabilityBlock, error) {
	var out []db.AvailabilityBlock
	for _, b := range f.blocks {
		if b.VehicleID == vehicleID && !b.Day.Before(from) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day.Before(out[j].Day) })
	return out, nil
}

func (f *fakeStore) DeleteBlocksBefore(day time.Time) (int64, error) {
	var kept []db.AvailabilityBlock
	var purged int64
	for _, b := range f.blocks {
		if b.Day.Before(day) {
			purged++
			continue
		}
		kept = append(kept, b)
	}
	f.blocks = kept
	return purged, nil
}
