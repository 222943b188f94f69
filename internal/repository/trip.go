package repository

import (
	"errors"
	"sort"
	"sync"

	"transport-backend/internal/models"
)

type TripRepository struct {
	mu    sync.RWMutex
	trips map[string]*models.Trip
}

func NewTripRepository() *TripRepository {
	return &TripRepository{
		trips: make(map[string]*models.Trip),
	}
}

func (r *TripRepository) Create(trip *models.Trip) (*models.Trip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.trips[trip.ID]; ok {
		return nil, errors.New("trip already exists")
	}

	r.trips[trip.ID] = cloneTrip(trip)
	return trip, nil
}

func (r *TripRepository) FindByID(id string) (*models.Trip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	trip, ok := r.trips[id]
	if !ok {
		return nil, errors.New("trip not found")
	}
	return cloneTrip(trip), nil
}

func (r *TripRepository) FindAll() ([]*models.Trip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	trips := make([]*models.Trip, 0, len(r.trips))
	for _, trip := range r.trips {
		trips = append(trips, cloneTrip(trip))
	}
	sort.Slice(trips, func(i, j int) bool {
		if !trips[i].ScheduledAt.Equal(trips[j].ScheduledAt) {
			return trips[i].ScheduledAt.Before(trips[j].ScheduledAt)
		}
		return trips[i].ID < trips[j].ID
	})
	return trips, nil
}

func (r *TripRepository) FindByState(state models.TripState) ([]*models.Trip, error) {
	all, err := r.FindAll()
	if err != nil {
		return nil, err
	}

	var trips []*models.Trip
	for _, trip := range all {
		if trip.State == state {
			trips = append(trips, trip)
		}
	}
	return trips, nil
}

func (r *TripRepository) FindByBusNo(busNo string) ([]*models.Trip, error) {
	all, err := r.FindAll()
	if err != nil {
		return nil, err
	}

	var trips []*models.Trip
	for _, trip := range all {
		if trip.BusNo == busNo {
			trips = append(trips, trip)
		}
	}
	return trips, nil
}

func (r *TripRepository) Update(id string, trip *models.Trip) (*models.Trip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.trips[id]; !ok {
		return nil, errors.New("trip not found")
	}

	r.trips[id] = cloneTrip(trip)
	return trip, nil
}

func (r *TripRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.trips[id]; !ok {
		return errors.New("trip not found")
	}
	delete(r.trips, id)
	return nil
}

func cloneTrip(trip *models.Trip) *models.Trip {
	out := *trip
	out.Issues = append([]models.IssueTag(nil), trip.Issues...)
	return &out
}
