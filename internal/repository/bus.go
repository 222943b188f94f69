package repository

import (
	"errors"
	"sort"
	"sync"

	"transport-backend/internal/models"
)

// BusRepository is an in-memory store. Reads hand out copies, so a
// caller's edits only land when it calls Update.
type BusRepository struct {
	mu    sync.RWMutex
	buses map[string]*models.Bus
}

func NewBusRepository() *BusRepository {
	return &BusRepository{
		buses: make(map[string]*models.Bus),
	}
}

func (r *BusRepository) Create(bus *models.Bus) (*models.Bus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.buses {
		if existing.BusNo == bus.BusNo {
			return nil, errors.New("bus number already exists")
		}
	}

	r.buses[bus.ID] = cloneBus(bus)
	return bus, nil
}

func (r *BusRepository) FindByID(id string) (*models.Bus, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bus, ok := r.buses[id]
	if !ok {
		return nil, errors.New("bus not found")
	}
	return cloneBus(bus), nil
}

func (r *BusRepository) FindByBusNo(busNo string) (*models.Bus, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, bus := range r.buses {
		if bus.BusNo == busNo {
			return cloneBus(bus), nil
		}
	}
	return nil, errors.New("bus not found")
}

func (r *BusRepository) FindAll() ([]*models.Bus, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	buses := make([]*models.Bus, 0, len(r.buses))
	for _, bus := range r.buses {
		buses = append(buses, cloneBus(bus))
	}
	sort.Slice(buses, func(i, j int) bool { return buses[i].BusNo < buses[j].BusNo })
	return buses, nil
}

func (r *BusRepository) FindByStatus(status models.LifecycleStatus) ([]*models.Bus, error) {
	all, err := r.FindAll()
	if err != nil {
		return nil, err
	}

	var buses []*models.Bus
	for _, bus := range all {
		if bus.Lifecycle.Status == status {
			buses = append(buses, bus)
		}
	}
	return buses, nil
}

func (r *BusRepository) Update(id string, bus *models.Bus) (*models.Bus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.buses[id]; !ok {
		return nil, errors.New("bus not found")
	}

	r.buses[id] = cloneBus(bus)
	return bus, nil
}

func (r *BusRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.buses[id]; !ok {
		return errors.New("bus not found")
	}
	delete(r.buses, id)
	return nil
}

func (r *BusRepository) Count() (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.buses), nil
}

func cloneBus(bus *models.Bus) *models.Bus {
	out := *bus
	out.Documents = append([]models.ComplianceDocument(nil), bus.Documents...)
	out.Lifecycle = cloneLifecycle(bus.Lifecycle)
	return &out
}

func cloneLifecycle(l models.Lifecycle) models.Lifecycle {
	return models.Lifecycle{
		Status:    l.Status,
		Trail:     append([]models.StatusChangeRecord(nil), l.Trail...),
		Scheduled: append([]models.StatusChangeRecord(nil), l.Scheduled...),
	}
}
