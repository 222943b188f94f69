package repository

import (
	"errors"
	"sort"
	"sync"

	"transport-backend/internal/models"
)

type DriverRepository struct {
	mu      sync.RWMutex
	drivers map[string]*models.Driver
}

func NewDriverRepository() *DriverRepository {
	return &DriverRepository{
		drivers: make(map[string]*models.Driver),
	}
}

func (r *DriverRepository) Create(driver *models.Driver) (*models.Driver, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.drivers {
		if existing.LicenseNo == driver.LicenseNo {
			return nil, errors.New("license number already exists")
		}
	}

	r.drivers[driver.ID] = cloneDriver(driver)
	return driver, nil
}

func (r *DriverRepository) FindByID(id string) (*models.Driver, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	driver, ok := r.drivers[id]
	if !ok {
		return nil, errors.New("driver not found")
	}
	return cloneDriver(driver), nil
}

func (r *DriverRepository) FindAll() ([]*models.Driver, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	drivers := make([]*models.Driver, 0, len(r.drivers))
	for _, driver := range r.drivers {
		drivers = append(drivers, cloneDriver(driver))
	}
	sort.Slice(drivers, func(i, j int) bool { return drivers[i].Name < drivers[j].Name })
	return drivers, nil
}

func (r *DriverRepository) FindByStatus(status models.LifecycleStatus) ([]*models.Driver, error) {
	all, err := r.FindAll()
	if err != nil {
		return nil, err
	}

	var drivers []*models.Driver
	for _, driver := range all {
		if driver.Lifecycle.Status == status {
			drivers = append(drivers, driver)
		}
	}
	return drivers, nil
}

func (r *DriverRepository) Update(id string, driver *models.Driver) (*models.Driver, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.drivers[id]; !ok {
		return nil, errors.New("driver not found")
	}

	r.drivers[id] = cloneDriver(driver)
	return driver, nil
}

func (r *DriverRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.drivers[id]; !ok {
		return errors.New("driver not found")
	}
	delete(r.drivers, id)
	return nil
}

func cloneDriver(driver *models.Driver) *models.Driver {
	out := *driver
	out.Documents = append([]models.ComplianceDocument(nil), driver.Documents...)
	out.Lifecycle = cloneLifecycle(driver.Lifecycle)
	return &out
}
