package services

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"transport-backend/internal/models"
	"transport-backend/internal/repository"
)

type CreateBusRequest struct {
	BusNo    string `json:"busNo" validate:"required"`
	RegNo    string `json:"regNo" validate:"required"`
	Model    string `json:"model"`
	Capacity int    `json:"capacity" validate:"required,min=1"`
	Driver   string `json:"driver"`
}

type UpdateBusRequest struct {
	Model    string `json:"model"`
	Capacity int    `json:"capacity" validate:"omitempty,min=1"`
	Driver   string `json:"driver"`
}

type BusService struct {
	busRepo   *repository.BusRepository
	validator *validator.Validate
}

func NewBusService(busRepo *repository.BusRepository) *BusService {
	return &BusService{
		busRepo:   busRepo,
		validator: validator.New(),
	}
}

// CreateBus registers a bus. New buses always enter service as Active;
// any other starting status has to go through a status transition with
// a reason.
func (s *BusService) CreateBus(req *CreateBusRequest, now time.Time) (*models.Bus, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	bus := &models.Bus{
		ID:        uuid.NewString(),
		BusNo:     req.BusNo,
		RegNo:     req.RegNo,
		Model:     req.Model,
		Capacity:  req.Capacity,
		Driver:    req.Driver,
		Lifecycle: models.NewLifecycle(),
		Documents: []models.ComplianceDocument{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	return s.busRepo.Create(bus)
}

func (s *BusService) GetBus(id string) (*models.Bus, error) {
	return s.busRepo.FindByID(id)
}

func (s *BusService) GetBusByNumber(busNo string) (*models.Bus, error) {
	return s.busRepo.FindByBusNo(busNo)
}

func (s *BusService) ListBuses() ([]*models.Bus, error) {
	return s.busRepo.FindAll()
}

func (s *BusService) ListBusesByStatus(status models.LifecycleStatus) ([]*models.Bus, error) {
	return s.busRepo.FindByStatus(status)
}

// UpdateBus changes descriptive fields only. Status, documents and the
// audit trail are owned by the status and compliance services.
func (s *BusService) UpdateBus(id string, req *UpdateBusRequest, now time.Time) (*models.Bus, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	bus, err := s.busRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if req.Model != "" {
		bus.Model = req.Model
	}
	if req.Capacity > 0 {
		bus.Capacity = req.Capacity
	}
	if req.Driver != "" {
		bus.Driver = req.Driver
	}
	bus.UpdatedAt = now

	return s.busRepo.Update(id, bus)
}

func (s *BusService) DeleteBus(id string) error {
	return s.busRepo.Delete(id)
}
