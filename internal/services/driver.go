package services

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"transport-backend/internal/models"
	"transport-backend/internal/repository"
)

type CreateDriverRequest struct {
	Name        string `json:"name" validate:"required"`
	Phone       string `json:"phone" validate:"required"`
	LicenseNo   string `json:"licenseNo" validate:"required"`
	AssignedBus string `json:"assignedBus"`
}

type UpdateDriverRequest struct {
	Phone       string `json:"phone"`
	AssignedBus string `json:"assignedBus"`
}

type DriverService struct {
	driverRepo *repository.DriverRepository
	validator  *validator.Validate
}

func NewDriverService(driverRepo *repository.DriverRepository) *DriverService {
	return &DriverService{
		driverRepo: driverRepo,
		validator:  validator.New(),
	}
}

// CreateDriver registers a driver. New drivers always start Active.
func (s *DriverService) CreateDriver(req *CreateDriverRequest, now time.Time) (*models.Driver, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	assigned := req.AssignedBus
	if assigned == "" {
		assigned = "Unassigned"
	}

	driver := &models.Driver{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Phone:       req.Phone,
		LicenseNo:   req.LicenseNo,
		AssignedBus: assigned,
		Lifecycle:   models.NewLifecycle(),
		Documents:   []models.ComplianceDocument{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	return s.driverRepo.Create(driver)
}

func (s *DriverService) GetDriver(id string) (*models.Driver, error) {
	return s.driverRepo.FindByID(id)
}

func (s *DriverService) ListDrivers() ([]*models.Driver, error) {
	return s.driverRepo.FindAll()
}

func (s *DriverService) ListDriversByStatus(status models.LifecycleStatus) ([]*models.Driver, error) {
	return s.driverRepo.FindByStatus(status)
}

func (s *DriverService) UpdateDriver(id string, req *UpdateDriverRequest, now time.Time) (*models.Driver, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	driver, err := s.driverRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if req.Phone != "" {
		driver.Phone = req.Phone
	}
	if req.AssignedBus != "" {
		driver.AssignedBus = req.AssignedBus
	}
	driver.UpdatedAt = now

	return s.driverRepo.Update(id, driver)
}

func (s *DriverService) DeleteDriver(id string) error {
	return s.driverRepo.Delete(id)
}
