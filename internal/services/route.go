package services

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"transport-backend/internal/models"
	"transport-backend/internal/repository"
)

type StopRequest struct {
	Name       string  `json:"name" validate:"required"`
	DistanceKm float64 `json:"distanceKm" validate:"min=0"`
	PlannedAt  string  `json:"plannedTime"`
	WaitMin    int     `json:"waitMin" validate:"min=0"`
}

type CreateRouteRequest struct {
	Name       string        `json:"name" validate:"required"`
	Status     string        `json:"status" validate:"omitempty,oneof=Active Scheduled Inactive"`
	Stops      []StopRequest `json:"stops" validate:"required,min=2,dive"`
	DistanceKm float64       `json:"distanceKm" validate:"min=0"`
	Duration   string        `json:"duration"`
}

type UpdateRouteRequest struct {
	Status     string        `json:"status" validate:"omitempty,oneof=Active Scheduled Inactive"`
	Stops      []StopRequest `json:"stops" validate:"omitempty,min=2,dive"`
	DistanceKm float64       `json:"distanceKm" validate:"min=0"`
	Duration   string        `json:"duration"`
}

type RouteService struct {
	routeRepo *repository.RouteRepository
	validator *validator.Validate
}

func NewRouteService(routeRepo *repository.RouteRepository) *RouteService {
	return &RouteService{
		routeRepo: routeRepo,
		validator: validator.New(),
	}
}

// CreateRoute registers a route with its ordered stop sequence. A
// route needs at least an origin and a destination stop.
func (s *RouteService) CreateRoute(req *CreateRouteRequest, now time.Time) (*models.Route, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	status := models.RouteActive
	if req.Status != "" {
		status = models.RouteStatus(req.Status)
	}

	route := &models.Route{
		ID:         uuid.NewString(),
		Name:       req.Name,
		Status:     status,
		Stops:      stopsFromRequest(req.Stops),
		DistanceKm: req.DistanceKm,
		Duration:   req.Duration,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	return s.routeRepo.Create(route)
}

func (s *RouteService) GetRoute(id string) (*models.Route, error) {
	return s.routeRepo.FindByID(id)
}

func (s *RouteService) ListRoutes() ([]*models.Route, error) {
	return s.routeRepo.FindAll()
}

func (s *RouteService) UpdateRoute(id string, req *UpdateRouteRequest, now time.Time) (*models.Route, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	route, err := s.routeRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if req.Status != "" {
		route.Status = models.RouteStatus(req.Status)
	}
	if len(req.Stops) > 0 {
		route.Stops = stopsFromRequest(req.Stops)
	}
	if req.DistanceKm > 0 {
		route.DistanceKm = req.DistanceKm
	}
	if req.Duration != "" {
		route.Duration = req.Duration
	}
	route.UpdatedAt = now

	return s.routeRepo.Update(id, route)
}

func (s *RouteService) DeleteRoute(id string) error {
	return s.routeRepo.Delete(id)
}

func stopsFromRequest(reqs []StopRequest) []models.Stop {
	stops := make([]models.Stop, len(reqs))
	for i, r := range reqs {
		stops[i] = models.Stop{
			Name:       r.Name,
			DistanceKm: r.DistanceKm,
			PlannedAt:  r.PlannedAt,
			WaitMin:    r.WaitMin,
		}
	}
	return stops
}
