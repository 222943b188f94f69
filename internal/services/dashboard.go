package services

import (
	"time"

	"transport-backend/internal/repository"
)

// DashboardService derives the stat counts shown on the admin
// landing page. Everything is computed from live repository state.
type DashboardService struct {
	busRepo     *repository.BusRepository
	driverRepo  *repository.DriverRepository
	studentRepo *repository.StudentRepository
	routeRepo   *repository.RouteRepository
	tripRepo    *repository.TripRepository
	alerts      *AlertService
}

func NewDashboardService(
	busRepo *repository.BusRepository,
	driverRepo *repository.DriverRepository,
	studentRepo *repository.StudentRepository,
	routeRepo *repository.RouteRepository,
	tripRepo *repository.TripRepository,
	alerts *AlertService,
) *DashboardService {
	return &DashboardService{
		busRepo:     busRepo,
		driverRepo:  driverRepo,
		studentRepo: studentRepo,
		routeRepo:   routeRepo,
		tripRepo:    tripRepo,
		alerts:      alerts,
	}
}

type DashboardStats struct {
	Buses    map[string]int         `json:"buses"`
	Drivers  map[string]int         `json:"drivers"`
	Students int                    `json:"students"`
	Routes   int                    `json:"routes"`
	Trips    map[string]int         `json:"trips"`
	Alerts   map[string]interface{} `json:"alerts"`
}

func (s *DashboardService) Stats(now time.Time) (*DashboardStats, error) {
	buses, err := s.busRepo.FindAll()
	if err != nil {
		return nil, err
	}
	drivers, err := s.driverRepo.FindAll()
	if err != nil {
		return nil, err
	}
	studentCount, err := s.studentRepo.Count()
	if err != nil {
		return nil, err
	}
	routeCount, err := s.routeRepo.Count()
	if err != nil {
		return nil, err
	}
	trips, err := s.tripRepo.FindAll()
	if err != nil {
		return nil, err
	}
	alertSummary, err := s.alerts.Summary(now)
	if err != nil {
		return nil, err
	}

	busCounts := map[string]int{"total": len(buses)}
	for _, bus := range buses {
		busCounts[string(bus.Lifecycle.Status)]++
	}

	driverCounts := map[string]int{"total": len(drivers)}
	for _, driver := range drivers {
		driverCounts[string(driver.Lifecycle.Status)]++
	}

	tripCounts := map[string]int{"total": len(trips)}
	for _, trip := range trips {
		tripCounts[string(trip.State)]++
	}

	return &DashboardStats{
		Buses:    busCounts,
		Drivers:  driverCounts,
		Students: studentCount,
		Routes:   routeCount,
		Trips:    tripCounts,
		Alerts:   alertSummary,
	}, nil
}
