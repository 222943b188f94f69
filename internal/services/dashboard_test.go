package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transport-backend/internal/models"
	"transport-backend/internal/repository"
)

func TestDashboardStatsCountsByStatus(t *testing.T) {
	busRepo := repository.NewBusRepository()
	driverRepo := repository.NewDriverRepository()
	studentRepo := repository.NewStudentRepository()
	routeRepo := repository.NewRouteRepository()
	tripRepo := repository.NewTripRepository()

	_, err := busRepo.Create(busWithDocs("bus-1", "AP01AB1234"))
	require.NoError(t, err)
	_, err = busRepo.Create(busWithDocs("bus-2", "AP01AB5678"))
	require.NoError(t, err)
	maintenance := busWithDocs("bus-3", "AP01AC7890")
	maintenance.Lifecycle.Status = models.StatusMaintenance
	_, err = busRepo.Create(maintenance)
	require.NoError(t, err)

	_, err = driverRepo.Create(&models.Driver{
		ID: "driver-1", Name: "Raj Kumar", Phone: "x", LicenseNo: "DL12345678",
		Lifecycle: models.NewLifecycle(),
	})
	require.NoError(t, err)

	_, err = studentRepo.Create(&models.Student{
		ID: "student-1", StudentNo: "S001", Name: "Priya Sharma",
		Lifecycle: models.NewLifecycle(),
	})
	require.NoError(t, err)

	_, err = routeRepo.Create(&models.Route{ID: "route-1", Name: "Gudur Main", Status: models.RouteActive})
	require.NoError(t, err)

	_, err = tripRepo.Create(&models.Trip{ID: "trip-1", BusNo: "AP01AB1234", State: models.TripRunning, ScheduledAt: clock})
	require.NoError(t, err)
	_, err = tripRepo.Create(&models.Trip{ID: "trip-2", BusNo: "AP01AB5678", State: models.TripPlanned, ScheduledAt: clock.Add(time.Hour)})
	require.NoError(t, err)

	alerts := NewAlertService(busRepo, driverRepo, tripRepo)
	svc := NewDashboardService(busRepo, driverRepo, studentRepo, routeRepo, tripRepo, alerts)

	stats, err := svc.Stats(clock)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Buses["total"])
	assert.Equal(t, 2, stats.Buses[string(models.StatusActive)])
	assert.Equal(t, 1, stats.Buses[string(models.StatusMaintenance)])
	assert.Equal(t, 1, stats.Drivers["total"])
	assert.Equal(t, 1, stats.Students)
	assert.Equal(t, 1, stats.Routes)
	assert.Equal(t, 2, stats.Trips["total"])
	assert.Equal(t, 1, stats.Trips[string(models.TripRunning)])
	assert.Contains(t, stats.Alerts, "total")
}
