package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"

	"transport-backend/internal/api/handlers"
	"transport-backend/internal/api/middleware"
	"transport-backend/internal/config"
	"transport-backend/internal/repository"
	"transport-backend/internal/services"
	"transport-backend/pkg/jwt"
	"transport-backend/pkg/ratelimit"
)

// SetupRoutes wires every handler. The status service is passed in
// rather than built here so the reconcile ticker and the handlers
// share one set of per-entity reservations.
func SetupRoutes(router *gin.Engine, cfg *config.Config, store *repository.Store, jwtUtil *jwt.JWTUtil, limiter ratelimit.Limiter, statusService *services.StatusService) {
	// Initialize services
	authService := services.NewAuthService(store.Users, jwtUtil)
	busService := services.NewBusService(store.Buses)
	driverService := services.NewDriverService(store.Drivers)
	studentService := services.NewStudentService(store.Students)
	routeService := services.NewRouteService(store.Routes)
	tripService := services.NewTripService(store.Trips, store.Routes, store.Buses)
	complianceService := services.NewComplianceService(store.Buses, store.Drivers)
	alertService := services.NewAlertService(store.Buses, store.Drivers, store.Trips)
	dashboardService := services.NewDashboardService(store.Buses, store.Drivers, store.Students, store.Routes, store.Trips, alertService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, cfg.SimulatedLatency)
	busHandler := handlers.NewBusHandler(busService)
	driverHandler := handlers.NewDriverHandler(driverService)
	studentHandler := handlers.NewStudentHandler(studentService)
	routeHandler := handlers.NewRouteHandler(routeService)
	tripHandler := handlers.NewTripHandler(tripService)
	statusHandler := handlers.NewStatusHandler(statusService)
	complianceHandler := handlers.NewComplianceHandler(complianceService)
	alertHandler := handlers.NewAlertHandler(alertService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	healthHandler := handlers.NewHealthHandler()

	// Short-lived cache for the derived read endpoints
	readCache := cache.New(5*time.Second, time.Minute)

	// API routes
	api := router.Group("/api/v1")

	api.GET("/health", healthHandler.Health)

	// Public routes
	auth := api.Group("/auth")
	auth.Use(middleware.RateLimit(limiter))
	{
		auth.POST("/login", authHandler.Login)
	}

	// Protected routes
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(jwtUtil))
	{
		// Buses
		buses := protected.Group("/buses")
		{
			buses.GET("", busHandler.GetBuses)
			buses.POST("", busHandler.CreateBus)
			buses.GET("/:id", busHandler.GetBus)
			buses.PATCH("/:id", busHandler.UpdateBus)
			buses.DELETE("/:id", busHandler.DeleteBus)

			buses.POST("/:id/status", statusHandler.ChangeBusStatus)
			buses.GET("/:id/status/history", statusHandler.BusAuditTrail)
			buses.DELETE("/:id/status/scheduled/:recordId", statusHandler.WithdrawBusScheduled)

			buses.GET("/:id/documents", complianceHandler.GetBusDocuments)
			buses.PUT("/:id/documents", complianceHandler.UpsertBusDocument)
		}

		// Drivers
		drivers := protected.Group("/drivers")
		{
			drivers.GET("", driverHandler.GetDrivers)
			drivers.POST("", driverHandler.CreateDriver)
			drivers.GET("/:id", driverHandler.GetDriver)
			drivers.PATCH("/:id", driverHandler.UpdateDriver)
			drivers.DELETE("/:id", driverHandler.DeleteDriver)

			drivers.POST("/:id/status", statusHandler.ChangeDriverStatus)
			drivers.GET("/:id/status/history", statusHandler.DriverAuditTrail)
			drivers.DELETE("/:id/status/scheduled/:recordId", statusHandler.WithdrawDriverScheduled)

			drivers.PUT("/:id/documents", complianceHandler.UpsertDriverDocument)
		}

		// Students
		students := protected.Group("/students")
		{
			students.GET("", studentHandler.GetStudents)
			students.POST("", studentHandler.CreateStudent)
			students.GET("/:id", studentHandler.GetStudent)
			students.PATCH("/:id", studentHandler.UpdateStudent)
			students.DELETE("/:id", studentHandler.DeleteStudent)

			students.POST("/:id/status", statusHandler.ChangeStudentStatus)
			students.GET("/:id/status/history", statusHandler.StudentAuditTrail)
			students.DELETE("/:id/status/scheduled/:recordId", statusHandler.WithdrawStudentScheduled)
		}

		// Routes
		busRoutes := protected.Group("/routes")
		{
			busRoutes.GET("", routeHandler.GetRoutes)
			busRoutes.POST("", routeHandler.CreateRoute)
			busRoutes.GET("/:id", routeHandler.GetRoute)
			busRoutes.PATCH("/:id", routeHandler.UpdateRoute)
			busRoutes.DELETE("/:id", routeHandler.DeleteRoute)
		}

		// Trips
		trips := protected.Group("/trips")
		{
			trips.GET("", tripHandler.GetTrips)
			trips.POST("", tripHandler.ScheduleTrip)
			trips.GET("/:id", tripHandler.GetTrip)
			trips.POST("/:id/start", tripHandler.StartTrip)
			trips.POST("/:id/advance", tripHandler.AdvanceTrip)
			trips.POST("/:id/issues", tripHandler.RecordIssue)
			trips.DELETE("/:id/issues/:tag", tripHandler.ClearIssue)
			trips.POST("/:id/resume", tripHandler.ResumeTrip)
			trips.POST("/:id/complete", tripHandler.CompleteTrip)
			trips.POST("/:id/cancel", tripHandler.CancelTrip)
			trips.POST("/stop-all", tripHandler.StopAllTrips)
		}

		// Derived reads
		alerts := protected.Group("/alerts")
		alerts.Use(middleware.CacheResponses(readCache, 5*time.Second))
		{
			alerts.GET("", alertHandler.GetAlerts)
			alerts.GET("/summary", alertHandler.GetAlertSummary)
		}

		dashboard := protected.Group("/dashboard")
		dashboard.Use(middleware.CacheResponses(readCache, 5*time.Second))
		{
			dashboard.GET("/stats", dashboardHandler.GetStats)
		}

		// Operational maintenance
		admin := protected.Group("/admin")
		admin.Use(middleware.RequireRole("superadmin"))
		{
			admin.POST("/reconcile", statusHandler.Reconcile)
		}
	}
}
