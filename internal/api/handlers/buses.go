package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"transport-backend/internal/models"
	"transport-backend/internal/services"
	"transport-backend/pkg/utils"
)

type BusHandler struct {
	busService *services.BusService
	validator  *validator.Validate
}

func NewBusHandler(busService *services.BusService) *BusHandler {
	return &BusHandler{
		busService: busService,
		validator:  validator.New(),
	}
}

// GetBuses retrieves the fleet, optionally filtered by status.
func (h *BusHandler) GetBuses(c *gin.Context) {
	if status := c.Query("status"); status != "" {
		parsed, err := models.ParseLifecycleStatus(models.EntityKindBus, status)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "Unknown bus status", err)
			return
		}
		buses, err := h.busService.ListBusesByStatus(parsed)
		if err != nil {
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve buses", err)
			return
		}
		utils.SuccessResponse(c, http.StatusOK, "Buses retrieved successfully", buses)
		return
	}

	buses, err := h.busService.ListBuses()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve buses", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Buses retrieved successfully", buses)
}

// GetBus retrieves a specific bus by ID.
func (h *BusHandler) GetBus(c *gin.Context) {
	busID := c.Param("id")
	if busID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Bus ID is required", nil)
		return
	}

	bus, err := h.busService.GetBus(busID)
	if err != nil {
		utils.ErrorResponse(c, http.StatusNotFound, "Bus not found", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Bus retrieved successfully", bus)
}

// CreateBus registers a new bus.
func (h *BusHandler) CreateBus(c *gin.Context) {
	var req services.CreateBusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	bus, err := h.busService.CreateBus(&req, time.Now())
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Failed to create bus", err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Bus created successfully", bus)
}

// UpdateBus updates a bus's descriptive fields.
func (h *BusHandler) UpdateBus(c *gin.Context) {
	busID := c.Param("id")
	if busID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Bus ID is required", nil)
		return
	}

	var req services.UpdateBusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	bus, err := h.busService.UpdateBus(busID, &req, time.Now())
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Failed to update bus", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Bus updated successfully", bus)
}

// DeleteBus removes a bus from the fleet.
func (h *BusHandler) DeleteBus(c *gin.Context) {
	busID := c.Param("id")
	if busID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Bus ID is required", nil)
		return
	}

	if err := h.busService.DeleteBus(busID); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Failed to delete bus", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Bus deleted successfully", nil)
}
