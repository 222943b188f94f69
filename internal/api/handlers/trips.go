package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"transport-backend/internal/models"
	"transport-backend/internal/services"
	"transport-backend/pkg/utils"
)

type TripHandler struct {
	tripService *services.TripService
	validator   *validator.Validate
}

func NewTripHandler(tripService *services.TripService) *TripHandler {
	return &TripHandler{
		tripService: tripService,
		validator:   validator.New(),
	}
}

// GetTrips retrieves all trips, optionally filtered by state.
func (h *TripHandler) GetTrips(c *gin.Context) {
	if state := c.Query("state"); state != "" {
		trips, err := h.tripService.GetTripsByState(models.TripState(state))
		if err != nil {
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve trips", err)
			return
		}
		utils.SuccessResponse(c, http.StatusOK, "Trips retrieved successfully", trips)
		return
	}

	trips, err := h.tripService.GetAllTrips()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve trips", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Trips retrieved successfully", trips)
}

// GetTrip retrieves a specific trip by ID.
func (h *TripHandler) GetTrip(c *gin.Context) {
	tripID := c.Param("id")
	if tripID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Trip ID is required", nil)
		return
	}

	trip, err := h.tripService.GetTripByID(tripID)
	if err != nil {
		utils.ErrorResponse(c, http.StatusNotFound, "Trip not found", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Trip retrieved successfully", trip)
}

// ScheduleTrip plans a new trip on a route.
func (h *TripHandler) ScheduleTrip(c *gin.Context) {
	var req services.ScheduleTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	trip, err := h.tripService.ScheduleTrip(&req, time.Now())
	if err != nil {
		h.tripError(c, "Failed to schedule trip", err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Trip scheduled successfully", trip)
}

// StartTrip moves a planned trip to Running.
func (h *TripHandler) StartTrip(c *gin.Context) {
	trip, err := h.tripService.StartTrip(c.Param("id"), time.Now())
	if err != nil {
		h.tripError(c, "Failed to start trip", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Trip started successfully", trip)
}

// AdvanceTrip records stop-sequence progress and an optional ETA.
func (h *TripHandler) AdvanceTrip(c *gin.Context) {
	var req services.AdvanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	trip, err := h.tripService.Advance(c.Param("id"), &req, time.Now())
	if err != nil {
		h.tripError(c, "Failed to advance trip", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Trip progress recorded", trip)
}

// RecordIssue tags the trip with an operational issue.
func (h *TripHandler) RecordIssue(c *gin.Context) {
	var req struct {
		Tag string `json:"tag" validate:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	trip, err := h.tripService.RecordIssue(c.Param("id"), req.Tag, time.Now())
	if err != nil {
		h.tripError(c, "Failed to record issue", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Issue recorded", trip)
}

// ClearIssue removes a previously recorded issue tag.
func (h *TripHandler) ClearIssue(c *gin.Context) {
	trip, err := h.tripService.ClearIssue(c.Param("id"), c.Param("tag"), time.Now())
	if err != nil {
		h.tripError(c, "Failed to clear issue", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Issue cleared", trip)
}

// ResumeTrip resumes a stopped trip.
func (h *TripHandler) ResumeTrip(c *gin.Context) {
	trip, err := h.tripService.ResumeTrip(c.Param("id"), time.Now())
	if err != nil {
		h.tripError(c, "Failed to resume trip", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Trip resumed successfully", trip)
}

// CompleteTrip marks the trip finished.
func (h *TripHandler) CompleteTrip(c *gin.Context) {
	trip, err := h.tripService.CompleteTrip(c.Param("id"), time.Now())
	if err != nil {
		h.tripError(c, "Failed to complete trip", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Trip completed successfully", trip)
}

// CancelTrip cancels a planned trip.
func (h *TripHandler) CancelTrip(c *gin.Context) {
	trip, err := h.tripService.CancelTrip(c.Param("id"), time.Now())
	if err != nil {
		h.tripError(c, "Failed to cancel trip", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Trip cancelled successfully", trip)
}

// StopAllTrips puts every active trip on an operator hold.
func (h *TripHandler) StopAllTrips(c *gin.Context) {
	stopped, err := h.tripService.StopAll(time.Now())
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to stop trips", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "All active trips stopped", gin.H{"stopped": stopped})
}

func (h *TripHandler) tripError(c *gin.Context, message string, err error) {
	var vErr *services.ValidationError
	var pErr *services.InvalidProgressError

	switch {
	case errors.As(err, &vErr):
		utils.FieldErrorResponse(c, vErr.Fields)
	case errors.As(err, &pErr):
		utils.ErrorResponse(c, http.StatusConflict, message, err)
	case err.Error() == "trip not found" || err.Error() == "route not found" || err.Error() == "bus not found":
		utils.ErrorResponse(c, http.StatusNotFound, message, err)
	default:
		utils.ErrorResponse(c, http.StatusBadRequest, message, err)
	}
}
