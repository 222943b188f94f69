package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"transport-backend/internal/services"
	"transport-backend/pkg/utils"
)

type RouteHandler struct {
	routeService *services.RouteService
	validator    *validator.Validate
}

func NewRouteHandler(routeService *services.RouteService) *RouteHandler {
	return &RouteHandler{
		routeService: routeService,
		validator:    validator.New(),
	}
}

// GetRoutes retrieves all routes.
func (h *RouteHandler) GetRoutes(c *gin.Context) {
	routes, err := h.routeService.ListRoutes()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve routes", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Routes retrieved successfully", routes)
}

// GetRoute retrieves a specific route by ID.
func (h *RouteHandler) GetRoute(c *gin.Context) {
	routeID := c.Param("id")
	if routeID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Route ID is required", nil)
		return
	}

	route, err := h.routeService.GetRoute(routeID)
	if err != nil {
		utils.ErrorResponse(c, http.StatusNotFound, "Route not found", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Route retrieved successfully", route)
}

// CreateRoute registers a new route with its stop sequence.
func (h *RouteHandler) CreateRoute(c *gin.Context) {
	var req services.CreateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	route, err := h.routeService.CreateRoute(&req, time.Now())
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Failed to create route", err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Route created successfully", route)
}

// UpdateRoute updates a route.
func (h *RouteHandler) UpdateRoute(c *gin.Context) {
	routeID := c.Param("id")
	if routeID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Route ID is required", nil)
		return
	}

	var req services.UpdateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	route, err := h.routeService.UpdateRoute(routeID, &req, time.Now())
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Failed to update route", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Route updated successfully", route)
}

// DeleteRoute removes a route.
func (h *RouteHandler) DeleteRoute(c *gin.Context) {
	routeID := c.Param("id")
	if routeID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Route ID is required", nil)
		return
	}

	if err := h.routeService.DeleteRoute(routeID); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Failed to delete route", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Route deleted successfully", nil)
}
