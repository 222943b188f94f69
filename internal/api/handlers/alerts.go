package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"transport-backend/internal/services"
	"transport-backend/pkg/utils"
)

type AlertHandler struct {
	alertService *services.AlertService
}

func NewAlertHandler(alertService *services.AlertService) *AlertHandler {
	return &AlertHandler{alertService: alertService}
}

// GetAlerts returns the current alert feed, derived fresh from fleet
// and trip state. Nothing is stored; two calls on unchanged state
// return the same feed.
func (h *AlertHandler) GetAlerts(c *gin.Context) {
	alerts, err := h.alertService.Collect(time.Now())
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to collect alerts", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Alerts retrieved successfully", alerts)
}

// GetAlertSummary returns alert counts grouped for the dashboard
// header.
func (h *AlertHandler) GetAlertSummary(c *gin.Context) {
	summary, err := h.alertService.Summary(time.Now())
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to summarize alerts", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Alert summary retrieved successfully", summary)
}
