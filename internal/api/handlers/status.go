package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"transport-backend/internal/models"
	"transport-backend/internal/services"
	"transport-backend/pkg/utils"
)

// StatusHandler exposes the status transition ledger: proposing a
// change, reading an entity's audit trail, withdrawing a scheduled
// change and forcing a reconcile pass.
type StatusHandler struct {
	statusService *services.StatusService
	validator     *validator.Validate
}

func NewStatusHandler(statusService *services.StatusService) *StatusHandler {
	return &StatusHandler{
		statusService: statusService,
		validator:     validator.New(),
	}
}

func (h *StatusHandler) ChangeBusStatus(c *gin.Context)     { h.transition(c, models.EntityKindBus) }
func (h *StatusHandler) ChangeDriverStatus(c *gin.Context)  { h.transition(c, models.EntityKindDriver) }
func (h *StatusHandler) ChangeStudentStatus(c *gin.Context) { h.transition(c, models.EntityKindStudent) }

func (h *StatusHandler) BusAuditTrail(c *gin.Context)     { h.auditTrail(c, models.EntityKindBus) }
func (h *StatusHandler) DriverAuditTrail(c *gin.Context)  { h.auditTrail(c, models.EntityKindDriver) }
func (h *StatusHandler) StudentAuditTrail(c *gin.Context) { h.auditTrail(c, models.EntityKindStudent) }

func (h *StatusHandler) WithdrawBusScheduled(c *gin.Context)  { h.withdraw(c, models.EntityKindBus) }
func (h *StatusHandler) WithdrawDriverScheduled(c *gin.Context) {
	h.withdraw(c, models.EntityKindDriver)
}
func (h *StatusHandler) WithdrawStudentScheduled(c *gin.Context) {
	h.withdraw(c, models.EntityKindStudent)
}

// Reconcile promotes every scheduled status change that has come due.
// The server also runs this on a timer; the endpoint exists so an
// operator can force a pass after editing schedules.
func (h *StatusHandler) Reconcile(c *gin.Context) {
	promoted, err := h.statusService.Reconcile(time.Now())
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Reconcile failed", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Reconcile completed", gin.H{"promoted": promoted})
}

func (h *StatusHandler) transition(c *gin.Context, kind models.EntityKind) {
	entityID := c.Param("id")
	if entityID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Entity ID is required", nil)
		return
	}

	var req services.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	release, err := h.statusService.Acquire(entityID)
	if err != nil {
		utils.ErrorResponse(c, http.StatusConflict, "Another status change is in flight for this entity", err)
		return
	}
	defer release()

	result, err := h.statusService.Propose(kind, entityID, &req, actorFrom(c), time.Now())
	if err != nil {
		var vErr *services.ValidationError
		switch {
		case errors.As(err, &vErr):
			utils.FieldErrorResponse(c, vErr.Fields)
		case strings.HasSuffix(err.Error(), "not found"):
			utils.ErrorResponse(c, http.StatusNotFound, "Entity not found", err)
		default:
			utils.ErrorResponse(c, http.StatusBadRequest, "Failed to change status", err)
		}
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Status change recorded", result)
}

func (h *StatusHandler) auditTrail(c *gin.Context, kind models.EntityKind) {
	entityID := c.Param("id")
	if entityID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Entity ID is required", nil)
		return
	}

	trail, err := h.statusService.AuditTrail(kind, entityID)
	if err != nil {
		utils.ErrorResponse(c, http.StatusNotFound, "Entity not found", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Audit trail retrieved successfully", trail)
}

func (h *StatusHandler) withdraw(c *gin.Context, kind models.EntityKind) {
	entityID := c.Param("id")
	recordID := c.Param("recordId")
	if entityID == "" || recordID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Entity ID and record ID are required", nil)
		return
	}

	if err := h.statusService.WithdrawScheduled(kind, entityID, recordID, time.Now()); err != nil {
		utils.ErrorResponse(c, http.StatusNotFound, "Scheduled change not found", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Scheduled change withdrawn", nil)
}

// actorFrom recovers the acting user set by the auth middleware for
// the ledger's audit records.
func actorFrom(c *gin.Context) string {
	if email, ok := c.Get("email"); ok {
		if s, ok := email.(string); ok && s != "" {
			return s
		}
	}
	return "unknown"
}
