package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"transport-backend/internal/services"
	"transport-backend/pkg/utils"
)

type ComplianceHandler struct {
	complianceService *services.ComplianceService
	validator         *validator.Validate
}

func NewComplianceHandler(complianceService *services.ComplianceService) *ComplianceHandler {
	return &ComplianceHandler{
		complianceService: complianceService,
		validator:         validator.New(),
	}
}

// GetBusDocuments lists a bus's compliance documents with their
// classified expiry status, in the fixed display order.
func (h *ComplianceHandler) GetBusDocuments(c *gin.Context) {
	busID := c.Param("id")
	if busID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Bus ID is required", nil)
		return
	}

	docs, err := h.complianceService.BusDocuments(busID, time.Now())
	if err != nil {
		utils.ErrorResponse(c, http.StatusNotFound, "Bus not found", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Documents retrieved successfully", docs)
}

// UpsertBusDocument records or renews one of a bus's documents.
func (h *ComplianceHandler) UpsertBusDocument(c *gin.Context) {
	busID := c.Param("id")
	if busID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Bus ID is required", nil)
		return
	}

	var req services.UpsertDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	view, err := h.complianceService.UpsertBusDocument(busID, &req, time.Now())
	if err != nil {
		h.documentError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Document recorded successfully", view)
}

// UpsertDriverDocument records or renews a driver's license document.
func (h *ComplianceHandler) UpsertDriverDocument(c *gin.Context) {
	driverID := c.Param("id")
	if driverID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Driver ID is required", nil)
		return
	}

	var req services.UpsertDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	view, err := h.complianceService.UpsertDriverDocument(driverID, &req, time.Now())
	if err != nil {
		h.documentError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Document recorded successfully", view)
}

func (h *ComplianceHandler) documentError(c *gin.Context, err error) {
	var vErr *services.ValidationError
	if errors.As(err, &vErr) {
		utils.FieldErrorResponse(c, vErr.Fields)
		return
	}
	utils.ErrorResponse(c, http.StatusBadRequest, "Failed to record document", err)
}
