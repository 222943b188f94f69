package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transport-backend/internal/models"
	"transport-backend/internal/repository"
	"transport-backend/internal/services"
)

func newStatusRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	busRepo := repository.NewBusRepository()
	driverRepo := repository.NewDriverRepository()
	studentRepo := repository.NewStudentRepository()

	_, err := busRepo.Create(&models.Bus{
		ID: "bus-1", BusNo: "AP01AB1234", RegNo: "AP01AB1234",
		Capacity: 50, Lifecycle: models.NewLifecycle(),
	})
	require.NoError(t, err)

	handler := NewStatusHandler(services.NewStatusService(busRepo, driverRepo, studentRepo))

	router := gin.New()
	router.POST("/api/v1/buses/:id/status", handler.ChangeBusStatus)
	router.GET("/api/v1/buses/:id/status/history", handler.BusAuditTrail)
	return router
}

func getJSON(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestChangeBusStatusEndpoint(t *testing.T) {
	router := newStatusRouter(t)

	body, _ := json.Marshal(map[string]string{
		"newStatus": "Maintenance",
		"reason":    "Gearbox overhaul at depot workshop",
	})
	w := postJSON(router, "/api/v1/buses/bus-1/status", body)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			CurrentStatus string `json:"currentStatus"`
			Deferred      bool   `json:"deferred"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Maintenance", resp.Data.CurrentStatus)
	assert.False(t, resp.Data.Deferred)
}

func TestChangeBusStatusShortReason(t *testing.T) {
	router := newStatusRouter(t)

	body, _ := json.Marshal(map[string]string{
		"newStatus": "Maintenance",
		"reason":    "broken",
	})
	w := postJSON(router, "/api/v1/buses/bus-1/status", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChangeBusStatusNoOpRejected(t *testing.T) {
	router := newStatusRouter(t)

	body, _ := json.Marshal(map[string]string{
		"newStatus": "Active",
		"reason":    "it is already active anyway",
	})
	w := postJSON(router, "/api/v1/buses/bus-1/status", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already Active")
}

func TestChangeBusStatusUnknownEntity(t *testing.T) {
	router := newStatusRouter(t)

	body, _ := json.Marshal(map[string]string{
		"newStatus": "Maintenance",
		"reason":    "Gearbox overhaul at depot workshop",
	})
	w := postJSON(router, "/api/v1/buses/missing/status", body)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBusAuditTrailEndpoint(t *testing.T) {
	router := newStatusRouter(t)

	body, _ := json.Marshal(map[string]string{
		"newStatus": "Maintenance",
		"reason":    "Gearbox overhaul at depot workshop",
	})
	require.Equal(t, http.StatusOK, postJSON(router, "/api/v1/buses/bus-1/status", body).Code)

	w := getJSON(router, "/api/v1/buses/bus-1/status/history")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []struct {
			PreviousStatus string `json:"previousStatus"`
			NewStatus      string `json:"newStatus"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Active", resp.Data[0].PreviousStatus)
	assert.Equal(t, "Maintenance", resp.Data[0].NewStatus)
}
