package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transport-backend/internal/repository"
)

func TestBusTimestampsFollowCallerClock(t *testing.T) {
	svc := NewBusService(repository.NewBusRepository())

	bus, err := svc.CreateBus(&CreateBusRequest{
		BusNo: "AP01AB1234", RegNo: "AP01AB1234", Capacity: 50,
	}, clock)
	require.NoError(t, err)
	assert.True(t, bus.CreatedAt.Equal(clock))
	assert.True(t, bus.UpdatedAt.Equal(clock))

	later := clock.Add(time.Hour)
	updated, err := svc.UpdateBus(bus.ID, &UpdateBusRequest{Driver: "Raj Kumar"}, later)
	require.NoError(t, err)
	assert.True(t, updated.CreatedAt.Equal(clock))
	assert.True(t, updated.UpdatedAt.Equal(later))

	stored, err := svc.GetBus(bus.ID)
	require.NoError(t, err)
	assert.True(t, stored.UpdatedAt.Equal(later))
	assert.Equal(t, "Raj Kumar", stored.Driver)
}
