package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transport-backend/internal/models"
	"transport-backend/internal/repository"
)

func newStatusFixture(t *testing.T) (*StatusService, *models.Bus, *models.Driver, *models.Student) {
	t.Helper()
	busRepo := repository.NewBusRepository()
	driverRepo := repository.NewDriverRepository()
	studentRepo := repository.NewStudentRepository()

	bus, err := busRepo.Create(&models.Bus{
		ID: "bus-1", BusNo: "AP01AB1234", RegNo: "AP01AB1234",
		Capacity: 50, Lifecycle: models.NewLifecycle(),
	})
	require.NoError(t, err)

	driver, err := driverRepo.Create(&models.Driver{
		ID: "driver-1", Name: "Raj Kumar", Phone: "+91-9876543210",
		LicenseNo: "DL12345678", Lifecycle: models.NewLifecycle(),
	})
	require.NoError(t, err)

	student, err := studentRepo.Create(&models.Student{
		ID: "student-1", StudentNo: "S001", Name: "Priya Sharma",
		Lifecycle: models.NewLifecycle(),
	})
	require.NoError(t, err)

	return NewStatusService(busRepo, driverRepo, studentRepo), bus, driver, student
}

func TestProposeCommitsImmediateTransition(t *testing.T) {
	svc, bus, _, _ := newStatusFixture(t)

	result, err := svc.Propose(models.EntityKindBus, bus.ID, &TransitionRequest{
		NewStatus: "Maintenance",
		Reason:    "Gearbox overhaul at depot workshop",
	}, "admin@college.edu", clock)
	require.NoError(t, err)

	assert.Equal(t, models.StatusMaintenance, result.CurrentStatus)
	assert.False(t, result.Deferred)
	assert.Equal(t, models.StatusActive, result.Record.PreviousStatus)
	assert.Equal(t, "admin@college.edu", result.Record.Actor)
	require.Len(t, result.Trail, 1)

	trail, err := svc.AuditTrail(models.EntityKindBus, bus.ID)
	require.NoError(t, err)
	require.Len(t, trail, 1)
	assert.Equal(t, models.StatusMaintenance, trail[0].NewStatus)
}

func TestProposeRejectsShortReason(t *testing.T) {
	svc, bus, _, _ := newStatusFixture(t)

	_, err := svc.Propose(models.EntityKindBus, bus.ID, &TransitionRequest{
		NewStatus: "Maintenance",
		Reason:    "broken",
	}, "admin@college.edu", clock)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "reason")
}

func TestProposeRejectsNoOpTransition(t *testing.T) {
	svc, bus, driver, student := newStatusFixture(t)

	cases := []struct {
		kind models.EntityKind
		id   string
	}{
		{models.EntityKindBus, bus.ID},
		{models.EntityKindDriver, driver.ID},
		{models.EntityKindStudent, student.ID},
	}

	for _, tc := range cases {
		_, err := svc.Propose(tc.kind, tc.id, &TransitionRequest{
			NewStatus: "Active",
			Reason:    "already active but asking anyway",
		}, "admin@college.edu", clock)

		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr, "kind %s", tc.kind)
		assert.Contains(t, vErr.Fields["newStatus"], "already Active")

		trail, err := svc.AuditTrail(tc.kind, tc.id)
		require.NoError(t, err)
		assert.Empty(t, trail)
	}
}

func TestProposeRejectsStatusOutsideKindSet(t *testing.T) {
	svc, _, driver, _ := newStatusFixture(t)

	// Maintenance belongs to buses, not drivers
	_, err := svc.Propose(models.EntityKindDriver, driver.ID, &TransitionRequest{
		NewStatus: "Maintenance",
		Reason:    "sending the driver to the workshop",
	}, "admin@college.edu", clock)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "newStatus")
}

func TestScheduledTransitionDefersUntilReconcile(t *testing.T) {
	svc, bus, _, _ := newStatusFixture(t)
	future := clock.Add(48 * time.Hour)

	result, err := svc.Propose(models.EntityKindBus, bus.ID, &TransitionRequest{
		NewStatus:     "Inactive",
		Reason:        "Permit lapses at the end of the week",
		EffectiveFrom: future.Format(time.RFC3339),
	}, "admin@college.edu", clock)
	require.NoError(t, err)

	assert.True(t, result.Deferred)
	assert.Equal(t, models.StatusActive, result.CurrentStatus)
	assert.Empty(t, result.Trail)

	// Before the effective time nothing promotes
	promoted, err := svc.Reconcile(future.Add(-time.Hour))
	require.NoError(t, err)
	assert.Zero(t, promoted)

	promoted, err = svc.Reconcile(future)
	require.NoError(t, err)
	assert.Equal(t, 1, promoted)

	trail, err := svc.AuditTrail(models.EntityKindBus, bus.ID)
	require.NoError(t, err)
	require.Len(t, trail, 1)
	assert.Equal(t, models.StatusInactive, trail[0].NewStatus)
}

func TestReconcileRewritesPreviousStatus(t *testing.T) {
	svc, bus, _, _ := newStatusFixture(t)
	future := clock.Add(24 * time.Hour)

	// Schedule Inactive while Active, then move to Maintenance manually
	scheduled, err := svc.Propose(models.EntityKindBus, bus.ID, &TransitionRequest{
		NewStatus:     "Inactive",
		Reason:        "Planned decommissioning next term",
		EffectiveFrom: future.Format(time.RFC3339),
	}, "admin@college.edu", clock)
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, scheduled.Record.PreviousStatus)

	_, err = svc.Propose(models.EntityKindBus, bus.ID, &TransitionRequest{
		NewStatus: "Maintenance",
		Reason:    "Unexpected gearbox failure today",
	}, "admin@college.edu", clock)
	require.NoError(t, err)

	promoted, err := svc.Reconcile(future)
	require.NoError(t, err)
	assert.Equal(t, 1, promoted)

	trail, err := svc.AuditTrail(models.EntityKindBus, bus.ID)
	require.NoError(t, err)
	require.Len(t, trail, 2)
	// The promoted record reflects the status it actually replaced
	assert.Equal(t, models.StatusMaintenance, trail[1].PreviousStatus)
	assert.Equal(t, models.StatusInactive, trail[1].NewStatus)
}

func TestReconcileSkipsNoOpPromotion(t *testing.T) {
	svc, bus, _, _ := newStatusFixture(t)
	future := clock.Add(24 * time.Hour)

	_, err := svc.Propose(models.EntityKindBus, bus.ID, &TransitionRequest{
		NewStatus:     "Maintenance",
		Reason:        "Scheduled quarterly service visit",
		EffectiveFrom: future.Format(time.RFC3339),
	}, "admin@college.edu", clock)
	require.NoError(t, err)

	// The bus reaches Maintenance earlier through a manual transition
	_, err = svc.Propose(models.EntityKindBus, bus.ID, &TransitionRequest{
		NewStatus: "Maintenance",
		Reason:    "Brought in early for the same service",
	}, "admin@college.edu", clock)
	require.NoError(t, err)

	promoted, err := svc.Reconcile(future)
	require.NoError(t, err)
	assert.Zero(t, promoted)

	trail, err := svc.AuditTrail(models.EntityKindBus, bus.ID)
	require.NoError(t, err)
	assert.Len(t, trail, 1)
}

func TestWithdrawScheduledTransition(t *testing.T) {
	svc, _, driver, _ := newStatusFixture(t)
	future := clock.Add(72 * time.Hour)

	result, err := svc.Propose(models.EntityKindDriver, driver.ID, &TransitionRequest{
		NewStatus:     "On Leave",
		Reason:        "Approved leave starting Thursday",
		EffectiveFrom: future.Format(time.RFC3339),
	}, "admin@college.edu", clock)
	require.NoError(t, err)

	require.NoError(t, svc.WithdrawScheduled(models.EntityKindDriver, driver.ID, result.Record.ID, clock))

	promoted, err := svc.Reconcile(future)
	require.NoError(t, err)
	assert.Zero(t, promoted)

	trail, err := svc.AuditTrail(models.EntityKindDriver, driver.ID)
	require.NoError(t, err)
	assert.Empty(t, trail)

	// A second withdrawal finds nothing
	assert.Error(t, svc.WithdrawScheduled(models.EntityKindDriver, driver.ID, result.Record.ID, clock))
}

func TestAcquireSerializesTransitions(t *testing.T) {
	svc, bus, _, _ := newStatusFixture(t)

	release, err := svc.Acquire(bus.ID)
	require.NoError(t, err)

	_, err = svc.Acquire(bus.ID)
	var cErr *ConcurrentTransitionError
	require.ErrorAs(t, err, &cErr)
	assert.Equal(t, bus.ID, cErr.EntityID)

	// Other entities are unaffected
	otherRelease, err := svc.Acquire("driver-1")
	require.NoError(t, err)
	otherRelease()

	release()
	release() // idempotent

	release2, err := svc.Acquire(bus.ID)
	require.NoError(t, err)
	release2()
}

func TestReconcileLeavesReservedEntityForNextPass(t *testing.T) {
	svc, bus, _, _ := newStatusFixture(t)
	due := clock.Add(time.Hour)

	_, err := svc.Propose(models.EntityKindBus, bus.ID, &TransitionRequest{
		NewStatus:     "Maintenance",
		Reason:        "Scheduled depot service window",
		EffectiveFrom: due.Format(time.RFC3339),
	}, "admin@college.edu", clock)
	require.NoError(t, err)

	release, err := svc.Acquire(bus.ID)
	require.NoError(t, err)

	// A reserved entity is skipped, not promoted out from under the
	// in-flight proposal
	promoted, err := svc.Reconcile(due)
	require.NoError(t, err)
	assert.Zero(t, promoted)

	trail, err := svc.AuditTrail(models.EntityKindBus, bus.ID)
	require.NoError(t, err)
	assert.Empty(t, trail)

	release()

	promoted, err = svc.Reconcile(due)
	require.NoError(t, err)
	assert.Equal(t, 1, promoted)

	trail, err = svc.AuditTrail(models.EntityKindBus, bus.ID)
	require.NoError(t, err)
	require.Len(t, trail, 1)
	assert.Equal(t, models.StatusMaintenance, trail[0].NewStatus)
}

func TestReconcileKeepsTransitionsCommittedMidPass(t *testing.T) {
	busRepo := repository.NewBusRepository()
	svc := NewStatusService(busRepo, repository.NewDriverRepository(), repository.NewStudentRepository())

	const fleet = 200
	due := clock.Add(time.Hour)
	for i := 0; i < fleet; i++ {
		busNo := fmt.Sprintf("AP01AB%04d", i)
		_, err := busRepo.Create(&models.Bus{
			ID: busNo, BusNo: busNo, RegNo: busNo,
			Capacity: 50, Lifecycle: models.NewLifecycle(),
		})
		require.NoError(t, err)
		_, err = svc.Propose(models.EntityKindBus, busNo, &TransitionRequest{
			NewStatus:     "Maintenance",
			Reason:        "Scheduled depot service window",
			EffectiveFrom: due.Format(time.RFC3339),
		}, "admin@college.edu", clock)
		require.NoError(t, err)
	}

	done := make(chan error, 1)
	go func() {
		_, err := svc.Reconcile(due)
		done <- err
	}()

	// Commit transitions under the same reservations while the pass
	// is walking the fleet; none of them may be lost.
	var committed []string
	for i := fleet - 1; i >= 0; i -= 4 {
		busNo := fmt.Sprintf("AP01AB%04d", i)
		var release func()
		for {
			var err error
			if release, err = svc.Acquire(busNo); err == nil {
				break
			}
		}
		_, err := svc.Propose(models.EntityKindBus, busNo, &TransitionRequest{
			NewStatus: "Inactive",
			Reason:    "Pulled from the roster pending inspection",
		}, "admin@college.edu", due)
		release()
		require.NoError(t, err)
		committed = append(committed, busNo)
	}

	require.NoError(t, <-done)

	for _, busNo := range committed {
		trail, err := svc.AuditTrail(models.EntityKindBus, busNo)
		require.NoError(t, err)
		found := false
		for _, record := range trail {
			if record.NewStatus == models.StatusInactive {
				found = true
			}
		}
		assert.True(t, found, "committed transition missing from %s trail", busNo)
	}
}

func TestTrailOrderAcrossTransitions(t *testing.T) {
	svc, bus, _, _ := newStatusFixture(t)

	steps := []string{"Maintenance", "Active", "Inactive"}
	reasons := []string{
		"Sent in for scheduled service",
		"Service complete, returning to duty",
		"End of term, parked for the holidays",
	}
	for i, status := range steps {
		_, err := svc.Propose(models.EntityKindBus, bus.ID, &TransitionRequest{
			NewStatus: status,
			Reason:    reasons[i],
		}, "admin@college.edu", clock.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
	}

	trail, err := svc.AuditTrail(models.EntityKindBus, bus.ID)
	require.NoError(t, err)
	require.Len(t, trail, 3)
	for i, status := range steps {
		assert.Equal(t, models.LifecycleStatus(status), trail[i].NewStatus)
	}
	assert.Equal(t, models.StatusActive, trail[0].PreviousStatus)
	assert.Equal(t, models.StatusMaintenance, trail[1].PreviousStatus)
	assert.Equal(t, models.StatusActive, trail[2].PreviousStatus)
}
