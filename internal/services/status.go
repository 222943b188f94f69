package services

import (
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"transport-backend/internal/models"
	"transport-backend/internal/repository"
)

const minReasonLength = 10

// StatusService is the transition ledger for bus, driver and student
// lifecycle statuses. Every committed transition carries a reason and
// lands on the entity's append-only audit trail; transitions scheduled
// for the future wait in a pending list until a reconcile pass
// promotes them.
type StatusService struct {
	busRepo     *repository.BusRepository
	driverRepo  *repository.DriverRepository
	studentRepo *repository.StudentRepository

	mu       sync.Mutex
	inflight map[string]struct{}
}

func NewStatusService(busRepo *repository.BusRepository, driverRepo *repository.DriverRepository, studentRepo *repository.StudentRepository) *StatusService {
	return &StatusService{
		busRepo:     busRepo,
		driverRepo:  driverRepo,
		studentRepo: studentRepo,
		inflight:    make(map[string]struct{}),
	}
}

type TransitionRequest struct {
	NewStatus     string `json:"newStatus" validate:"required"`
	Reason        string `json:"reason" validate:"required,min=10"`
	EffectiveFrom string `json:"effectiveFrom,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

type TransitionResult struct {
	EntityID      string                      `json:"entityId"`
	Kind          models.EntityKind           `json:"kind"`
	CurrentStatus models.LifecycleStatus      `json:"currentStatus"`
	Record        models.StatusChangeRecord   `json:"record"`
	Deferred      bool                        `json:"deferred"`
	Trail         []models.StatusChangeRecord `json:"auditTrail"`
}

// Acquire reserves an entity for one in-flight transition proposal.
// A second Acquire before the release func runs fails with
// ConcurrentTransitionError; proposals for one entity are strictly
// serialized.
func (s *StatusService) Acquire(entityID string) (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.inflight[entityID]; busy {
		return nil, &ConcurrentTransitionError{EntityID: entityID}
	}
	s.inflight[entityID] = struct{}{}

	var once sync.Once
	release := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.inflight, entityID)
			s.mu.Unlock()
		})
	}
	return release, nil
}

// Propose validates and commits a status transition. Callers that
// suspend between accepting a request and committing it (the simulated
// network path) hold an Acquire reservation across the gap.
func (s *StatusService) Propose(kind models.EntityKind, entityID string, req *TransitionRequest, actor string, now time.Time) (*TransitionResult, error) {
	lifecycle, save, err := s.loadLifecycle(kind, entityID)
	if err != nil {
		return nil, err
	}

	newStatus, err := models.ParseLifecycleStatus(kind, req.NewStatus)
	if err != nil {
		return nil, newValidationError("newStatus",
			fmt.Sprintf("must be one of %v", models.AllowedStatuses(kind)))
	}

	if len(req.Reason) < minReasonLength {
		return nil, newValidationError("reason",
			fmt.Sprintf("must be at least %d characters long", minReasonLength))
	}

	// A transition to the current status is rejected outright, never
	// silently accepted.
	if newStatus == lifecycle.Status {
		return nil, newValidationError("newStatus",
			fmt.Sprintf("entity is already %s", newStatus))
	}

	effectiveFrom := now
	if req.EffectiveFrom != "" {
		effectiveFrom, err = time.Parse(time.RFC3339, req.EffectiveFrom)
		if err != nil {
			return nil, newValidationError("effectiveFrom", "must be an RFC 3339 timestamp")
		}
	}

	record := models.StatusChangeRecord{
		ID:             uuid.NewString(),
		PreviousStatus: lifecycle.Status,
		NewStatus:      newStatus,
		Reason:         req.Reason,
		EffectiveFrom:  effectiveFrom,
		CommittedAt:    now,
		Actor:          actor,
	}

	deferred := effectiveFrom.After(now)
	if deferred {
		lifecycle.Scheduled = append(lifecycle.Scheduled, record)
		sort.SliceStable(lifecycle.Scheduled, func(i, j int) bool {
			return lifecycle.Scheduled[i].EffectiveFrom.Before(lifecycle.Scheduled[j].EffectiveFrom)
		})
	} else {
		lifecycle.Trail = append(lifecycle.Trail, record)
		lifecycle.Status = newStatus
	}

	if err := save(now); err != nil {
		return nil, err
	}

	return &TransitionResult{
		EntityID:      entityID,
		Kind:          kind,
		CurrentStatus: lifecycle.Status,
		Record:        record,
		Deferred:      deferred,
		Trail:         lifecycle.AuditTrail(),
	}, nil
}

// AuditTrail returns an entity's committed transitions oldest-first.
func (s *StatusService) AuditTrail(kind models.EntityKind, entityID string) ([]models.StatusChangeRecord, error) {
	lifecycle, _, err := s.loadLifecycle(kind, entityID)
	if err != nil {
		return nil, err
	}
	return lifecycle.AuditTrail(), nil
}

// WithdrawScheduled removes a pending scheduled transition before its
// effective time. The committed trail is untouched.
func (s *StatusService) WithdrawScheduled(kind models.EntityKind, entityID, recordID string, now time.Time) error {
	lifecycle, save, err := s.loadLifecycle(kind, entityID)
	if err != nil {
		return err
	}

	for i, record := range lifecycle.Scheduled {
		if record.ID == recordID {
			lifecycle.Scheduled = append(lifecycle.Scheduled[:i], lifecycle.Scheduled[i+1:]...)
			return save(now)
		}
	}
	return fmt.Errorf("no scheduled transition %s on entity %s", recordID, entityID)
}

// Reconcile promotes every scheduled transition whose effective time
// has arrived, across all entity kinds, in effective-time order per
// entity. It returns the number of promoted records.
//
// Each entity is re-read and written back under its own Acquire
// reservation, never from a pass-wide snapshot, so a transition
// committed while the pass is walking other entities is never
// overwritten. An entity with a proposal already in flight is left
// untouched for the next pass.
func (s *StatusService) Reconcile(now time.Time) (int, error) {
	promoted := 0

	buses, err := s.busRepo.FindAll()
	if err != nil {
		return promoted, err
	}
	for _, bus := range buses {
		n, err := s.reconcileEntity(models.EntityKindBus, bus.ID, now)
		if err != nil {
			return promoted, err
		}
		promoted += n
	}

	drivers, err := s.driverRepo.FindAll()
	if err != nil {
		return promoted, err
	}
	for _, driver := range drivers {
		n, err := s.reconcileEntity(models.EntityKindDriver, driver.ID, now)
		if err != nil {
			return promoted, err
		}
		promoted += n
	}

	students, err := s.studentRepo.FindAll()
	if err != nil {
		return promoted, err
	}
	for _, student := range students {
		n, err := s.reconcileEntity(models.EntityKindStudent, student.ID, now)
		if err != nil {
			return promoted, err
		}
		promoted += n
	}

	if promoted > 0 {
		log.Printf("status reconcile: promoted %d scheduled transition(s)", promoted)
	}
	return promoted, nil
}

func (s *StatusService) reconcileEntity(kind models.EntityKind, entityID string, now time.Time) (int, error) {
	release, err := s.Acquire(entityID)
	if err != nil {
		// A proposal holds the reservation; the next pass will pick
		// the entity up.
		return 0, nil
	}
	defer release()

	lifecycle, save, err := s.loadLifecycle(kind, entityID)
	if err != nil {
		return 0, err
	}

	pending := len(lifecycle.Scheduled)
	n := promoteDue(lifecycle, now)
	if len(lifecycle.Scheduled) == pending {
		return 0, nil
	}
	return n, save(now)
}

// promoteDue moves due scheduled records onto the trail in effective
// order, rewriting each record's previous status against the status it
// actually replaces.
func promoteDue(lifecycle *models.Lifecycle, now time.Time) int {
	promoted := 0
	for len(lifecycle.Scheduled) > 0 && !lifecycle.Scheduled[0].EffectiveFrom.After(now) {
		record := lifecycle.Scheduled[0]
		lifecycle.Scheduled = lifecycle.Scheduled[1:]

		record.PreviousStatus = lifecycle.Status
		if record.NewStatus == lifecycle.Status {
			// The entity reached this status through a later manual
			// transition; promoting would be a no-op record.
			continue
		}

		lifecycle.Trail = append(lifecycle.Trail, record)
		lifecycle.Status = record.NewStatus
		promoted++
	}
	return promoted
}

func (s *StatusService) loadLifecycle(kind models.EntityKind, entityID string) (*models.Lifecycle, func(time.Time) error, error) {
	switch kind {
	case models.EntityKindBus:
		bus, err := s.busRepo.FindByID(entityID)
		if err != nil {
			return nil, nil, err
		}
		return &bus.Lifecycle, func(now time.Time) error {
			bus.UpdatedAt = now
			_, err := s.busRepo.Update(entityID, bus)
			return err
		}, nil
	case models.EntityKindDriver:
		driver, err := s.driverRepo.FindByID(entityID)
		if err != nil {
			return nil, nil, err
		}
		return &driver.Lifecycle, func(now time.Time) error {
			driver.UpdatedAt = now
			_, err := s.driverRepo.Update(entityID, driver)
			return err
		}, nil
	case models.EntityKindStudent:
		student, err := s.studentRepo.FindByID(entityID)
		if err != nil {
			return nil, nil, err
		}
		return &student.Lifecycle, func(now time.Time) error {
			student.UpdatedAt = now
			_, err := s.studentRepo.Update(entityID, student)
			return err
		}, nil
	default:
		return nil, nil, fmt.Errorf("unknown entity kind %q", kind)
	}
}
