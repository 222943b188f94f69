package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"transport-backend/internal/models"
	"transport-backend/internal/repository"
)

// TripService tracks live trip state: the Planned → Running →
// {Delayed ↔ Running} → Completed machine, progress percentage,
// projected ETA and the active issue set. Progress is monotonically
// non-decreasing while a trip is underway.
type TripService struct {
	tripRepo  *repository.TripRepository
	routeRepo *repository.RouteRepository
	busRepo   *repository.BusRepository
}

func NewTripService(tripRepo *repository.TripRepository, routeRepo *repository.RouteRepository, busRepo *repository.BusRepository) *TripService {
	return &TripService{
		tripRepo:  tripRepo,
		routeRepo: routeRepo,
		busRepo:   busRepo,
	}
}

type ScheduleTripRequest struct {
	BusNo         string `json:"busNo" validate:"required"`
	RouteID       string `json:"routeId" validate:"required"`
	ScheduledAt   string `json:"scheduledAt" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	StudentsTotal int    `json:"studentsTotal" validate:"omitempty,min=0"`
}

type AdvanceRequest struct {
	StopIndex int    `json:"stopIndex" validate:"min=0"`
	ETA       string `json:"eta,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Onboard   int    `json:"studentsOnboard,omitempty" validate:"omitempty,min=0"`
}

func (s *TripService) GetAllTrips() ([]*models.Trip, error) {
	return s.tripRepo.FindAll()
}

func (s *TripService) GetTripByID(id string) (*models.Trip, error) {
	return s.tripRepo.FindByID(id)
}

func (s *TripService) GetTripsByState(state models.TripState) ([]*models.Trip, error) {
	return s.tripRepo.FindByState(state)
}

// ScheduleTrip creates a Planned trip on a route, inheriting the
// route's ordered stop sequence.
func (s *TripService) ScheduleTrip(req *ScheduleTripRequest, now time.Time) (*models.Trip, error) {
	route, err := s.routeRepo.FindByID(req.RouteID)
	if err != nil {
		return nil, err
	}

	bus, err := s.busRepo.FindByBusNo(req.BusNo)
	if err != nil {
		return nil, err
	}
	if bus.Lifecycle.Status != models.StatusActive {
		return nil, fmt.Errorf("bus %s is %s and cannot be scheduled", bus.BusNo, bus.Lifecycle.Status)
	}

	scheduledAt, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil {
		return nil, newValidationError("scheduledAt", "must be an RFC 3339 timestamp")
	}

	trip := &models.Trip{
		ID:            uuid.NewString(),
		BusNo:         bus.BusNo,
		RouteID:       route.ID,
		RouteName:     route.Name,
		Driver:        bus.Driver,
		State:         models.TripPlanned,
		ScheduledAt:   scheduledAt,
		TotalStops:    len(route.Stops),
		Issues:        []models.IssueTag{},
		StudentsTotal: req.StudentsTotal,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	return s.tripRepo.Create(trip)
}

// StartTrip moves a Planned trip to Running.
func (s *TripService) StartTrip(id string, now time.Time) (*models.Trip, error) {
	trip, err := s.tripRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if trip.State != models.TripPlanned {
		return nil, fmt.Errorf("trip is %s, only a Planned trip can start", trip.State)
	}

	trip.State = models.TripRunning
	trip.StartedAt = now
	trip.UpdatedAt = now
	return s.tripRepo.Update(id, trip)
}

// Advance records progress to a new stop index. The index can never
// move backwards; a repeated identical index is a no-op and the ETA
// never regresses without forward progress.
func (s *TripService) Advance(id string, req *AdvanceRequest, now time.Time) (*models.Trip, error) {
	trip, err := s.tripRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	switch trip.State {
	case models.TripRunning, models.TripDelayed, models.TripStopped:
	default:
		return nil, fmt.Errorf("trip is %s and cannot advance", trip.State)
	}

	if req.StopIndex < trip.StopIndex {
		return nil, &InvalidProgressError{TripID: id, Current: trip.StopIndex, Requested: req.StopIndex}
	}
	if req.StopIndex > trip.TotalStops {
		return nil, newValidationError("stopIndex",
			fmt.Sprintf("route has only %d stops", trip.TotalStops))
	}

	var estimate time.Time
	if req.ETA != "" {
		estimate, err = time.Parse(time.RFC3339, req.ETA)
		if err != nil {
			return nil, newValidationError("eta", "must be an RFC 3339 timestamp")
		}
	}

	moved := req.StopIndex > trip.StopIndex
	trip.StopIndex = req.StopIndex
	trip.ProgressPercent = progressPercent(req.StopIndex, trip.TotalStops)
	trip.ETA = nextETA(trip, estimate, moved, now)
	if req.Onboard > 0 {
		trip.StudentsOnboard = req.Onboard
	}
	trip.UpdatedAt = now

	return s.tripRepo.Update(id, trip)
}

// RecordIssue attaches an issue tag. A blocking tag (Breakdown,
// Accident) stops the trip; any other tag delays a running one.
// Recording an already-active tag changes nothing.
func (s *TripService) RecordIssue(id, tag string, now time.Time) (*models.Trip, error) {
	if tag == "" {
		return nil, newValidationError("tag", "is required")
	}

	trip, err := s.tripRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if trip.State.Terminal() {
		return nil, fmt.Errorf("trip is %s, issues can no longer be recorded", trip.State)
	}
	if trip.HasIssue(tag) {
		return trip, nil
	}

	issue := models.IssueTag{Tag: tag, RaisedAt: now}
	trip.Issues = append(trip.Issues, issue)

	if issue.Blocking() {
		if trip.State == models.TripRunning || trip.State == models.TripDelayed {
			trip.State = models.TripStopped
		}
	} else if trip.State == models.TripRunning {
		trip.State = models.TripDelayed
	}
	trip.UpdatedAt = now

	return s.tripRepo.Update(id, trip)
}

// ClearIssue removes an active tag. A Stopped or Delayed trip stays
// where it is until an operator explicitly resumes it, even when its
// last blocking tag clears, so a trip stopped for an unrelated reason
// is never silently un-stopped.
func (s *TripService) ClearIssue(id, tag string, now time.Time) (*models.Trip, error) {
	trip, err := s.tripRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	for i, issue := range trip.Issues {
		if issue.Tag == tag {
			trip.Issues = append(trip.Issues[:i], trip.Issues[i+1:]...)
			trip.UpdatedAt = now
			return s.tripRepo.Update(id, trip)
		}
	}
	return nil, fmt.Errorf("trip has no active issue %q", tag)
}

// ResumeTrip moves a Stopped trip back to Running while the blocking
// condition is gone, or to Delayed when non-blocking issues remain.
func (s *TripService) ResumeTrip(id string, now time.Time) (*models.Trip, error) {
	trip, err := s.tripRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if trip.State != models.TripStopped {
		return nil, fmt.Errorf("trip is %s, only a Stopped trip can resume", trip.State)
	}
	if trip.HasBlockingIssue() {
		return nil, errors.New("trip still has a blocking issue; clear it before resuming")
	}

	if len(trip.Issues) > 0 {
		trip.State = models.TripDelayed
	} else {
		trip.State = models.TripRunning
	}
	trip.UpdatedAt = now
	return s.tripRepo.Update(id, trip)
}

// CompleteTrip ends a trip. A Stopped trip may be abandoned as
// completed; its accumulated issue set is retained for audit.
func (s *TripService) CompleteTrip(id string, now time.Time) (*models.Trip, error) {
	trip, err := s.tripRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	switch trip.State {
	case models.TripRunning, models.TripDelayed, models.TripStopped:
	default:
		return nil, fmt.Errorf("trip is %s and cannot be completed", trip.State)
	}

	trip.State = models.TripCompleted
	trip.CompletedAt = now
	trip.UpdatedAt = now
	return s.tripRepo.Update(id, trip)
}

// CancelTrip cancels a trip that never ran.
func (s *TripService) CancelTrip(id string, now time.Time) (*models.Trip, error) {
	trip, err := s.tripRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if trip.State != models.TripPlanned {
		return nil, fmt.Errorf("trip is %s, only a Planned trip can be cancelled", trip.State)
	}

	trip.State = models.TripCancelled
	trip.UpdatedAt = now
	return s.tripRepo.Update(id, trip)
}

// StopAll stops every trip currently underway, tagging each with the
// operator hold so the alert feed reflects it.
func (s *TripService) StopAll(now time.Time) (int, error) {
	trips, err := s.tripRepo.FindAll()
	if err != nil {
		return 0, err
	}

	stopped := 0
	for _, trip := range trips {
		if trip.State != models.TripRunning && trip.State != models.TripDelayed {
			continue
		}
		if !trip.HasIssue("Operator Hold") {
			trip.Issues = append(trip.Issues, models.IssueTag{Tag: "Operator Hold", RaisedAt: now})
		}
		trip.State = models.TripStopped
		trip.UpdatedAt = now
		if _, err := s.tripRepo.Update(trip.ID, trip); err != nil {
			return stopped, err
		}
		stopped++
	}
	return stopped, nil
}

func progressPercent(stopIndex, totalStops int) int {
	if totalStops <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(stopIndex) / float64(totalStops)))
}

// nextETA projects the arrival time at the final stop. With no
// operator estimate the projection interpolates elapsed time over
// stops covered. Without forward progress the ETA is clamped so it
// never jumps earlier than the previous estimate.
func nextETA(trip *models.Trip, estimate time.Time, moved bool, now time.Time) time.Time {
	candidate := estimate
	if candidate.IsZero() {
		candidate = interpolateETA(trip, now)
	}
	if candidate.IsZero() {
		return trip.ETA
	}
	if !moved && !trip.ETA.IsZero() && candidate.Before(trip.ETA) {
		return trip.ETA
	}
	return candidate
}

func interpolateETA(trip *models.Trip, now time.Time) time.Time {
	if trip.StartedAt.IsZero() || trip.StopIndex <= 0 {
		return time.Time{}
	}
	elapsed := now.Sub(trip.StartedAt)
	perStop := elapsed / time.Duration(trip.StopIndex)
	return trip.StartedAt.Add(perStop * time.Duration(trip.TotalStops))
}
