package models

import (
	"fmt"
	"time"
)

// EntityKind identifies which lifecycle vocabulary applies to a record.
type EntityKind string

const (
	EntityKindBus     EntityKind = "bus"
	EntityKindDriver  EntityKind = "driver"
	EntityKindStudent EntityKind = "student"
)

// LifecycleStatus is a closed status value; use AllowedStatuses to check
// membership for a given entity kind before accepting one from a request.
type LifecycleStatus string

const (
	StatusActive      LifecycleStatus = "Active"
	StatusMaintenance LifecycleStatus = "Maintenance"
	StatusInactive    LifecycleStatus = "Inactive"
	StatusOnLeave     LifecycleStatus = "On Leave"
	StatusPending     LifecycleStatus = "Pending"
	StatusNoFeePaid   LifecycleStatus = "No Fee Paid"
)

var allowedStatuses = map[EntityKind][]LifecycleStatus{
	EntityKindBus:     {StatusActive, StatusMaintenance, StatusInactive},
	EntityKindDriver:  {StatusActive, StatusOnLeave, StatusInactive},
	EntityKindStudent: {StatusActive, StatusPending, StatusNoFeePaid, StatusInactive},
}

// AllowedStatuses returns the closed status set for an entity kind.
func AllowedStatuses(kind EntityKind) []LifecycleStatus {
	return allowedStatuses[kind]
}

// StatusAllowed reports whether status is in the closed set for kind.
func StatusAllowed(kind EntityKind, status LifecycleStatus) bool {
	for _, s := range allowedStatuses[kind] {
		if s == status {
			return true
		}
	}
	return false
}

// ParseLifecycleStatus validates a raw status string against the closed
// set for kind, so an invalid status is a construction-time error.
func ParseLifecycleStatus(kind EntityKind, raw string) (LifecycleStatus, error) {
	status := LifecycleStatus(raw)
	if !StatusAllowed(kind, status) {
		return "", fmt.Errorf("status %q is not valid for %s", raw, kind)
	}
	return status, nil
}

// StatusChangeRecord is one committed (or scheduled) lifecycle
// transition. Records are immutable once committed and live on the
// entity they belong to, in chronological order.
type StatusChangeRecord struct {
	ID             string          `json:"id"`
	PreviousStatus LifecycleStatus `json:"previousStatus"`
	NewStatus      LifecycleStatus `json:"newStatus"`
	Reason         string          `json:"reason"`
	EffectiveFrom  time.Time       `json:"effectiveFrom"`
	CommittedAt    time.Time       `json:"committedAt"`
	Actor          string          `json:"actor"`
}

// Lifecycle carries an entity's current status plus its audit trail.
// The trail is append-only; scheduled records wait in a separate list
// until a reconcile pass promotes them, so a withdrawal never has to
// touch committed history.
type Lifecycle struct {
	Status    LifecycleStatus      `json:"status"`
	Trail     []StatusChangeRecord `json:"statusHistory"`
	Scheduled []StatusChangeRecord `json:"scheduledTransitions,omitempty"`
}

// NewLifecycle starts an entity at the default Active status with an
// empty trail.
func NewLifecycle() Lifecycle {
	return Lifecycle{Status: StatusActive}
}

// AuditTrail returns the committed records oldest-first. Callers get a
// copy so the trail cannot be mutated from outside.
func (l *Lifecycle) AuditTrail() []StatusChangeRecord {
	trail := make([]StatusChangeRecord, len(l.Trail))
	copy(trail, l.Trail)
	return trail
}
