package models

import (
	"strings"
	"time"
)

// TripState is the closed set of trip states.
type TripState string

const (
	TripPlanned   TripState = "Planned"
	TripRunning   TripState = "Running"
	TripDelayed   TripState = "Delayed"
	TripStopped   TripState = "Stopped"
	TripCompleted TripState = "Completed"
	TripCancelled TripState = "Cancelled"
)

// Terminal reports whether a trip in this state can no longer change.
func (s TripState) Terminal() bool {
	return s == TripCompleted || s == TripCancelled
}

// IssueTag is a short operator- or telemetry-raised label on a trip,
// e.g. "Breakdown" or "Late 12min".
type IssueTag struct {
	Tag      string    `json:"tag"`
	RaisedAt time.Time `json:"raisedAt"`
}

// Blocking reports whether the tag implies the trip cannot continue.
// Blocking tags force the trip to Stopped; everything else only delays
// a running trip.
func (t IssueTag) Blocking() bool {
	switch strings.ToLower(t.Tag) {
	case "breakdown", "accident":
		return true
	}
	return false
}

type Trip struct {
	ID              string     `json:"id"`
	BusNo           string     `json:"busNo"`
	RouteID         string     `json:"routeId"`
	RouteName       string     `json:"route"`
	Driver          string     `json:"driver"`
	State           TripState  `json:"state"`
	ScheduledAt     time.Time  `json:"scheduledAt"`
	StartedAt       time.Time  `json:"startedAt,omitzero"`
	CompletedAt     time.Time  `json:"completedAt,omitzero"`
	StopIndex       int        `json:"stopIndex"`
	TotalStops      int        `json:"totalStops"`
	ProgressPercent int        `json:"progressPercent"`
	ETA             time.Time  `json:"eta,omitzero"`
	Issues          []IssueTag `json:"issues"`
	StudentsOnboard int        `json:"studentsOnboard"`
	StudentsTotal   int        `json:"studentsTotal"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// HasIssue reports whether the tag is currently active on the trip.
func (t *Trip) HasIssue(tag string) bool {
	for _, issue := range t.Issues {
		if issue.Tag == tag {
			return true
		}
	}
	return false
}

// HasBlockingIssue reports whether any active tag is blocking.
func (t *Trip) HasBlockingIssue() bool {
	for _, issue := range t.Issues {
		if issue.Blocking() {
			return true
		}
	}
	return false
}
