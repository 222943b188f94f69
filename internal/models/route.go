package models

import "time"

// RouteStatus is the closed set of route states.
type RouteStatus string

const (
	RouteActive    RouteStatus = "Active"
	RouteScheduled RouteStatus = "Scheduled"
	RouteInactive  RouteStatus = "Inactive"
)

// Stop is one point on a route's ordered stop sequence.
type Stop struct {
	Name       string `json:"name"`
	DistanceKm float64 `json:"distanceKm"`
	PlannedAt  string `json:"plannedTime,omitempty"`
	WaitMin    int    `json:"waitMin,omitempty"`
}

type Route struct {
	ID         string      `json:"id"`
	Name       string      `json:"name" validate:"required"`
	Status     RouteStatus `json:"status"`
	Stops      []Stop      `json:"stops" validate:"min=2"`
	DistanceKm float64     `json:"distanceKm"`
	Duration   string      `json:"duration,omitempty"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}
