package models

import "time"

// BoardingStatus is the seat-allocation state shown on the students
// table, distinct from the lifecycle status.
type BoardingStatus string

const (
	BoardingConfirmed BoardingStatus = "Confirmed"
	BoardingWaitlist  BoardingStatus = "Waitlist"
)

type Student struct {
	ID             string         `json:"id"`
	StudentNo      string         `json:"studentId" validate:"required"`
	Name           string         `json:"name" validate:"required"`
	ClassYear      string         `json:"classYear"`
	Route          string         `json:"route"`
	Stop           string         `json:"stop"`
	Bus            string         `json:"bus"`
	ParentName     string         `json:"parentName"`
	ParentPhone    string         `json:"parentPhone"`
	BoardingStatus BoardingStatus `json:"boardingStatus"`
	Lifecycle      Lifecycle      `json:"lifecycle"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}
