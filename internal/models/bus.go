package models

import "time"

type Bus struct {
	ID        string               `json:"id"`
	BusNo     string               `json:"busNo" validate:"required"`
	RegNo     string               `json:"regNo" validate:"required"`
	Model     string               `json:"model"`
	Capacity  int                  `json:"capacity" validate:"required,min=1"`
	Driver    string               `json:"driver"`
	LastTrip  string               `json:"lastTrip,omitempty"`
	Lifecycle Lifecycle            `json:"lifecycle"`
	Documents []ComplianceDocument `json:"documents"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
}

// Document returns the bus's document of the given kind, or nil.
func (b *Bus) Document(kind DocumentKind) *ComplianceDocument {
	for i := range b.Documents {
		if b.Documents[i].Kind == kind {
			return &b.Documents[i]
		}
	}
	return nil
}
