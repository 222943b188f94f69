package models

import "time"

type Driver struct {
	ID          string               `json:"id"`
	Name        string               `json:"name" validate:"required"`
	Phone       string               `json:"phone" validate:"required"`
	LicenseNo   string               `json:"licenseNo" validate:"required"`
	AssignedBus string               `json:"assignedBus"`
	Lifecycle   Lifecycle            `json:"lifecycle"`
	Documents   []ComplianceDocument `json:"documents"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

// License returns the driver's license document, or nil if it was
// never recorded.
func (d *Driver) License() *ComplianceDocument {
	for i := range d.Documents {
		if d.Documents[i].Kind == DocLicense {
			return &d.Documents[i]
		}
	}
	return nil
}
