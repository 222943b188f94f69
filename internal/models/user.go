package models

import "time"

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email" validate:"required,email"`
	Password  string    `json:"-"`
	Role      string    `json:"role" validate:"required,oneof=admin superadmin"`
	LastLogin time.Time `json:"lastLogin,omitzero"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuthUser is the user shape returned by the login endpoint.
type AuthUser struct {
	Role  string `json:"role"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
