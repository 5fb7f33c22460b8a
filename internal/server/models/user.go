// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is a registered account. PasswordHash is never serialized.
type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	Name           string    `json:"name"`
	Phone          string    `json:"phone"`
	Role           Role      `json:"role"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`

	// Driver is set only for drivers that supplied a license at registration.
	// Its fields are flattened into the user's JSON.
	*DriverProfile
}

// DriverProfile holds the driver-only part of a user record.
type DriverProfile struct {
	LicenseNumber  string         `json:"licenseNumber"`
	VehicleDetails map[string]any `json:"vehicleDetails"`
	IsVerified     bool           `json:"isVerified"`
	IsActive       bool           `json:"isActive"`
}
