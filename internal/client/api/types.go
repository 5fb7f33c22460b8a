package api

import "time"

type User struct {
	ID             string         `json:"id"`
	Email          string         `json:"email"`
	Name           string         `json:"name"`
	Phone          string         `json:"phone"`
	Role           string         `json:"role"`
	ProfilePicture string         `json:"profilePicture,omitempty"`
	LicenseNumber  string         `json:"licenseNumber,omitempty"`
	VehicleDetails map[string]any `json:"vehicleDetails,omitempty"`
	IsVerified     bool           `json:"isVerified,omitempty"`
	IsActive       bool           `json:"isActive,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
}

type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Ride struct {
	ID          string    `json:"id"`
	PassengerID string    `json:"passengerId"`
	Status      string    `json:"status"`
	Pickup      Point     `json:"pickup"`
	Destination Point     `json:"destination"`
	RequestTime time.Time `json:"requestTime"`
}

type RegisterRequest struct {
	Email          string         `json:"email"`
	Password       string         `json:"password"`
	Name           string         `json:"name"`
	Phone          string         `json:"phone"`
	Role           string         `json:"role"`
	LicenseNumber  string         `json:"licenseNumber,omitempty"`
	VehicleDetails map[string]any `json:"vehicleDetails,omitempty"`
}

type UploadURL struct {
	Key string `json:"key"`
	URL string `json:"url"`
}
