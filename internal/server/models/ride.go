package models

import "time"

type RideStatus string

const (
	RideStatusRequested  RideStatus = "requested"
	RideStatusAccepted   RideStatus = "accepted"
	RideStatusInProgress RideStatus = "in-progress"
	RideStatusCompleted  RideStatus = "completed"
	RideStatusCancelled  RideStatus = "cancelled"
)

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether the point lies within WGS84 bounds.
func (c Coordinates) Valid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

type Ride struct {
	ID          string      `json:"id"`
	PassengerID string      `json:"passengerId"`
	Status      RideStatus  `json:"status"`
	Pickup      Coordinates `json:"pickup"`
	Destination Coordinates `json:"destination"`
	RequestTime time.Time   `json:"requestTime"`
}
