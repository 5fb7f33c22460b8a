// Package events publishes domain events about rides to a message broker.
package events

import (
	"context"
	"time"

	"github.com/dmitrijs2005/qdrive/internal/server/models"
)

const (
	DefaultExchange      = "qdrive.rides"
	RoutingRideRequested = "ride.requested"
)

// RideRequested is the body of a ride.requested message.
type RideRequested struct {
	RideID      string             `json:"rideId"`
	PassengerID string             `json:"passengerId"`
	Pickup      models.Coordinates `json:"pickup"`
	Destination models.Coordinates `json:"destination"`
	RequestTime time.Time          `json:"requestTime"`
}

// NewRideRequested builds the event for a freshly stored ride.
func NewRideRequested(r *models.Ride) RideRequested {
	return RideRequested{
		RideID:      r.ID,
		PassengerID: r.PassengerID,
		Pickup:      r.Pickup,
		Destination: r.Destination,
		RequestTime: r.RequestTime,
	}
}

type Publisher interface {
	PublishRideRequested(ctx context.Context, ev RideRequested) error
	Close() error
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishRideRequested(context.Context, RideRequested) error { return nil }
func (NopPublisher) Close() error                                              { return nil }
