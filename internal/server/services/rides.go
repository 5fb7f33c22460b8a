package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/qdrive/internal/common"
	"github.com/dmitrijs2005/qdrive/internal/logging"
	"github.com/dmitrijs2005/qdrive/internal/server/auth"
	"github.com/dmitrijs2005/qdrive/internal/server/events"
	"github.com/dmitrijs2005/qdrive/internal/server/models"
	"github.com/dmitrijs2005/qdrive/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

const msgCoordinatesRequired = "Pickup and destination coordinates are required"

// CoordinatesInput keeps absent and zero apart.
type CoordinatesInput struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (c *CoordinatesInput) point() (models.Coordinates, bool) {
	if c == nil || c.Latitude == nil || c.Longitude == nil {
		return models.Coordinates{}, false
	}
	p := models.Coordinates{Latitude: *c.Latitude, Longitude: *c.Longitude}
	return p, p.Valid()
}

type RideRequestInput struct {
	Pickup      *CoordinatesInput `json:"pickup"`
	Destination *CoordinatesInput `json:"destination"`
}

// ErrInvalidCoordinates is returned for missing, non-numeric or out of range
// coordinates.
var ErrInvalidCoordinates = common.NewValidationError(msgCoordinatesRequired)

type RideService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	publisher   events.Publisher
	log         logging.Logger
	now         func() time.Time
}

func NewRideService(db *sql.DB, m repomanager.RepositoryManager, p events.Publisher, log logging.Logger) *RideService {
	if p == nil {
		p = events.NopPublisher{}
	}
	return &RideService{db: db, repomanager: m, publisher: p, log: log, now: time.Now}
}

// RequestRide stores a new ride for the passenger in claims and announces it.
// Publishing is best effort: a broker failure is logged, not returned.
func (s *RideService) RequestRide(ctx context.Context, claims *auth.Claims, in RideRequestInput) (*models.Ride, error) {
	if err := auth.RequireRole(claims, models.RolePassenger); err != nil {
		return nil, err
	}

	pickup, ok := in.Pickup.point()
	if !ok {
		return nil, ErrInvalidCoordinates
	}
	destination, ok := in.Destination.point()
	if !ok {
		return nil, ErrInvalidCoordinates
	}

	ride := &models.Ride{
		ID:          uuid.NewString(),
		PassengerID: claims.Subject,
		Status:      models.RideStatusRequested,
		Pickup:      pickup,
		Destination: destination,
		RequestTime: s.now().UTC(),
	}

	stored, err := s.repomanager.Rides(s.db).Create(ctx, ride)
	if err != nil {
		return nil, fmt.Errorf("%w: create ride: %v", common.ErrorInternal, err)
	}

	if err := s.publisher.PublishRideRequested(ctx, events.NewRideRequested(stored)); err != nil {
		s.log.Warn(ctx, "ride event not published", "ride_id", stored.ID, "error", err)
	}
	return stored, nil
}

// GetRide returns a ride owned by the caller. Rides of other users are
// reported as common.ErrorNotFound.
func (s *RideService) GetRide(ctx context.Context, claims *auth.Claims, id string) (*models.Ride, error) {
	if claims == nil || claims.Subject == "" {
		return nil, common.ErrorUnauthorized
	}

	ride, err := s.repomanager.Rides(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("%w: get ride: %v", common.ErrorInternal, err)
	}
	if ride.PassengerID != claims.Subject {
		return nil, common.ErrorNotFound
	}
	return ride, nil
}
