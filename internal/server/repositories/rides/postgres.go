// Package rides provides a PostgreSQL-backed repository for ride requests.
package rides

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/qdrive/internal/common"
	"github.com/dmitrijs2005/qdrive/internal/dbx"
	"github.com/dmitrijs2005/qdrive/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts ride. The caller assigns the ID.
func (r *PostgresRepository) Create(ctx context.Context, ride *models.Ride) (*models.Ride, error) {
	query := `
		INSERT INTO rides (id, passenger_id, status, pickup_lat, pickup_lng,
			destination_lat, destination_lng, request_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		ride.ID, ride.PassengerID, string(ride.Status),
		ride.Pickup.Latitude, ride.Pickup.Longitude,
		ride.Destination.Latitude, ride.Destination.Longitude,
		ride.RequestTime,
	)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return ride, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Ride, error) {
	query := `
		SELECT id, passenger_id, status, pickup_lat, pickup_lng,
			destination_lat, destination_lng, request_time
		FROM rides
		WHERE id = $1
	`
	var (
		ride   models.Ride
		status string
	)
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&ride.ID, &ride.PassengerID, &status,
		&ride.Pickup.Latitude, &ride.Pickup.Longitude,
		&ride.Destination.Latitude, &ride.Destination.Longitude,
		&ride.RequestTime,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	ride.Status = models.RideStatus(status)
	return &ride, nil
}
