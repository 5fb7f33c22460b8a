package rides

import (
	"context"

	"github.com/dmitrijs2005/qdrive/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, ride *models.Ride) (*models.Ride, error)
	GetByID(ctx context.Context, id string) (*models.Ride, error)
}
