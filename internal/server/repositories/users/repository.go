package users

import (
	"context"
	"time"

	"github.com/dmitrijs2005/qdrive/internal/server/models"
)

// Repository is the credential store. Create must be an atomic
// insert-if-absent on email and report duplicates as common.ErrConflict.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UpdateProfilePicture(ctx context.Context, id string, key string, updatedAt time.Time) error
}
