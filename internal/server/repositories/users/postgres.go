// Package users provides the PostgreSQL-backed credential store.
package users

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/qdrive/internal/common"
	"github.com/dmitrijs2005/qdrive/internal/dbx"
	"github.com/dmitrijs2005/qdrive/internal/server/models"
)

const emailConstraint = "users_email_key"

const selectColumns = `id, email, password_hash, name, phone, role, profile_picture,
		 license_number, vehicle_details, is_verified, is_active, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts user unless the email is taken. The database decides
// uniqueness in the same statement, so concurrent registrations of one
// email yield exactly one row and common.ErrConflict for the rest.
func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query :=
		`INSERT INTO users (email, password_hash, name, phone, role,
		 license_number, vehicle_details, is_verified, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 ON CONFLICT (email) DO NOTHING
		 RETURNING id
		 `

	var (
		license  sql.NullString
		vehicle  sql.NullString
		verified sql.NullBool
		active   sql.NullBool
	)
	if d := user.DriverProfile; d != nil {
		details := d.VehicleDetails
		if details == nil {
			details = map[string]any{}
		}
		b, err := json.Marshal(details)
		if err != nil {
			return nil, fmt.Errorf("encode vehicle details: %w", err)
		}
		license = sql.NullString{String: d.LicenseNumber, Valid: true}
		vehicle = sql.NullString{String: string(b), Valid: true}
		verified = sql.NullBool{Bool: d.IsVerified, Valid: true}
		active = sql.NullBool{Bool: d.IsActive, Valid: true}
	}

	err := r.db.QueryRowContext(ctx, query,
		user.Email, user.PasswordHash, user.Name, user.Phone, string(user.Role),
		license, vehicle, verified, active, user.CreatedAt, user.UpdatedAt,
	).Scan(&user.ID)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || dbx.IsUniqueViolation(err, emailConstraint) {
			return nil, common.ErrConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + selectColumns + ` FROM users
		 WHERE email = $1
		 `
	return r.getOne(ctx, query, email)
}

func (r *PostgresRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + selectColumns + ` FROM users
		 WHERE id = $1
		 `
	return r.getOne(ctx, query, id)
}

func (r *PostgresRepository) UpdateProfilePicture(ctx context.Context, id string, key string, updatedAt time.Time) error {
	query :=
		`UPDATE users SET profile_picture = $2, updated_at = $3
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id, key, updatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	var (
		user     models.User
		role     string
		picture  sql.NullString
		license  sql.NullString
		vehicle  []byte
		verified sql.NullBool
		active   sql.NullBool
	)

	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Name, &user.Phone, &role, &picture,
		&license, &vehicle, &verified, &active, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if user.Role, err = models.ParseRole(role); err != nil {
		return nil, fmt.Errorf("corrupt user row %s: %w", user.ID, err)
	}
	user.ProfilePicture = picture.String

	if license.Valid {
		d := &models.DriverProfile{
			LicenseNumber:  license.String,
			VehicleDetails: map[string]any{},
			IsVerified:     verified.Bool,
			IsActive:       active.Bool,
		}
		if len(vehicle) > 0 {
			if err := json.Unmarshal(vehicle, &d.VehicleDetails); err != nil {
				return nil, fmt.Errorf("decode vehicle details: %w", err)
			}
		}
		user.DriverProfile = d
	}

	return &user, nil
}
