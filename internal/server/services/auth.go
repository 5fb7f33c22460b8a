// Package services contains server-side business logic. AuthService handles
// registration, login, session validation and logout.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/qdrive/internal/common"
	"github.com/dmitrijs2005/qdrive/internal/logging"
	"github.com/dmitrijs2005/qdrive/internal/server/auth"
	"github.com/dmitrijs2005/qdrive/internal/server/config"
	"github.com/dmitrijs2005/qdrive/internal/server/models"
	"github.com/dmitrijs2005/qdrive/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

const (
	// PasswordCost is the bcrypt work factor for stored password hashes.
	PasswordCost = 10
	// MaxPasswordBytes is the longest password bcrypt accepts.
	MaxPasswordBytes = 72

	msgMissingFields = "Missing required fields"
	msgInvalidRole   = "Invalid role. Must be passenger or driver"
	msgLoginRequired = "Email and password are required"
	msgPasswordLong  = "Password must be at most 72 bytes"
)

// dummyHash is compared against when the email is unknown so both failure
// paths cost one bcrypt comparison.
var dummyHash = sync.OnceValue(func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("qdrive-no-such-user"), PasswordCost)
	if err != nil {
		panic(err)
	}
	return h
})

type RegisterInput struct {
	Email          string         `json:"email"`
	Password       string         `json:"password"`
	Name           string         `json:"name"`
	Phone          string         `json:"phone"`
	Role           string         `json:"role"`
	LicenseNumber  string         `json:"licenseNumber,omitempty"`
	VehicleDetails map[string]any `json:"vehicleDetails,omitempty"`
}

// Session is the outcome of a successful login.
type Session struct {
	Token  string
	Claims *auth.Claims
	User   *models.User
}

type AuthService struct {
	db              *sql.DB
	repomanager     repomanager.RepositoryManager
	tokens          *auth.TokenManager
	sessionValidity time.Duration
	log             logging.Logger
	now             func() time.Time
}

func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, tokens *auth.TokenManager, cfg *config.Config, log logging.Logger) *AuthService {
	return &AuthService{
		db:              db,
		repomanager:     m,
		tokens:          tokens,
		sessionValidity: cfg.SessionValidity,
		log:             log,
		now:             time.Now,
	}
}

// Register validates in and stores a new user. A taken email yields
// common.ErrConflict.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	email := strings.TrimSpace(in.Email)
	name := strings.TrimSpace(in.Name)
	phone := strings.TrimSpace(in.Phone)
	if email == "" || strings.TrimSpace(in.Password) == "" || name == "" || phone == "" || strings.TrimSpace(in.Role) == "" {
		return nil, common.NewValidationError(msgMissingFields)
	}

	role, err := models.ParseRole(strings.TrimSpace(in.Role))
	if err != nil {
		return nil, common.NewValidationError(msgInvalidRole)
	}
	if len(in.Password) > MaxPasswordBytes {
		return nil, common.NewValidationError(msgPasswordLong)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), PasswordCost)
	if err != nil {
		return nil, fmt.Errorf("%w: hash password: %v", common.ErrorInternal, err)
	}

	now := s.now().UTC()
	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Phone:        phone,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if role == models.RoleDriver && strings.TrimSpace(in.LicenseNumber) != "" {
		details := in.VehicleDetails
		if details == nil {
			details = map[string]any{}
		}
		user.DriverProfile = &models.DriverProfile{
			LicenseNumber:  strings.TrimSpace(in.LicenseNumber),
			VehicleDetails: details,
		}
	}

	created, err := s.repomanager.Users(s.db).Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, common.ErrConflict
		}
		return nil, fmt.Errorf("%w: create user: %v", common.ErrorInternal, err)
	}
	return created, nil
}

// Login checks the credentials and issues a session token. Unknown email and
// wrong password both yield common.ErrorUnauthorized.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, common.NewValidationError(msgLoginRequired)
	}

	user, err := s.repomanager.Users(s.db).GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("%w: find user: %v", common.ErrorInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, common.ErrorUnauthorized
	}

	token, claims, err := s.tokens.Issue(user.ID, user.Email, user.Role, s.sessionValidity)
	if err != nil {
		return nil, fmt.Errorf("%w: issue token: %v", common.ErrorInternal, err)
	}
	return &Session{Token: token, Claims: claims, User: user}, nil
}

// Authenticate verifies token and rejects revoked ones.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorUnauthorized, err)
	}

	revoked, err := s.repomanager.RevokedTokens(s.db).IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: revocation lookup: %v", common.ErrorInternal, err)
	}
	if revoked {
		return nil, fmt.Errorf("%w: token revoked", common.ErrorUnauthorized)
	}
	return claims, nil
}

// Logout revokes the session until it would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil || claims.ID == "" {
		return common.ErrorUnauthorized
	}
	expires := s.now().Add(s.sessionValidity)
	if claims.ExpiresAt != nil {
		expires = claims.ExpiresAt.Time
	}
	if err := s.repomanager.RevokedTokens(s.db).Revoke(ctx, claims.ID, expires); err != nil {
		return fmt.Errorf("%w: revoke: %v", common.ErrorInternal, err)
	}
	return nil
}

// CurrentUser loads the account behind a session. A deleted account is
// reported as common.ErrorUnauthorized.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("%w: find user: %v", common.ErrorInternal, err)
	}
	return user, nil
}

// PurgeRevoked removes revocation entries for tokens that have expired.
func (s *AuthService) PurgeRevoked(ctx context.Context) (int64, error) {
	n, err := s.repomanager.RevokedTokens(s.db).DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("%w: purge revoked tokens: %v", common.ErrorInternal, err)
	}
	if n > 0 {
		s.log.Info(ctx, "purged expired revocations", "count", n)
	}
	return n, nil
}
