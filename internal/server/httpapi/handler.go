// Package httpapi exposes the QDrive HTTP API and pages over gin. Every
// request passes through the Gatekeeper before routing.
package httpapi

import (
	"context"
	"time"

	"github.com/dmitrijs2005/qdrive/internal/logging"
	"github.com/dmitrijs2005/qdrive/internal/server/auth"
	"github.com/dmitrijs2005/qdrive/internal/server/models"
	"github.com/dmitrijs2005/qdrive/internal/server/services"
)

type AuthService interface {
	Register(ctx context.Context, in services.RegisterInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (*services.Session, error)
	Authenticate(ctx context.Context, token string) (*auth.Claims, error)
	Logout(ctx context.Context, claims *auth.Claims) error
	CurrentUser(ctx context.Context, userID string) (*models.User, error)
}

type RideService interface {
	RequestRide(ctx context.Context, claims *auth.Claims, in services.RideRequestInput) (*models.Ride, error)
	GetRide(ctx context.Context, claims *auth.Claims, id string) (*models.Ride, error)
}

type ProfileService interface {
	CreateProfilePictureUpload(ctx context.Context, userID string) (*services.UploadURL, error)
}

// Options control cookie and page behaviour.
type Options struct {
	// SecureCookies sets the Secure attribute on the session cookie.
	SecureCookies bool
	// WebRoot is the directory pages and /static/ are served from. Empty
	// serves placeholders.
	WebRoot string
	// SessionValidity is the cookie Max-Age. Zero means seven days.
	SessionValidity time.Duration
	// Mode is passed to gin.SetMode. Empty means release.
	Mode string
}

type Handler struct {
	auth    AuthService
	rides   RideService
	profile ProfileService
	opts    Options
	log     logging.Logger
}

func NewHandler(a AuthService, r RideService, p ProfileService, opts Options, log logging.Logger) *Handler {
	return &Handler{auth: a, rides: r, profile: p, opts: opts, log: log}
}
