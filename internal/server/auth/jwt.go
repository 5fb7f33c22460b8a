// Package auth issues and verifies the HS256 session tokens carried in the
// auth_token cookie.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/qdrive/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// MinSecretLength is the shortest signing secret NewTokenManager accepts.
const MinSecretLength = 32

var (
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired also matches ErrInvalidToken.
	ErrTokenExpired = fmt.Errorf("%w: expired", ErrInvalidToken)
	ErrWeakSecret   = fmt.Errorf("jwt secret must be at least %d bytes", MinSecretLength)
)

// Claims are the session token claims. Subject holds the user id and ID the
// token id used for revocation.
type Claims struct {
	jwt.RegisteredClaims
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

// TokenManager signs and verifies session tokens with a single secret.
type TokenManager struct {
	secret []byte
	now    func() time.Time
}

func NewTokenManager(secret []byte) (*TokenManager, error) {
	if len(secret) < MinSecretLength {
		return nil, ErrWeakSecret
	}
	s := make([]byte, len(secret))
	copy(s, secret)
	return &TokenManager{secret: s, now: time.Now}, nil
}

// Issue signs a token for the user that expires after ttl.
func (m *TokenManager) Issue(userID, email string, role models.Role, ttl time.Duration) (string, *Claims, error) {
	if userID == "" {
		return "", nil, errors.New("empty subject")
	}
	if !role.Valid() {
		return "", nil, fmt.Errorf("unknown role %q", string(role))
	}

	now := m.now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email: email,
		Role:  role,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", nil, err
	}
	return token, claims, nil
}

// Verify checks signature, algorithm, expiry and required claims.
func (m *TokenManager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing sub", ErrInvalidToken)
	}
	if claims.ID == "" {
		return nil, fmt.Errorf("%w: missing jti", ErrInvalidToken)
	}
	if !claims.Role.Valid() {
		return nil, fmt.Errorf("%w: missing role", ErrInvalidToken)
	}

	return claims, nil
}
