package common

import "time"

const (
	// AuthCookieName is the cookie that carries the session token.
	AuthCookieName = "auth_token"

	// SessionValidity is how long a session token stays valid after login.
	SessionValidity = 7 * 24 * time.Hour
)
