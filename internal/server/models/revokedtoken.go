package models

import "time"

// RevokedToken marks a session token id as unusable until ExpiresAt, after
// which the token would have expired on its own.
type RevokedToken struct {
	TokenID   string
	ExpiresAt time.Time
	CreatedAt time.Time
}
