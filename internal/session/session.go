// Package session implements the authentication gate: form login that
// establishes a server-side session, logout that destroys it, and the
// table deciding which routes need one.
package session

import (
	"errors"
	"time"
)

var (
	// ErrAuthentication covers both an unknown email and a wrong password.
	ErrAuthentication = errors.New("email or password is incorrect")
	// ErrSessionNotFound means the presented token does not map to a live
	// session: never issued, expired, or logged out.
	ErrSessionNotFound = errors.New("session not found")
)

type Credentials struct {
	Email    string `form:"email" json:"email" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// Session is the server-side record behind a session cookie.
type Session struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"userId"`
	Email     string    `json:"email"`
	TokenHash string    `json:"tokenHash"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Token is handed to the client, normally as a cookie value.
type Token struct {
	Value     string
	ExpiresAt time.Time
}
