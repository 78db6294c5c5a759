// Package models defines the wire and persisted shapes the Petbook client
// works with: sessions, pets, posts, comments and messages.
package models

import "github.com/avelichko/petbook/internal/common"

// Session is the in-memory authenticated identity. It is owned exclusively
// by the session store; other components read snapshots only.
//
// Invariant: AccessToken is non-empty iff the session is authenticated.
type Session struct {
	UserID       int64
	DisplayName  string
	Email        string
	RoleID       int
	City         string
	AccessToken  string
	RefreshToken string
}

// Clone returns a copy safe to hand out to readers.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

// IsAdmin reports whether the session's role grants admin access.
func (s *Session) IsAdmin() bool {
	return s != nil && s.RoleID == common.AdminRoleID
}

// UserRecord is the wire/persisted shape of a user. The backend historically
// emitted the role under "rol_id"; newer responses use "role_id". Both are
// accepted, the canonical name wins.
type UserRecord struct {
	ID           int64  `json:"id"`
	DisplayName  string `json:"display_name"`
	Email        string `json:"email"`
	RoleID       *int   `json:"role_id,omitempty"`
	LegacyRoleID *int   `json:"rol_id,omitempty"`
	City         string `json:"city,omitempty"`
}

// Role resolves the role id, preferring the canonical field over the legacy
// one. Records with neither field get role 0.
func (u UserRecord) Role() int {
	if u.RoleID != nil {
		return *u.RoleID
	}
	if u.LegacyRoleID != nil {
		return *u.LegacyRoleID
	}
	return 0
}

// NormalizedCity returns the user's city, defaulting when absent.
func (u UserRecord) NormalizedCity() string {
	if u.City == "" {
		return common.DefaultCity
	}
	return u.City
}

// LoginResponse is the body of POST /auth/login.
type LoginResponse struct {
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token"`
	User         UserRecord `json:"user"`
}

// RefreshResponse is the body of POST /auth/refresh. Only the access token
// is renewed; identity fields never travel on this response.
type RefreshResponse struct {
	AccessToken string `json:"access_token"`
}
