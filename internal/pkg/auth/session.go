package auth

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies which command surface a session may use
type Role string

const (
	// RoleGuest is an applicant logged in with an application ID
	RoleGuest Role = "guest"
	// RoleStudent is an enrolled student logged in with a matric number
	RoleStudent Role = "student"
	// RoleAdmin is a portal administrator
	RoleAdmin Role = "admin"
)

// Session is the in-process login state of the interactive shell.
// There is no transport, so a session lives exactly as long as the
// process (or until logout) and is never serialized.
type Session struct {
	ID        string
	Role      Role
	UserID    string // application ID, matric number or admin username
	StartedAt time.Time
}

// NewSession opens a session for an authenticated user
func NewSession(role Role, userID string) *Session {
	return &Session{
		ID:        uuid.NewString(),
		Role:      role,
		UserID:    userID,
		StartedAt: time.Now(),
	}
}
