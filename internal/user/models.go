package user

import (
	"time"

	"github.com/Sherlyzahra/knowledge-sharing/internal/auth"
)

// User is an identity record owned by the credential store.
//
// Invariants:
// - username and email are unique within the store.
// - PasswordHash is never serialized or logged.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name,omitempty"`
	PasswordHash string    `json:"-"`
	RoleID       *int64    `json:"role_id"`
	RoleName     string    `json:"role,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity projects the user into the shape downstream services consume.
func (u User) Identity() auth.Identity {
	return auth.Identity{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		FullName: u.FullName,
		RoleID:   u.RoleID,
		Role:     u.RoleName,
		IsActive: u.IsActive,
	}
}

// Role is a flat single-role-per-user label. Role names are part of the
// authorization contract; keep them stable.
type Role struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// DefaultRoles are seeded at startup if absent.
var DefaultRoles = []Role{
	{Name: RoleUser, Description: "Regular user"},
	{Name: RoleAdmin, Description: "Administrator"},
}
