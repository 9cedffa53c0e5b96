// Package models defines the LabKeeper domain types: user accounts and
// laboratory reservations.
package models

import "time"

// Role is the access level of an account.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "usuario"
)

// Roles lists the selectable roles in display order.
var Roles = []Role{RoleAdmin, RoleUser}

// Valid reports whether r is one of Roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User is an account as returned to callers. The password hash never leaves
// the store through this type.
type User struct {
	ID          int64
	Username    string
	DisplayName string
	Email       string // empty when not given
	Role        Role
	CreatedAt   time.Time
}

// IsAdmin reports whether u may manage accounts.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserInput carries every mutable user field for create and update.
type UserInput struct {
	Username    string
	DisplayName string
	Email       string
	Role        Role
}

// Credentials is the row used by authentication only.
type Credentials struct {
	User
	PasswordHash string
}

// Session is the authenticated user of the running application.
type Session struct {
	User      User
	StartedAt time.Time
}
