package models

import (
	"errors"
	"strings"
)

// UserRole is the authorization role carried by users and identity tokens.
type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleAdmin UserRole = "ADMIN"
)

// ErrInvalidRole is returned by ParseUserRole for unknown role names.
var ErrInvalidRole = errors.New("invalid user role")

// ParseUserRole resolves a role name case-insensitively.
func ParseUserRole(s string) (UserRole, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(RoleUser):
		return RoleUser, nil
	case string(RoleAdmin):
		return RoleAdmin, nil
	default:
		return "", ErrInvalidRole
	}
}

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User represents an account in the system.
// It maps to the `users` table.
type User struct {
	ID           int64    `db:"id" json:"id"`
	Email        string   `db:"email" json:"email"`
	PasswordHash string   `db:"password_hash" json:"-"`
	Role         UserRole `db:"role" json:"role"`
}
