package domain

import "time"

// DefaultRoles is the role set assigned to users created without explicit
// roles. Roles are persisted and returned but nothing enforces them yet.
func DefaultRoles() []string { return []string{"user"} }

type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	IsActive     bool
	Roles        []string
	CreatedAt    time.Time
}

// Sanitized returns a copy safe to hand to callers outside the store/service
// boundary: the password hash is cleared.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	return u
}
