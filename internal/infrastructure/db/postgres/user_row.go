package postgres

import "time"

type userRow struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	IsActive     bool
	Roles        []byte // JSONB
	CreatedAt    time.Time
}
