package auth

import (
	"context"
	"time"

	"authservice/internal/domain"
)

/*
UserRepo
--------
Persistence port for users. Only describes WHAT the auth service needs,
not HOW it is stored. The backing store owns the uniqueness constraint on
email; Create must fail with domain.ErrEmailAlreadyExists on a duplicate.
*/
type UserRepo interface {
	Create(ctx context.Context, u domain.User) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

/*
PasswordHasher
--------------
Abstracts bcrypt. Hash is salted and non-deterministic across calls.
*/
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error // nil if match
}

/*
TokenSigner
-----------
Issues and verifies access tokens (JWT).
Used by the service and the auth middleware.
*/
type TokenClaims struct {
	UserID string
	Exp    time.Time
}

type TokenSigner interface {
	SignAccessToken(userID string, ttl time.Duration) (string, error)
	VerifyAccessToken(token string) (TokenClaims, error)
}

/*
EventPublisher
--------------
Announces successful registrations. Publishing is best-effort; a broker
outage never fails the request.
*/
type UserRegisteredEvent struct {
	UserID string
	Email  string
	Name   string
}

type EventPublisher interface {
	PublishUserRegistered(ctx context.Context, evt UserRegisteredEvent) error
}
