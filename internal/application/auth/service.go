// Package auth implements the credential issuance flow: user creation with
// salted password hashing, login verification, and signed access tokens.
package auth

import (
	"errors"
	"time"

	"authservice/internal/domain"
)

// Internal login failure causes. Both surface as the same
// invalid_credentials error; these exist for diagnostics only.
var (
	errUnknownEmail     = errors.New("email not registered")
	errPasswordMismatch = errors.New("password mismatch")
)

type Service struct {
	users  UserRepo
	hasher PasswordHasher
	signer TokenSigner
	pub    EventPublisher

	tokenTTL time.Duration
}

type Config struct {
	TokenTTL time.Duration
}

func NewService(users UserRepo, hasher PasswordHasher, signer TokenSigner, pub EventPublisher, cfg Config) *Service {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 6 * time.Hour
	}
	return &Service{
		users:    users,
		hasher:   hasher,
		signer:   signer,
		pub:      pub,
		tokenTTL: ttl,
	}
}

// AuthTokens is the common token output for handlers/DTO mapping.
type AuthTokens struct {
	AccessToken string
	TokenType   string // "Bearer"
	ExpiresIn   int64  // seconds
}

// AuthResult is returned by Register and Login: the sanitized user plus a
// freshly signed token.
type AuthResult struct {
	User   domain.User
	Tokens AuthTokens
}

// issueTokens signs an access token for a user. Token content depends on the
// user id and issuance time only; two calls yield two valid tokens.
func (s *Service) issueTokens(userID string) (AuthTokens, error) {
	access, err := s.signer.SignAccessToken(userID, s.tokenTTL)
	if err != nil {
		return AuthTokens{}, domain.ErrTokenSignFailed(err)
	}
	return AuthTokens{
		AccessToken: access,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.tokenTTL.Seconds()),
	}, nil
}
