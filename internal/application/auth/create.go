package auth

import (
	"context"

	"authservice/internal/domain"
	"authservice/internal/logger"
)

type CreateUserInput struct {
	Email    string
	Name     string
	Password string
}

// Create hashes the password and persists a new user. The transport layer
// validates shape (email format, name, password length) before calling;
// structurally empty input is still refused here.
//
// Uniqueness is enforced solely by the store's unique index: no
// read-then-write check happens here, so concurrent registrations of the
// same email race safely and exactly one wins.
func (s *Service) Create(ctx context.Context, in CreateUserInput) (domain.User, error) {
	if in.Email == "" || in.Name == "" || in.Password == "" {
		return domain.User{}, domain.ErrInvalidField("email/name/password", "empty")
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return domain.User{}, domain.ErrHashFailed(err)
	}

	u := domain.User{
		Email:        in.Email,
		Name:         in.Name,
		PasswordHash: hash,
		IsActive:     true,
		Roles:        domain.DefaultRoles(),
	}

	created, err := s.users.Create(ctx, u)
	if err != nil {
		if domain.Is(err, "email_already_exists") {
			return domain.User{}, err
		}
		// Anything else stays opaque to the caller.
		return domain.User{}, domain.ErrInternal(err)
	}

	return created.Sanitized(), nil
}

// Register creates the user and logs them in by issuing a token for the new
// id. Create failures propagate unchanged.
func (s *Service) Register(ctx context.Context, in CreateUserInput) (AuthResult, error) {
	user, err := s.Create(ctx, in)
	if err != nil {
		return AuthResult{}, err
	}

	toks, err := s.issueTokens(user.ID)
	if err != nil {
		return AuthResult{}, err
	}

	if s.pub != nil {
		evt := UserRegisteredEvent{UserID: user.ID, Email: user.Email, Name: user.Name}
		if err := s.pub.PublishUserRegistered(ctx, evt); err != nil {
			logger.WithCtx(ctx).Warn().Err(err).Str("user_id", user.ID).Msg("user_registered event not published")
		}
	}

	return AuthResult{User: user, Tokens: toks}, nil
}
