package auth

import (
	"context"
	"strings"

	"authservice/internal/domain"
	"authservice/internal/logger"
)

// Login authenticates a user and issues a token.
// Must not leak whether the email exists: unknown email and wrong password
// collapse into one invalid_credentials error. The distinct cause is kept on
// the wrapped error and logged at debug level for diagnostics.
func (s *Service) Login(ctx context.Context, email, password string) (AuthResult, error) {
	email = strings.TrimSpace(email)

	if email == "" || password == "" {
		return AuthResult{}, domain.ErrInvalidCredentials(nil)
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if domain.Is(err, "user_not_found") {
			logger.WithCtx(ctx).Debug().Msg("login failed: unknown email")
			return AuthResult{}, domain.ErrInvalidCredentials(errUnknownEmail)
		}
		return AuthResult{}, domain.ErrInternal(err)
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		logger.WithCtx(ctx).Debug().Str("user_id", u.ID).Msg("login failed: password mismatch")
		return AuthResult{}, domain.ErrInvalidCredentials(errPasswordMismatch)
	}

	toks, err := s.issueTokens(u.ID)
	if err != nil {
		return AuthResult{}, err
	}

	return AuthResult{User: u.Sanitized(), Tokens: toks}, nil
}
