package auth

import (
	"context"

	"authservice/internal/domain"
)

// FindAll lists every user. Hashes are stripped before the slice leaves the
// service.
func (s *Service) FindAll(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, domain.ErrInternal(err)
	}
	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		out = append(out, u.Sanitized())
	}
	return out, nil
}

// GetUserByID returns one sanitized user or user_not_found. The missing-record
// guard runs before any field access, so a stale id never dereferences an
// empty record.
func (s *Service) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	if id == "" {
		return domain.User{}, domain.ErrMissingField("id")
	}
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if domain.Is(err, "user_not_found") {
			return domain.User{}, err
		}
		return domain.User{}, domain.ErrInternal(err)
	}
	return u.Sanitized(), nil
}
