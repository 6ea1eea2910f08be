package memory

import (
	"context"

	"authservice/internal/application/auth"
	"authservice/internal/logger"
)

// NoopPublisher stands in for the broker in dev and tests.
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher { return &NoopPublisher{} }

func (p *NoopPublisher) PublishUserRegistered(ctx context.Context, evt auth.UserRegisteredEvent) error {
	logger.WithCtx(ctx).Debug().
		Str("user_id", evt.UserID).
		Str("email", evt.Email).
		Msg("noop publisher: user.registered")
	return nil
}
