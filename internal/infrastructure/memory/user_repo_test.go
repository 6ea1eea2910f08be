package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"authservice/internal/domain"
)

func TestUserRepo_CreateAssignsID(t *testing.T) {
	r := NewUserRepo()

	u, err := r.Create(context.Background(), domain.User{Email: "a@x.com", Name: "A", PasswordHash: "h"})
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.False(t, u.CreatedAt.IsZero())
	assert.Equal(t, domain.DefaultRoles(), u.Roles)
}

func TestUserRepo_DuplicateEmailRejectedSecondInsertOnly(t *testing.T) {
	r := NewUserRepo()
	ctx := context.Background()

	first, err := r.Create(ctx, domain.User{Email: "a@x.com", Name: "A", PasswordHash: "h1"})
	require.NoError(t, err)

	_, err = r.Create(ctx, domain.User{Email: "A@x.com ", Name: "B", PasswordHash: "h2"})
	require.Error(t, err)
	assert.True(t, domain.Is(err, "email_already_exists"))

	// the store retains only the first record
	got, err := r.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, "h1", got.PasswordHash)
}

func TestUserRepo_GetByIDUnknown(t *testing.T) {
	r := NewUserRepo()

	_, err := r.GetByID(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, domain.Is(err, "user_not_found"))
}

func TestUserRepo_List(t *testing.T) {
	r := NewUserRepo()
	ctx := context.Background()

	_, err := r.Create(ctx, domain.User{Email: "a@x.com", Name: "A", PasswordHash: "h"})
	require.NoError(t, err)
	_, err = r.Create(ctx, domain.User{Email: "b@x.com", Name: "B", PasswordHash: "h"})
	require.NoError(t, err)

	users, err := r.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
