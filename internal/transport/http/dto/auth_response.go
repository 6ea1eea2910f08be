package dto

import (
	"time"

	"authservice/internal/domain"
)

// UserView is the standard user payload. It has no password field at all, so
// a hash cannot leak even if a caller hands us an unsanitized record.
type UserView struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUserView(u domain.User) UserView {
	return UserView{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		IsActive:  u.IsActive,
		Roles:     u.Roles,
		CreatedAt: u.CreatedAt,
	}
}

// TokensView is the standard access token payload.
type TokensView struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"` // "Bearer"
	ExpiresIn   int64  `json:"expires_in"` // seconds
}

// AuthData is returned by register/login.
type AuthData struct {
	User   UserView   `json:"user"`
	Tokens TokensView `json:"tokens"`
}

// UserData is returned by create and by-id lookup.
type UserData struct {
	User UserView `json:"user"`
}

// UsersData is returned by the list endpoint.
type UsersData struct {
	Users []UserView `json:"users"`
}

// CheckTokenData is returned by check-token.
type CheckTokenData struct {
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	User      UserView  `json:"user"`
}
