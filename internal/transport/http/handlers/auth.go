package http_handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"authservice/internal/application/auth"
	"authservice/internal/domain"
	"authservice/internal/logger"
	"authservice/internal/transport/http/dto"
	"authservice/internal/transport/http/middleware"
	"authservice/internal/transport/http/response"
)

type AuthHandler struct {
	svc *auth.Service
}

func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// CreateUser handles POST /users. It persists the user but does not log them
// in; no tokens are issued.
func (h *AuthHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	user, err := h.svc.Create(r.Context(), auth.CreateUserInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("user_id", user.ID).
		Str("email", user.Email).
		Msg("user_created")

	response.Created(w, dto.UserData{User: dto.NewUserView(user)})
}

// Register handles POST /register: create the user and immediately issue an
// access token.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.Register(r.Context(), auth.CreateUserInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		if domain.Is(err, "email_already_exists") {
			middleware.RegistrationsTotal.WithLabelValues("conflict").Inc()
		} else {
			middleware.RegistrationsTotal.WithLabelValues("error").Inc()
		}
		response.WriteError(w, r, err)
		return
	}

	middleware.RegistrationsTotal.WithLabelValues("success").Inc()
	logger.WithCtx(r.Context()).Info().
		Str("user_id", res.User.ID).
		Str("email", res.User.Email).
		Msg("user_registered")

	response.Created(w, dto.AuthData{
		User:   dto.NewUserView(res.User),
		Tokens: tokensView(res.Tokens),
	})
}

// Login handles POST /login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if domain.Is(err, "invalid_credentials") {
			middleware.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
		}
		response.WriteError(w, r, err)
		return
	}

	middleware.LoginAttemptsTotal.WithLabelValues("success").Inc()
	logger.WithCtx(r.Context()).Info().
		Str("user_id", res.User.ID).
		Msg("user_logged_in")

	response.OK(w, dto.AuthData{
		User:   dto.NewUserView(res.User),
		Tokens: tokensView(res.Tokens),
	})
}

// ListUsers handles GET /users.
func (h *AuthHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.FindAll(r.Context())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	views := make([]dto.UserView, 0, len(users))
	for _, u := range users {
		views = append(views, dto.NewUserView(u))
	}
	response.OK(w, dto.UsersData{Users: views})
}

// GetUserByID handles GET /users/{id}.
func (h *AuthHandler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	user, err := h.svc.GetUserByID(r.Context(), id)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.UserData{User: dto.NewUserView(user)})
}

// CheckToken handles GET /check-token. It verifies the bearer token itself
// instead of relying on middleware so the decoded expiry can be returned.
func (h *AuthHandler) CheckToken(w http.ResponseWriter, r *http.Request) {
	raw, err := bearerToken(r)
	if err != nil {
		middleware.TokenChecksTotal.WithLabelValues("invalid").Inc()
		response.WriteError(w, r, err)
		return
	}

	claims, err := h.svc.CheckToken(raw)
	if err != nil {
		if domain.Is(err, "token_expired") {
			middleware.TokenChecksTotal.WithLabelValues("expired").Inc()
		} else {
			middleware.TokenChecksTotal.WithLabelValues("invalid").Inc()
		}
		response.WriteError(w, r, err)
		return
	}

	user, err := h.svc.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	middleware.TokenChecksTotal.WithLabelValues("valid").Inc()
	response.OK(w, dto.CheckTokenData{
		UserID:    claims.UserID,
		ExpiresAt: claims.Exp,
		User:      dto.NewUserView(user),
	})
}

func bearerToken(r *http.Request) (string, error) {
	h := r.Header.Get("Authorization")
	if h == "" {
		return "", domain.ErrTokenMissing()
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", domain.ErrTokenInvalid()
	}
	raw := strings.TrimSpace(parts[1])
	if raw == "" {
		return "", domain.ErrTokenInvalid()
	}
	return raw, nil
}

func tokensView(t auth.AuthTokens) dto.TokensView {
	return dto.TokensView{
		AccessToken: t.AccessToken,
		TokenType:   t.TokenType,
		ExpiresIn:   t.ExpiresIn,
	}
}
