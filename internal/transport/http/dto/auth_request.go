package dto

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"authservice/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// mapFieldError turns a validator failure into the matching domain error.
// Only the first failure is reported.
func mapFieldError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return domain.ErrInvalidField("body", "invalid")
	}
	fe := verrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return domain.ErrMissingField(field)
	case "email":
		return domain.ErrInvalidField(field, "invalid format")
	case "min":
		if field == "password" {
			return domain.ErrWeakPassword("min length " + fe.Param())
		}
		return domain.ErrInvalidField(field, "too short")
	default:
		return domain.ErrInvalidField(field, fe.Tag())
	}
}

// -------- Core auth --------

type CreateUserRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Name     string `json:"name"     validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

func (r *CreateUserRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	r.Name = strings.TrimSpace(r.Name)
	if err := validate.Struct(r); err != nil {
		return mapFieldError(err)
	}
	return nil
}

// RegisterRequest shares the create shape; registration is create + token.
type RegisterRequest = CreateUserRequest

type LoginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	if err := validate.Struct(r); err != nil {
		return mapFieldError(err)
	}
	return nil
}
