// Package postgres implements the user store on PostgreSQL via the pgx
// stdlib driver. Email uniqueness is owned by the unique index; a violated
// insert comes back as SQLSTATE 23505.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"authservice/internal/domain"
)

const (
	uniqueViolation = "23505"
	invalidTextRep  = "22P02" // malformed uuid literal
)

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// ---------- helpers ----------

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func toDomainUser(ur userRow) (domain.User, error) {
	var roles []string
	if len(ur.Roles) > 0 {
		if err := json.Unmarshal(ur.Roles, &roles); err != nil {
			return domain.User{}, err
		}
	}
	return domain.User{
		ID:           ur.ID,
		Email:        ur.Email,
		Name:         ur.Name,
		PasswordHash: ur.PasswordHash,
		IsActive:     ur.IsActive,
		Roles:        roles,
		CreatedAt:    ur.CreatedAt,
	}, nil
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func isUniqueViolation(err error) bool {
	return isPgCode(err, uniqueViolation)
}

func isPgCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUserRow(row rowScanner) (userRow, error) {
	var ur userRow
	err := row.Scan(
		&ur.ID,
		&ur.Email,
		&ur.Name,
		&ur.PasswordHash,
		&ur.IsActive,
		&ur.Roles,
		&ur.CreatedAt,
	)
	return ur, err
}

// ---------- auth.UserRepo ----------

func (r *UserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	u.Email = normalizeEmail(u.Email)
	if u.Email == "" {
		return domain.User{}, domain.ErrMissingField("email")
	}
	if u.PasswordHash == "" {
		return domain.User{}, domain.ErrMissingField("password_hash")
	}
	if len(u.Roles) == 0 {
		u.Roles = domain.DefaultRoles()
	}

	roles, err := json.Marshal(u.Roles)
	if err != nil {
		return domain.User{}, domain.ErrInternal(err)
	}

	const q = `
INSERT INTO users (email, name, password_hash, is_active, roles)
VALUES ($1,$2,$3,$4,$5)
RETURNING id, email, name, password_hash, is_active, roles, created_at;
`
	ur, err := scanUserRow(r.db.QueryRowContext(ctx, q,
		u.Email, u.Name, u.PasswordHash, u.IsActive, roles,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, domain.ErrEmailAlreadyExists(u.Email)
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return toDomainUser(ur)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return domain.User{}, domain.ErrMissingField("email")
	}

	const q = `
SELECT id, email, name, password_hash, is_active, roles, created_at
FROM users
WHERE email = $1
LIMIT 1;
`
	ur, err := scanUserRow(r.db.QueryRowContext(ctx, q, email))
	if err != nil {
		if isNoRows(err) {
			return domain.User{}, domain.ErrUserNotFound()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return toDomainUser(ur)
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.User{}, domain.ErrMissingField("id")
	}

	const q = `
SELECT id, email, name, password_hash, is_active, roles, created_at
FROM users
WHERE id = $1
LIMIT 1;
`
	ur, err := scanUserRow(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		// A malformed uuid is indistinguishable from a missing record to the
		// caller.
		if isNoRows(err) || isPgCode(err, invalidTextRep) {
			return domain.User{}, domain.ErrUserNotFound()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return toDomainUser(ur)
}

func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	const q = `
SELECT id, email, name, password_hash, is_active, roles, created_at
FROM users
ORDER BY created_at;
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		ur, err := scanUserRow(rows)
		if err != nil {
			return nil, domain.ErrDBUnavailable(err)
		}
		u, err := toDomainUser(ur)
		if err != nil {
			return nil, domain.ErrInternal(err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	return users, nil
}
