package auth

import (
	"context"
	"errors"
	"testing"

	"authservice/internal/domain"
)

func TestFindAll_StripsPasswordHashes(t *testing.T) {
	t.Parallel()

	svc, users, _, _, _ := newSvcForTest(t)
	users.add(domain.User{ID: "u1", Email: "a@x.com", Name: "A", PasswordHash: "h1"})
	users.add(domain.User{ID: "u2", Email: "b@x.com", Name: "B", PasswordHash: "h2"})

	out, err := svc.FindAll(context.Background())
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 users, got %d", len(out))
	}
	for _, u := range out {
		if u.PasswordHash != "" {
			t.Fatalf("hash leaked for %s", u.ID)
		}
	}
}

func TestFindAll_EmptyStoreYieldsEmptySlice(t *testing.T) {
	t.Parallel()

	svc, _, _, _, _ := newSvcForTest(t)

	out, err := svc.FindAll(context.Background())
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if out == nil || len(out) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", out)
	}
}

func TestFindAll_RepoErrorIsOpaque(t *testing.T) {
	t.Parallel()

	svc, users, _, _, _ := newSvcForTest(t)
	users.listErr = errors.New("timeout")

	_, err := svc.FindAll(context.Background())
	requireErrCode(t, err, "internal_error")
}

func TestGetUserByID_UnknownID_NotFound(t *testing.T) {
	t.Parallel()

	svc, _, _, _, _ := newSvcForTest(t)

	_, err := svc.GetUserByID(context.Background(), "missing")
	requireErrCode(t, err, "user_not_found")
}

func TestGetUserByID_EmptyID_Rejected(t *testing.T) {
	t.Parallel()

	svc, _, _, _, _ := newSvcForTest(t)

	_, err := svc.GetUserByID(context.Background(), "")
	requireErrCode(t, err, "missing_field")
}

func TestGetUserByID_Success_Sanitized(t *testing.T) {
	t.Parallel()

	svc, users, _, _, _ := newSvcForTest(t)
	users.add(domain.User{ID: "u1", Email: "a@x.com", Name: "A", PasswordHash: "h1", IsActive: true})

	u, err := svc.GetUserByID(context.Background(), "u1")
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if u.PasswordHash != "" {
		t.Fatalf("hash leaked")
	}
	if u.Email != "a@x.com" || u.Name != "A" {
		t.Fatalf("unexpected user %+v", u)
	}
}
