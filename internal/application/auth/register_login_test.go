package auth

import (
	"context"
	"errors"
	"testing"

	"authservice/internal/domain"
)

func TestCreate_EmptyInput_Rejected(t *testing.T) {
	t.Parallel()

	svc, _, _, _, _ := newSvcForTest(t)

	_, err := svc.Create(context.Background(), CreateUserInput{})
	requireErrCode(t, err, "invalid_field")
}

func TestCreate_HashFail_ReturnsHashFailed(t *testing.T) {
	t.Parallel()

	svc, _, hasher, _, _ := newSvcForTest(t)
	hasher.hashFn = func(pw string) (string, error) { return "", errors.New("boom") }

	_, err := svc.Create(context.Background(), CreateUserInput{Email: "a@x.com", Name: "A", Password: "secret1"})
	requireErrCode(t, err, "hash_failed")
}

func TestCreate_Success_NeverReturnsHash(t *testing.T) {
	t.Parallel()

	svc, users, _, _, _ := newSvcForTest(t)

	u, err := svc.Create(context.Background(), CreateUserInput{Email: "a@x.com", Name: "A", Password: "secret1"})
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if u.ID == "" {
		t.Fatalf("expected store-assigned id")
	}
	if u.PasswordHash != "" {
		t.Fatalf("password hash leaked: %q", u.PasswordHash)
	}
	if !u.IsActive {
		t.Fatalf("expected IsActive default true")
	}
	if len(u.Roles) != 1 || u.Roles[0] != "user" {
		t.Fatalf("expected default roles, got %v", u.Roles)
	}

	// stored record keeps the hash, never the plaintext
	stored := users.byID[u.ID]
	if stored.PasswordHash == "" || stored.PasswordHash == "secret1" {
		t.Fatalf("stored hash wrong: %q", stored.PasswordHash)
	}
}

func TestCreate_DuplicateEmail_SecondAttemptFails(t *testing.T) {
	t.Parallel()

	svc, users, _, _, _ := newSvcForTest(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, CreateUserInput{Email: "a@x.com", Name: "A", Password: "secret1"})
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}

	_, err = svc.Create(ctx, CreateUserInput{Email: "a@x.com", Name: "B", Password: "secret2"})
	requireErrCode(t, err, "email_already_exists")

	// store retains only the first record
	if len(users.byID) != 1 {
		t.Fatalf("expected one record, got %d", len(users.byID))
	}
	if users.byEmail["a@x.com"].ID != first.ID {
		t.Fatalf("first record must survive")
	}
}

func TestCreate_UnclassifiedStoreError_IsOpaqueInternal(t *testing.T) {
	t.Parallel()

	svc, users, _, _, _ := newSvcForTest(t)
	users.createErr = errors.New("pq: relation users does not exist")

	_, err := svc.Create(context.Background(), CreateUserInput{Email: "a@x.com", Name: "A", Password: "secret1"})
	requireErrCode(t, err, "internal_error")
}

func TestRegister_Success_ReturnsUserAndToken(t *testing.T) {
	t.Parallel()

	svc, _, _, _, pub := newSvcForTest(t)

	res, err := svc.Register(context.Background(), CreateUserInput{Email: "a@x.com", Name: "A", Password: "secret1"})
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if res.User.PasswordHash != "" {
		t.Fatalf("hash leaked")
	}
	if res.Tokens.AccessToken == "" || res.Tokens.TokenType != "Bearer" {
		t.Fatalf("expected token, got %+v", res.Tokens)
	}
	if res.Tokens.ExpiresIn != int64((6 * 60 * 60)) {
		t.Fatalf("expected 6h expiry, got %d", res.Tokens.ExpiresIn)
	}
	if len(pub.events) != 1 || pub.events[0].UserID != res.User.ID {
		t.Fatalf("expected one user.registered event, got %+v", pub.events)
	}
}

func TestRegister_PublisherFailureDoesNotFailRequest(t *testing.T) {
	t.Parallel()

	svc, _, _, _, pub := newSvcForTest(t)
	pub.fail = errors.New("broker down")

	res, err := svc.Register(context.Background(), CreateUserInput{Email: "a@x.com", Name: "A", Password: "secret1"})
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if res.Tokens.AccessToken == "" {
		t.Fatalf("expected token despite publish failure")
	}
}

func TestRegister_DuplicatePropagatesUnchanged(t *testing.T) {
	t.Parallel()

	svc, _, _, _, _ := newSvcForTest(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, CreateUserInput{Email: "a@x.com", Name: "A", Password: "secret1"}); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	_, err := svc.Register(ctx, CreateUserInput{Email: "a@x.com", Name: "A", Password: "secret1"})
	requireErrCode(t, err, "email_already_exists")
}

func TestLogin_EmptyFields_InvalidCredentials(t *testing.T) {
	t.Parallel()

	svc, _, _, _, _ := newSvcForTest(t)

	_, err := svc.Login(context.Background(), "", "")
	requireErrCode(t, err, "invalid_credentials")
}

func TestLogin_UnknownEmailAndBadPassword_Indistinguishable(t *testing.T) {
	t.Parallel()

	svc, _, _, _, _ := newSvcForTest(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, CreateUserInput{Email: "a@x.com", Name: "A", Password: "secret1"}); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}

	_, errUnknown := svc.Login(ctx, "missing@x.com", "secret1")
	_, errWrongPw := svc.Login(ctx, "a@x.com", "wrong")

	requireErrCode(t, errUnknown, "invalid_credentials")
	requireErrCode(t, errWrongPw, "invalid_credentials")

	// externally identical: same code, same safe message
	var a, b *domain.Error
	if !errors.As(errUnknown, &a) || !errors.As(errWrongPw, &b) {
		t.Fatalf("expected domain errors")
	}
	if a.Code != b.Code || a.Message != b.Message || a.Kind != b.Kind {
		t.Fatalf("login failures must not be distinguishable: %+v vs %+v", a, b)
	}
}

func TestLogin_Success_TokensVaryPerCall(t *testing.T) {
	t.Parallel()

	svc, _, _, _, _ := newSvcForTest(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, CreateUserInput{Email: "a@x.com", Name: "A", Password: "secret1"})
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}

	r1, err := svc.Login(ctx, "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	r2, err := svc.Login(ctx, "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}

	if r1.User.ID != reg.User.ID || r2.User.ID != reg.User.ID {
		t.Fatalf("login must return the stored record's id")
	}
	if r1.User.PasswordHash != "" {
		t.Fatalf("hash leaked")
	}
	if r1.Tokens.AccessToken == r2.Tokens.AccessToken {
		t.Fatalf("tokens must not be cached across logins")
	}
}

func TestLogin_TrimsEmailWhitespace(t *testing.T) {
	t.Parallel()

	svc, _, _, _, _ := newSvcForTest(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, CreateUserInput{Email: "a@x.com", Name: "A", Password: "secret1"}); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}

	if _, err := svc.Login(ctx, "  a@x.com  ", "secret1"); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestLogin_RepoInfrastructureError_IsOpaque(t *testing.T) {
	t.Parallel()

	svc, users, _, _, _ := newSvcForTest(t)
	users.getByEmailErr = errors.New("connection reset")

	_, err := svc.Login(context.Background(), "a@x.com", "secret1")
	requireErrCode(t, err, "internal_error")
}
