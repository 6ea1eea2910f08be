package auth

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"authservice/internal/domain"
)

/*
Fakes for ports
*/

type fakeUserRepo struct {
	mu sync.Mutex

	byID    map[string]domain.User
	byEmail map[string]domain.User

	// injected errors (if set, method returns error)
	createErr     error
	getByEmailErr error
	getByIDErr    error
	listErr       error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    map[string]domain.User{},
		byEmail: map[string]domain.User{},
	}
}

func (f *fakeUserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return domain.User{}, f.createErr
	}
	if _, exists := f.byEmail[u.Email]; exists {
		return domain.User{}, domain.ErrEmailAlreadyExists(u.Email)
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getByEmailErr != nil {
		return domain.User{}, f.getByEmailErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getByIDErr != nil {
		return domain.User{}, f.getByIDErr
	}
	u, ok := f.byID[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (f *fakeUserRepo) List(ctx context.Context) ([]domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]domain.User, 0, len(f.byID))
	for _, u := range f.byID {
		out = append(out, u)
	}
	return out, nil
}

// add inserts a user directly, bypassing Create.
func (f *fakeUserRepo) add(u domain.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
}

/*
fakeHasher encodes "hash:<pw>-<n>" so hashes are deterministic to assert on
but differ call to call, like a real salted hash.
*/
type fakeHasher struct {
	mu    sync.Mutex
	calls int

	hashFn    func(pw string) (string, error)
	compareFn func(hash, pw string) error
}

func (f *fakeHasher) Hash(pw string) (string, error) {
	if f.hashFn != nil {
		return f.hashFn(pw)
	}
	f.mu.Lock()
	f.calls++
	n := f.calls
	f.mu.Unlock()
	return fmt.Sprintf("hash:%s-%d", pw, n), nil
}

func (f *fakeHasher) Compare(hash, pw string) error {
	if f.compareFn != nil {
		return f.compareFn(hash, pw)
	}
	prefix := "hash:" + pw + "-"
	if len(hash) > len(prefix) && hash[:len(prefix)] == prefix {
		return nil
	}
	return fmt.Errorf("mismatch")
}

type fakeSigner struct {
	mu    sync.Mutex
	seq   int
	ttl   time.Duration
	fail  error
	byTok map[string]string // token -> userID
}

func newFakeSigner() *fakeSigner {
	return &fakeSigner{byTok: map[string]string{}}
}

func (f *fakeSigner) SignAccessToken(userID string, ttl time.Duration) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.fail != nil {
		return "", f.fail
	}
	f.seq++
	f.ttl = ttl
	tok := fmt.Sprintf("tok-%s-%d", userID, f.seq)
	f.byTok[tok] = userID
	return tok, nil
}

func (f *fakeSigner) VerifyAccessToken(token string) (TokenClaims, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	uid, ok := f.byTok[token]
	if !ok {
		return TokenClaims{}, domain.ErrTokenInvalid()
	}
	return TokenClaims{UserID: uid, Exp: time.Now().Add(f.ttl)}, nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []UserRegisteredEvent
	fail   error
}

func (f *fakePublisher) PublishUserRegistered(ctx context.Context, evt UserRegisteredEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.fail != nil {
		return f.fail
	}
	f.events = append(f.events, evt)
	return nil
}

/*
Helpers
*/

func newSvcForTest(t *testing.T) (*Service, *fakeUserRepo, *fakeHasher, *fakeSigner, *fakePublisher) {
	t.Helper()
	users := newFakeUserRepo()
	hasher := &fakeHasher{}
	signer := newFakeSigner()
	pub := &fakePublisher{}
	svc := NewService(users, hasher, signer, pub, Config{TokenTTL: 6 * time.Hour})
	return svc, users, hasher, signer, pub
}

func requireErrCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %q, got nil", code)
	}
	if !domain.Is(err, code) {
		t.Fatalf("expected code %q, got %v", code, err)
	}
}
