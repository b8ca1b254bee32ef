package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ecoleweb/portail/internal/auth"
	"github.com/ecoleweb/portail/internal/rbac"
)

// In-memory fake satisfying auth.UserStore.
type fakeUserStore struct {
	byID map[string]auth.User
}

func newFakeUserStore(users ...auth.User) *fakeUserStore {
	s := &fakeUserStore{byID: map[string]auth.User{}}
	for _, u := range users {
		s.byID[u.ID] = u
	}
	return s
}

func (s *fakeUserStore) GetActive(_ context.Context, id string) (auth.User, error) {
	u, ok := s.byID[id]
	if !ok || !u.Active {
		return auth.User{}, auth.ErrUserNotFound
	}
	return u, nil
}

func (s *fakeUserStore) GetByLoginCode(_ context.Context, code string) (auth.User, error) {
	for _, u := range s.byID {
		if u.LoginCode == code {
			return u, nil
		}
	}
	return auth.User{}, auth.ErrUserNotFound
}

func (s *fakeUserStore) UpsertUser(_ context.Context, u auth.User) error {
	s.byID[u.ID] = u
	return nil
}

func (s *fakeUserStore) SetPassword(_ context.Context, id, hash string) error {
	u, ok := s.byID[id]
	if !ok {
		return auth.ErrUserNotFound
	}
	u.PasswordHash = hash
	s.byID[id] = u
	return nil
}

func (s *fakeUserStore) SetActive(_ context.Context, id string, active bool) error {
	u, ok := s.byID[id]
	if !ok {
		return auth.ErrUserNotFound
	}
	u.Active = active
	s.byID[id] = u
	return nil
}

func (s *fakeUserStore) ListUsers(_ context.Context, role rbac.Role) ([]auth.User, error) {
	var out []auth.User
	for _, u := range s.byID {
		if role == "" || u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func TestAuthenticateNeverDistinguishesFailures(t *testing.T) {
	ctx := context.Background()
	hash, _ := auth.HashPassword("correct-horse")
	store := newFakeUserStore(auth.User{
		ID: "u-1", LoginCode: "E1234", Role: rbac.RoleEleve, PasswordHash: hash, Active: true,
	})

	if _, err := auth.Authenticate(ctx, store, "E1234", "correct-horse"); err != nil {
		t.Fatalf("valid credentials rejected: %v", err)
	}

	_, errUnknown := auth.Authenticate(ctx, store, "no-such-user", "correct-horse")
	_, errWrongPwd := auth.Authenticate(ctx, store, "E1234", "battery-staple")
	if !errors.Is(errUnknown, auth.ErrInvalidCredentials) || !errors.Is(errWrongPwd, auth.ErrInvalidCredentials) {
		t.Fatalf("both failure modes must collapse to ErrInvalidCredentials, got %v / %v", errUnknown, errWrongPwd)
	}
}

func TestAuthenticateRejectsInactive(t *testing.T) {
	ctx := context.Background()
	hash, _ := auth.HashPassword("correct-horse")
	store := newFakeUserStore(auth.User{
		ID: "u-1", LoginCode: "E1234", Role: rbac.RoleEleve, PasswordHash: hash, Active: false,
	})
	if _, err := auth.Authenticate(ctx, store, "E1234", "correct-horse"); !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Fatalf("inactive user must not authenticate, got %v", err)
	}
}

func TestCurrentUserRechecksActiveFlag(t *testing.T) {
	ctx := context.Background()
	sessions := newTestSessions(t)
	u := testUser()
	store := newFakeUserStore(u)

	tok, err := sessions.Issue(u)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, ok := auth.CurrentUser(ctx, sessions, store, tok); !ok {
		t.Fatal("active user with valid token must resolve")
	}

	// deactivation takes effect on the very next call, token untouched
	if err := store.SetActive(ctx, u.ID, false); err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	if _, ok := auth.CurrentUser(ctx, sessions, store, tok); ok {
		t.Fatal("deactivated user must not resolve even with an unexpired token")
	}
}

func TestCurrentUserRejectsInvalidToken(t *testing.T) {
	ctx := context.Background()
	sessions := newTestSessions(t)
	store := newFakeUserStore(testUser())
	if _, ok := auth.CurrentUser(ctx, sessions, store, "garbage"); ok {
		t.Fatal("invalid token must not resolve a user")
	}
}
