package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/venuehub/backend/internal/model"
	"golang.org/x/crypto/bcrypt"
)

type fakeAuthStore struct {
	users  []*model.User
	roles  map[string]int64
	grants map[int64][]string
	tokens map[int64]*model.RefreshToken
	nextID int64
}

func newFakeAuthStore() *fakeAuthStore {
	return &fakeAuthStore{
		roles:  map[string]int64{RoleUser: 1, RoleAdmin: 2},
		grants: map[int64][]string{},
		tokens: map[int64]*model.RefreshToken{},
	}
}

func (f *fakeAuthStore) CreateUser(ctx context.Context, username, email, passwordHash string, roleIDs []int64) (*model.User, error) {
	f.nextID++
	user := &model.User{ID: f.nextID, Username: username, Email: email, PasswordHash: passwordHash, Enabled: true}
	f.users = append(f.users, user)
	for _, id := range roleIDs {
		for name, roleID := range f.roles {
			if roleID == id {
				f.grants[user.ID] = append(f.grants[user.ID], name)
			}
		}
	}
	return user, nil
}

func (f *fakeAuthStore) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeAuthStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeAuthStore) GetUserByID(ctx context.Context, userID int64) (*model.User, error) {
	for _, u := range f.users {
		if u.ID == userID {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeAuthStore) GetUserRoles(ctx context.Context, userID int64) ([]string, error) {
	return f.grants[userID], nil
}

func (f *fakeAuthStore) GetRoleByName(ctx context.Context, name string) (*model.Role, error) {
	if id, ok := f.roles[name]; ok {
		return &model.Role{ID: id, Name: name}, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeAuthStore) UpsertRefreshToken(ctx context.Context, userID int64, tokenHash string, expiresAt time.Time) error {
	f.tokens[userID] = &model.RefreshToken{UserID: userID, TokenHash: tokenHash, ExpiresAt: expiresAt}
	return nil
}

func (f *fakeAuthStore) GetRefreshTokenByHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
	for _, rt := range f.tokens {
		if rt.TokenHash == tokenHash {
			return rt, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeAuthStore) DeleteRefreshTokenByHash(ctx context.Context, tokenHash string) error {
	for userID, rt := range f.tokens {
		if rt.TokenHash == tokenHash {
			delete(f.tokens, userID)
		}
	}
	return nil
}

func (f *fakeAuthStore) DeleteRefreshTokenByUser(ctx context.Context, userID int64) error {
	delete(f.tokens, userID)
	return nil
}

func newTestAuthService(store authStore) *AuthService {
	return NewAuthService(store, NewTokenSigner("test-secret", 15*time.Minute), 24*time.Hour)
}

func registerTestUser(t *testing.T, svc *AuthService, username string, roles ...string) *model.User {
	t.Helper()
	user, err := svc.Register(context.Background(), model.SignupRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
		Roles:    roles,
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	return user
}

func TestRegisterDefaultsToUserRole(t *testing.T) {
	store := newFakeAuthStore()
	svc := newTestAuthService(store)

	user := registerTestUser(t, svc, "alice")

	roles := store.grants[user.ID]
	if len(roles) != 1 || roles[0] != RoleUser {
		t.Fatalf("expected [ROLE_USER], got %v", roles)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")); err != nil {
		t.Fatalf("stored password is not a bcrypt hash of the input: %v", err)
	}
	if user.PasswordHash == "password123" {
		t.Fatal("password stored in plain text")
	}
}

func TestRegisterDuplicates(t *testing.T) {
	store := newFakeAuthStore()
	svc := newTestAuthService(store)
	registerTestUser(t, svc, "alice")

	_, err := svc.Register(context.Background(), model.SignupRequest{
		Username: "alice", Email: "other@example.com", Password: "password123",
	})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}

	_, err = svc.Register(context.Background(), model.SignupRequest{
		Username: "bob", Email: "alice@example.com", Password: "password123",
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegisterUnknownRole(t *testing.T) {
	store := newFakeAuthStore()
	svc := newTestAuthService(store)

	_, err := svc.Register(context.Background(), model.SignupRequest{
		Username: "alice", Email: "alice@example.com", Password: "password123",
		Roles: []string{"superuser"},
	})
	if !errors.Is(err, ErrRoleNotFound) {
		t.Fatalf("expected ErrRoleNotFound, got %v", err)
	}
}

func TestRegisterAdminRole(t *testing.T) {
	store := newFakeAuthStore()
	svc := newTestAuthService(store)

	user := registerTestUser(t, svc, "root", "admin", "user")

	roles := store.grants[user.ID]
	if len(roles) != 2 {
		t.Fatalf("expected two roles, got %v", roles)
	}
}

func TestLoginIssuesTokens(t *testing.T) {
	store := newFakeAuthStore()
	svc := newTestAuthService(store)
	registerTestUser(t, svc, "alice")

	resp, err := svc.Login(context.Background(), "alice", "password123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" || resp.TokenType != "Bearer" {
		t.Fatalf("unexpected response: %+v", resp)
	}

	subject, err := svc.VerifyAccessToken(resp.AccessToken)
	if err != nil || subject != "alice" {
		t.Fatalf("expected subject alice, got %q (%v)", subject, err)
	}

	if len(store.tokens) != 1 {
		t.Fatalf("expected one refresh token row, got %d", len(store.tokens))
	}
	stored := store.tokens[resp.ID]
	if stored.TokenHash == resp.RefreshToken {
		t.Fatal("refresh token stored unhashed")
	}
}

func TestLoginBadCredentials(t *testing.T) {
	store := newFakeAuthStore()
	svc := newTestAuthService(store)
	user := registerTestUser(t, svc, "alice")

	if _, err := svc.Login(context.Background(), "alice", "wrong-password"); !errors.Is(err, ErrBadCredentials) {
		t.Fatalf("wrong password: expected ErrBadCredentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "nobody", "password123"); !errors.Is(err, ErrBadCredentials) {
		t.Fatalf("unknown user: expected ErrBadCredentials, got %v", err)
	}

	user.Enabled = false
	if _, err := svc.Login(context.Background(), "alice", "password123"); !errors.Is(err, ErrBadCredentials) {
		t.Fatalf("disabled user: expected ErrBadCredentials, got %v", err)
	}
}

func TestLoginRotatesRefreshToken(t *testing.T) {
	store := newFakeAuthStore()
	svc := newTestAuthService(store)
	registerTestUser(t, svc, "alice")

	first, err := svc.Login(context.Background(), "alice", "password123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	second, err := svc.Login(context.Background(), "alice", "password123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if first.RefreshToken == second.RefreshToken {
		t.Fatal("refresh token was not rotated on signin")
	}
	if len(store.tokens) != 1 {
		t.Fatalf("expected one refresh token row after rotation, got %d", len(store.tokens))
	}

	// The first token's row was replaced; it must no longer refresh.
	if _, err := svc.Refresh(context.Background(), first.RefreshToken); !errors.Is(err, ErrRefreshTokenNotFound) {
		t.Fatalf("expected ErrRefreshTokenNotFound for rotated-out token, got %v", err)
	}
}

func TestRefresh(t *testing.T) {
	store := newFakeAuthStore()
	svc := newTestAuthService(store)
	registerTestUser(t, svc, "alice")

	login, err := svc.Login(context.Background(), "alice", "password123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	resp, err := svc.Refresh(context.Background(), login.RefreshToken)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if resp.RefreshToken != login.RefreshToken {
		t.Fatal("refresh must return the same refresh token")
	}
	subject, err := svc.VerifyAccessToken(resp.AccessToken)
	if err != nil || subject != "alice" {
		t.Fatalf("expected subject alice, got %q (%v)", subject, err)
	}
}

func TestRefreshUnknownToken(t *testing.T) {
	svc := newTestAuthService(newFakeAuthStore())
	if _, err := svc.Refresh(context.Background(), "no-such-token"); !errors.Is(err, ErrRefreshTokenNotFound) {
		t.Fatalf("expected ErrRefreshTokenNotFound, got %v", err)
	}
}

func TestRefreshExpiredDeletesRow(t *testing.T) {
	store := newFakeAuthStore()
	svc := newTestAuthService(store)
	registerTestUser(t, svc, "alice")

	login, err := svc.Login(context.Background(), "alice", "password123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	svc.now = func() time.Time { return time.Now().Add(25 * time.Hour) }
	if _, err := svc.Refresh(context.Background(), login.RefreshToken); !errors.Is(err, ErrRefreshTokenExpired) {
		t.Fatalf("expected ErrRefreshTokenExpired, got %v", err)
	}
	if len(store.tokens) != 0 {
		t.Fatal("expired refresh token row was not deleted")
	}
}

func TestLogoutDeletesRefreshToken(t *testing.T) {
	store := newFakeAuthStore()
	svc := newTestAuthService(store)
	registerTestUser(t, svc, "alice")

	login, err := svc.Login(context.Background(), "alice", "password123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if err := svc.Logout(context.Background(), login.ID); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := svc.Refresh(context.Background(), login.RefreshToken); !errors.Is(err, ErrRefreshTokenNotFound) {
		t.Fatalf("expected ErrRefreshTokenNotFound after logout, got %v", err)
	}
}

func TestResolveUser(t *testing.T) {
	store := newFakeAuthStore()
	svc := newTestAuthService(store)
	user := registerTestUser(t, svc, "alice")

	authUser, err := svc.ResolveUser(context.Background(), "alice")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if !authUser.HasRole(RoleUser) || authUser.HasRole(RoleAdmin) {
		t.Fatalf("unexpected roles: %v", authUser.Roles)
	}

	user.Enabled = false
	if _, err := svc.ResolveUser(context.Background(), "alice"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for disabled user, got %v", err)
	}
}

func TestEnsureAdminIdempotent(t *testing.T) {
	store := newFakeAuthStore()
	svc := newTestAuthService(store)

	if err := svc.EnsureAdmin(context.Background(), "root", "root@example.com", "rootpassword"); err != nil {
		t.Fatalf("ensure admin failed: %v", err)
	}
	if err := svc.EnsureAdmin(context.Background(), "root", "root@example.com", "rootpassword"); err != nil {
		t.Fatalf("second ensure admin failed: %v", err)
	}
	if len(store.users) != 1 {
		t.Fatalf("expected one user, got %d", len(store.users))
	}
	roles := store.grants[store.users[0].ID]
	if len(roles) != 2 {
		t.Fatalf("expected admin and user roles, got %v", roles)
	}
}
