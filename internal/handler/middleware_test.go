package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/venuehub/backend/internal/model"
	"github.com/venuehub/backend/internal/service"
)

type authStoreFake struct {
	user  *model.User
	roles []string
}

func (f *authStoreFake) CreateUser(ctx context.Context, username, email, passwordHash string, roleIDs []int64) (*model.User, error) {
	return nil, pgx.ErrNoRows
}

func (f *authStoreFake) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	if f.user != nil && f.user.Username == username {
		return f.user, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *authStoreFake) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return nil, pgx.ErrNoRows
}

func (f *authStoreFake) GetUserByID(ctx context.Context, userID int64) (*model.User, error) {
	return nil, pgx.ErrNoRows
}

func (f *authStoreFake) GetUserRoles(ctx context.Context, userID int64) ([]string, error) {
	return f.roles, nil
}

func (f *authStoreFake) GetRoleByName(ctx context.Context, name string) (*model.Role, error) {
	return nil, pgx.ErrNoRows
}

func (f *authStoreFake) UpsertRefreshToken(ctx context.Context, userID int64, tokenHash string, expiresAt time.Time) error {
	return nil
}

func (f *authStoreFake) GetRefreshTokenByHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
	return nil, pgx.ErrNoRows
}

func (f *authStoreFake) DeleteRefreshTokenByHash(ctx context.Context, tokenHash string) error {
	return nil
}

func (f *authStoreFake) DeleteRefreshTokenByUser(ctx context.Context, userID int64) error {
	return nil
}

const testJWTSecret = "test-secret"

func newAuthTestRouter(store *authStoreFake) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewAuthService(store, service.NewTokenSigner(testJWTSecret, 15*time.Minute), time.Hour)

	ok := func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) }
	r := gin.New()
	r.GET("/api/venues", AuthMiddleware(svc), ok)
	r.POST("/api/venues", AuthMiddleware(svc), RequireRole(service.RoleAdmin), ok)
	return r
}

func issueTestToken(t *testing.T, subject string, ttl time.Duration) string {
	t.Helper()
	token, _, err := service.NewTokenSigner(testJWTSecret, ttl).Issue(subject)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	return token
}

func doAuthRequest(r *gin.Engine, method, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, "/api/venues", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	r := newAuthTestRouter(&authStoreFake{})
	if w := doAuthRequest(r, http.MethodGet, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuthMiddlewareBadToken(t *testing.T) {
	r := newAuthTestRouter(&authStoreFake{})
	if w := doAuthRequest(r, http.MethodGet, "garbage"); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuthMiddlewareExpiredToken(t *testing.T) {
	r := newAuthTestRouter(&authStoreFake{})
	token := issueTestToken(t, "alice", -time.Minute)

	w := doAuthRequest(r, http.MethodGet, token)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "token expired") {
		t.Fatalf("expected expiry error, got %s", w.Body.String())
	}
}

func TestAuthMiddlewareReaderAccess(t *testing.T) {
	store := &authStoreFake{
		user:  &model.User{ID: 1, Username: "alice", Enabled: true},
		roles: []string{service.RoleUser},
	}
	r := newAuthTestRouter(store)
	token := issueTestToken(t, "alice", 15*time.Minute)

	if w := doAuthRequest(r, http.MethodGet, token); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w := doAuthRequest(r, http.MethodPost, token); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for ROLE_USER mutation, got %d", w.Code)
	}
}

func TestAuthMiddlewareAdminAccess(t *testing.T) {
	store := &authStoreFake{
		user:  &model.User{ID: 1, Username: "root", Enabled: true},
		roles: []string{service.RoleUser, service.RoleAdmin},
	}
	r := newAuthTestRouter(store)
	token := issueTestToken(t, "root", 15*time.Minute)

	if w := doAuthRequest(r, http.MethodPost, token); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestAuthMiddlewareDisabledUser(t *testing.T) {
	store := &authStoreFake{
		user:  &model.User{ID: 1, Username: "alice", Enabled: false},
		roles: []string{service.RoleUser},
	}
	r := newAuthTestRouter(store)
	token := issueTestToken(t, "alice", 15*time.Minute)

	if w := doAuthRequest(r, http.MethodGet, token); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for disabled user, got %d", w.Code)
	}
}
