package service

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/venuehub/backend/internal/config"
	"github.com/venuehub/backend/internal/db"
	"github.com/venuehub/backend/internal/model"
	"golang.org/x/crypto/bcrypt"
)

const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

var (
	// ErrBadCredentials covers unknown username, disabled account and
	// wrong password alike; callers must not be able to tell which.
	ErrBadCredentials = errors.New("bad credentials")

	ErrUsernameTaken        = errors.New("username is already taken")
	ErrEmailTaken           = errors.New("email is already in use")
	ErrRoleNotFound         = errors.New("role not found")
	ErrRefreshTokenNotFound = errors.New("refresh token is not in database")
	ErrRefreshTokenExpired  = errors.New("refresh token was expired")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrMisconfigured        = errors.New("auth config invalid")
)

type userStore interface {
	CreateUser(ctx context.Context, username, email, passwordHash string, roleIDs []int64) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, userID int64) (*model.User, error)
	GetUserRoles(ctx context.Context, userID int64) ([]string, error)
}

type roleStore interface {
	GetRoleByName(ctx context.Context, name string) (*model.Role, error)
}

type refreshTokenStore interface {
	UpsertRefreshToken(ctx context.Context, userID int64, tokenHash string, expiresAt time.Time) error
	GetRefreshTokenByHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error)
	DeleteRefreshTokenByHash(ctx context.Context, tokenHash string) error
	DeleteRefreshTokenByUser(ctx context.Context, userID int64) error
}

type authStore interface {
	userStore
	roleStore
	refreshTokenStore
}

type AuthService struct {
	store      authStore
	signer     *TokenSigner
	refreshTTL time.Duration
	now        func() time.Time
}

func NewAuthService(store authStore, signer *TokenSigner, refreshTTL time.Duration) *AuthService {
	return &AuthService{
		store:      store,
		signer:     signer,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

func NewAuthServiceFromConfig(store authStore, cfg config.AuthConfig) (*AuthService, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("%w: JWT_SECRET is required", ErrMisconfigured)
	}

	accessTTL, err := time.ParseDuration(cfg.JWTAccessTTL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid JWT_ACCESS_TTL", ErrMisconfigured)
	}

	refreshTTL, err := time.ParseDuration(cfg.JWTRefreshTTL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid JWT_REFRESH_TTL", ErrMisconfigured)
	}

	return NewAuthService(store, NewTokenSigner(cfg.JWTSecret, accessTTL), refreshTTL), nil
}

// EnsureAdmin creates the bootstrap admin account if it does not exist.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, email, password string) error {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return fmt.Errorf("%w: ADMIN_USERNAME/ADMIN_EMAIL/ADMIN_PASSWORD are required", ErrMisconfigured)
	}

	_, err := s.store.GetUserByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !db.IsNoRows(err) {
		return err
	}

	roleIDs, err := s.resolveRoleNames(ctx, []string{"admin", "user"})
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = s.store.CreateUser(ctx, username, email, string(hash), roleIDs)
	return err
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*model.JwtResponse, error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrBadCredentials
		}
		return nil, err
	}

	if !user.Enabled {
		return nil, ErrBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrBadCredentials
	}

	roles, err := s.store.GetUserRoles(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	accessToken, expiresIn, err := s.signer.Issue(user.Username)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.rotateRefreshToken(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &model.JwtResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    expiresIn,
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		Roles:        roles,
	}, nil
}

func (s *AuthService) Register(ctx context.Context, req model.SignupRequest) (*model.User, error) {
	if _, err := s.store.GetUserByUsername(ctx, req.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !db.IsNoRows(err) {
		return nil, err
	}
	if _, err := s.store.GetUserByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !db.IsNoRows(err) {
		return nil, err
	}

	roleIDs, err := s.resolveRoleNames(ctx, req.Roles)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := s.store.CreateUser(ctx, req.Username, req.Email, string(hash), roleIDs)
	if err != nil {
		// Pre-checks race against concurrent signups; the unique
		// constraints are the source of truth.
		if db.IsUniqueViolation(err, "users_username_key") {
			return nil, ErrUsernameTaken
		}
		if db.IsUniqueViolation(err, "users_email_key") {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

// resolveRoleNames maps the requested names through the fixed vocabulary.
// An empty request gets the default ROLE_USER; anything outside the
// vocabulary, or a missing seed role, is ErrRoleNotFound.
func (s *AuthService) resolveRoleNames(ctx context.Context, names []string) ([]int64, error) {
	if len(names) == 0 {
		names = []string{"user"}
	}

	seen := make(map[int64]struct{}, len(names))
	var roleIDs []int64
	for _, name := range names {
		var roleName string
		switch strings.ToLower(name) {
		case "admin":
			roleName = RoleAdmin
		case "user":
			roleName = RoleUser
		default:
			return nil, fmt.Errorf("%w: %s", ErrRoleNotFound, name)
		}

		role, err := s.store.GetRoleByName(ctx, roleName)
		if err != nil {
			if db.IsNoRows(err) {
				return nil, fmt.Errorf("%w: %s", ErrRoleNotFound, roleName)
			}
			return nil, err
		}
		if _, dup := seen[role.ID]; !dup {
			seen[role.ID] = struct{}{}
			roleIDs = append(roleIDs, role.ID)
		}
	}
	return roleIDs, nil
}

// Refresh exchanges a live refresh token for a new access token. The
// refresh token itself is deliberately not rotated here; only a full
// signin replaces it. Expired rows are deleted on detection.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*model.TokenRefreshResponse, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, ErrRefreshTokenNotFound
	}

	hash := hashRefreshToken(refreshToken)
	record, err := s.store.GetRefreshTokenByHash(ctx, hash)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrRefreshTokenNotFound
		}
		return nil, err
	}

	if !record.ExpiresAt.After(s.now()) {
		if err := s.store.DeleteRefreshTokenByHash(ctx, hash); err != nil {
			return nil, err
		}
		return nil, ErrRefreshTokenExpired
	}

	user, err := s.store.GetUserByID(ctx, record.UserID)
	if err != nil {
		return nil, err
	}

	accessToken, expiresIn, err := s.signer.Issue(user.Username)
	if err != nil {
		return nil, err
	}

	return &model.TokenRefreshResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    expiresIn,
	}, nil
}

func (s *AuthService) Logout(ctx context.Context, userID int64) error {
	return s.store.DeleteRefreshTokenByUser(ctx, userID)
}

// VerifyAccessToken checks signature and expiry only; no store lookup.
func (s *AuthService) VerifyAccessToken(token string) (string, error) {
	return s.signer.Verify(token)
}

// ResolveUser loads the subject's current record and role set. The gate
// calls this on every protected request, so role changes and account
// disabling take effect immediately even for live access tokens.
func (s *AuthService) ResolveUser(ctx context.Context, username string) (*model.AuthUser, error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	if !user.Enabled {
		return nil, ErrUnauthorized
	}

	roles, err := s.store.GetUserRoles(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &model.AuthUser{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Roles:    roles,
	}, nil
}

// rotateRefreshToken replaces the user's refresh-token row in place,
// leaving exactly one row whatever the prior state.
func (s *AuthService) rotateRefreshToken(ctx context.Context, userID int64) (string, error) {
	token := uuid.NewString()
	expiresAt := s.now().Add(s.refreshTTL)
	if err := s.store.UpsertRefreshToken(ctx, userID, hashRefreshToken(token), expiresAt); err != nil {
		return "", err
	}
	return token, nil
}

// Only the hash ever reaches storage; a leaked table does not leak
// usable refresh tokens.
func hashRefreshToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
