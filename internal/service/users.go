package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/venuehub/backend/internal/db"
	"github.com/venuehub/backend/internal/model"
)

var ErrUserNotFound = errors.New("user not found")

// UserAdminService backs the admin-only user management endpoints.
type UserAdminService struct {
	repo *db.Postgres
}

func NewUserAdminService(repo *db.Postgres) *UserAdminService {
	return &UserAdminService{repo: repo}
}

func (s *UserAdminService) ListUsers(ctx context.Context) ([]model.UserAdminView, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]model.UserAdminView, 0, len(users))
	for _, user := range users {
		roles, err := s.repo.GetUserRoles(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		views = append(views, adminView(user, roles))
	}
	return views, nil
}

func (s *UserAdminService) GetUser(ctx context.Context, userID int64) (*model.UserAdminView, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	roles, err := s.repo.GetUserRoles(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	view := adminView(*user, roles)
	return &view, nil
}

// UpdateUserRoles replaces the user's role set. Role names are the stored
// names (ROLE_USER, ROLE_ADMIN, ...), not the signup vocabulary.
func (s *UserAdminService) UpdateUserRoles(ctx context.Context, userID int64, roleNames []string) (*model.UserAdminView, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	seen := make(map[int64]struct{}, len(roleNames))
	var roleIDs []int64
	for _, name := range roleNames {
		role, err := s.repo.GetRoleByName(ctx, name)
		if err != nil {
			if db.IsNoRows(err) {
				return nil, fmt.Errorf("%w: %s", ErrRoleNotFound, name)
			}
			return nil, err
		}
		if _, dup := seen[role.ID]; !dup {
			seen[role.ID] = struct{}{}
			roleIDs = append(roleIDs, role.ID)
		}
	}

	if err := s.repo.ReplaceUserRoles(ctx, user.ID, roleIDs); err != nil {
		return nil, err
	}
	return s.GetUser(ctx, userID)
}

func adminView(user model.User, roles []string) model.UserAdminView {
	return model.UserAdminView{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Enabled:   user.Enabled,
		Roles:     roles,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
