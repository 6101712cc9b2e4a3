package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cms-system/internal/entities"
	apperrors "cms-system/pkg/errors"
	"cms-system/pkg/types"
)

type fakeUserRepo struct {
	user    *entities.User
	roleIDs []uint64
	findErr error
}

func (f *fakeUserRepo) FindUserByID(ctx context.Context, id uint64) (*entities.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.user, nil
}

func (f *fakeUserRepo) GetUserRoleIDs(ctx context.Context, userID uint64) ([]uint64, error) {
	return f.roleIDs, nil
}

func (f *fakeUserRepo) GetUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error) {
	return nil, 0, nil
}

func (f *fakeUserRepo) FindUserByEmailOrLogin(ctx context.Context, login string) (*entities.User, error) {
	return nil, apperrors.ErrNotFound
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user entities.User, roleIDs []uint64) (uint64, error) {
	return 0, nil
}

func (f *fakeUserRepo) UpdateUser(ctx context.Context, id uint64, user entities.User, roleIDs []uint64) error {
	return nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id uint64, hashedPassword string) error {
	return nil
}

func (f *fakeUserRepo) DeleteUser(ctx context.Context, id uint64) error { return nil }

func (f *fakeUserRepo) GetUserRolesNames(ctx context.Context, userID uint64) ([]string, error) {
	return f.user.Roles, nil
}

type fakePermissionsSvc struct {
	byRole map[uint64][]string
}

func (f *fakePermissionsSvc) GetRolePermissionsNames(ctx context.Context, roleID uint64) ([]string, error) {
	return f.byRole[roleID], nil
}

func (f *fakePermissionsSvc) InvalidateRolePermissionsCache(ctx context.Context, roleID uint64) error {
	return nil
}

func TestLoadUserClaims_UnionsRolePermissions(t *testing.T) {
	repo := &fakeUserRepo{
		user: &entities.User{
			ID:       42,
			Username: "editor1",
			IsActive: true,
			Roles:    []string{"editor", "viewer"},
		},
		roleIDs: []uint64{2, 3},
	}
	permsSvc := &fakePermissionsSvc{byRole: map[uint64][]string{
		2: {"pages:view", "pages:create"},
		3: {"pages:view", "blocks:view"},
	}}

	svc := NewIdentityService(repo, permsSvc, zap.NewNop())

	claims, err := svc.LoadUserClaims(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.UserID)
	assert.Equal(t, "editor1", claims.Username)
	assert.Equal(t, []string{"editor", "viewer"}, claims.Roles)
	// Привилегии по ролям объединяются без дублей
	assert.ElementsMatch(t, []string{"pages:view", "pages:create", "blocks:view"}, claims.Permissions)
}

func TestLoadUserClaims_UnknownUser(t *testing.T) {
	repo := &fakeUserRepo{findErr: apperrors.ErrNotFound}
	svc := NewIdentityService(repo, &fakePermissionsSvc{}, zap.NewNop())

	_, err := svc.LoadUserClaims(context.Background(), 99)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestLoadUserClaims_InactiveUser(t *testing.T) {
	repo := &fakeUserRepo{
		user: &entities.User{ID: 42, Username: "editor1", IsActive: false},
	}
	svc := NewIdentityService(repo, &fakePermissionsSvc{}, zap.NewNop())

	_, err := svc.LoadUserClaims(context.Background(), 42)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}
