package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cms-system/internal/entities"
	"cms-system/pkg/types"
)

// fakeCacheRepo - кеш в памяти вместо Redis.
type fakeCacheRepo struct {
	store    map[string]string
	getErr   error
	setCalls int
	delCalls int
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{store: make(map[string]string)}
}

func (f *fakeCacheRepo) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	f.setCalls++
	f.store[key] = fmt.Sprintf("%v", value)
	return nil
}

func (f *fakeCacheRepo) Get(ctx context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	v, ok := f.store[key]
	if !ok {
		return "", fmt.Errorf("ключ не найден: %s", key)
	}
	return v, nil
}

func (f *fakeCacheRepo) Del(ctx context.Context, key ...string) error {
	f.delCalls++
	for _, k := range key {
		delete(f.store, k)
	}
	return nil
}

func (f *fakeCacheRepo) Incr(ctx context.Context, key string) (int64, error) { return 1, nil }

func (f *fakeCacheRepo) Expire(ctx context.Context, key string, expiration time.Duration) (bool, error) {
	return true, nil
}

// fakePermissionRepo отдаёт фиксированный набор привилегий и считает обращения к "БД".
type fakePermissionRepo struct {
	byRole  map[uint64][]string
	dbCalls int
	dbErr   error
}

func (f *fakePermissionRepo) GetPermissionsNamesByRoleID(ctx context.Context, roleID uint64) ([]string, error) {
	f.dbCalls++
	if f.dbErr != nil {
		return nil, f.dbErr
	}
	return f.byRole[roleID], nil
}

func (f *fakePermissionRepo) GetPermissions(ctx context.Context, filter types.Filter) ([]entities.Permission, uint64, error) {
	return nil, 0, nil
}

func (f *fakePermissionRepo) FindPermissionByID(ctx context.Context, id uint64) (*entities.Permission, error) {
	return nil, nil
}

func (f *fakePermissionRepo) CreatePermission(ctx context.Context, permission entities.Permission) (uint64, error) {
	return 0, nil
}

func (f *fakePermissionRepo) UpdatePermission(ctx context.Context, id uint64, permission entities.Permission) error {
	return nil
}

func (f *fakePermissionRepo) DeletePermission(ctx context.Context, id uint64) error { return nil }

func (f *fakePermissionRepo) GetUserPermissionsNames(ctx context.Context, userID uint64) ([]string, error) {
	return nil, nil
}

func TestGetRolePermissionsNames_CacheMissThenHit(t *testing.T) {
	cache := newFakeCacheRepo()
	repo := &fakePermissionRepo{byRole: map[uint64][]string{
		2: {"pages:view", "pages:create"},
	}}
	svc := NewAuthPermissionService(repo, cache, zap.NewNop(), 15*time.Minute)

	// Первый вызов: кеш пуст, идём в БД и кешируем
	perms, err := svc.GetRolePermissionsNames(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"pages:view", "pages:create"}, perms)
	assert.Equal(t, 1, repo.dbCalls)
	assert.Equal(t, 1, cache.setCalls)

	// Второй вызов: читаем из кеша, БД не трогаем
	perms, err = svc.GetRolePermissionsNames(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"pages:view", "pages:create"}, perms)
	assert.Equal(t, 1, repo.dbCalls, "повторный вызов должен обслуживаться из кеша")
}

func TestGetRolePermissionsNames_CorruptCacheFallsBackToDB(t *testing.T) {
	cache := newFakeCacheRepo()
	cache.store[rolePermissionsCacheKey(2)] = "{не json"

	repo := &fakePermissionRepo{byRole: map[uint64][]string{
		2: {"pages:view"},
	}}
	svc := NewAuthPermissionService(repo, cache, zap.NewNop(), 15*time.Minute)

	perms, err := svc.GetRolePermissionsNames(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"pages:view"}, perms)
	assert.Equal(t, 1, repo.dbCalls)
}

func TestGetRolePermissionsNames_DBError(t *testing.T) {
	cache := newFakeCacheRepo()
	repo := &fakePermissionRepo{dbErr: fmt.Errorf("соединение потеряно")}
	svc := NewAuthPermissionService(repo, cache, zap.NewNop(), 15*time.Minute)

	_, err := svc.GetRolePermissionsNames(context.Background(), 2)
	assert.Error(t, err)
}

func TestGetRolePermissionsNames_EmptySetNotCached(t *testing.T) {
	cache := newFakeCacheRepo()
	repo := &fakePermissionRepo{byRole: map[uint64][]string{}}
	svc := NewAuthPermissionService(repo, cache, zap.NewNop(), 15*time.Minute)

	perms, err := svc.GetRolePermissionsNames(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, perms)
	assert.Zero(t, cache.setCalls, "пустой набор привилегий не кешируется")
}

func TestInvalidateRolePermissionsCache(t *testing.T) {
	cache := newFakeCacheRepo()
	repo := &fakePermissionRepo{byRole: map[uint64][]string{
		2: {"pages:view"},
	}}
	svc := NewAuthPermissionService(repo, cache, zap.NewNop(), 15*time.Minute)

	_, err := svc.GetRolePermissionsNames(context.Background(), 2)
	require.NoError(t, err)
	require.Equal(t, 1, repo.dbCalls)

	require.NoError(t, svc.InvalidateRolePermissionsCache(context.Background(), 2))
	assert.Equal(t, 1, cache.delCalls)

	// После инвалидации снова идём в БД
	_, err = svc.GetRolePermissionsNames(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.dbCalls)
}
