package repositories

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cms-system/internal/entities"
	apperrors "cms-system/pkg/errors"
)

// Интеграционный тест поверх живой БД с применёнными миграциями.
// Без DATABASE_URL пропускается.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL не задан, интеграционный тест пропущен")
	}
	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func TestRoleRepository_RoundTrip(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()

	roleRepo := NewRoleRepository(pool, zap.NewNop())
	permRepo := NewPermissionRepository(pool, zap.NewNop())

	suffix := time.Now().UnixNano()
	roleName := fmt.Sprintf("it-role-%d", suffix)
	permName := fmt.Sprintf("it:perm-%d", suffix)

	permID, err := permRepo.CreatePermission(ctx, entities.Permission{Name: permName})
	require.NoError(t, err)
	t.Cleanup(func() { _ = permRepo.DeletePermission(ctx, permID) })

	roleID, err := roleRepo.CreateRole(ctx, entities.Role{Name: roleName}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = roleRepo.DeleteRole(ctx, roleID) })

	require.NoError(t, roleRepo.SetRolePermissions(ctx, roleID, []uint64{permID}))

	names, err := permRepo.GetPermissionsNamesByRoleID(ctx, roleID)
	require.NoError(t, err)
	assert.Contains(t, names, permName)

	role, err := roleRepo.FindRoleByID(ctx, roleID)
	require.NoError(t, err)
	assert.Equal(t, roleName, role.Name)

	// Полная замена набора на пустой
	require.NoError(t, roleRepo.SetRolePermissions(ctx, roleID, nil))
	names, err = permRepo.GetPermissionsNamesByRoleID(ctx, roleID)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestPageRepository_SoftDelete(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()

	userRepo := NewUserRepository(pool, zap.NewNop())
	pageRepo := NewPageRepository(pool, zap.NewNop())

	suffix := time.Now().UnixNano()
	authorID, err := userRepo.CreateUser(ctx, entities.User{
		Username: fmt.Sprintf("it-user-%d", suffix),
		Fio:      "Интеграционный автор",
		Email:    fmt.Sprintf("it-%d@example.com", suffix),
		Password: "hash",
		IsActive: true,
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = userRepo.DeleteUser(ctx, authorID) })

	slug := fmt.Sprintf("it-page-%d", suffix)
	pageID, err := pageRepo.CreatePage(ctx, entities.Page{
		Title:    "Интеграционная страница",
		Slug:     slug,
		Status:   entities.PageStatusDraft,
		AuthorID: authorID,
	})
	require.NoError(t, err)

	found, err := pageRepo.FindPageBySlug(ctx, slug)
	require.NoError(t, err)
	assert.Equal(t, pageID, found.ID)

	require.NoError(t, pageRepo.DeletePage(ctx, pageID))

	// Мягко удалённая страница не видна через выборки
	_, err = pageRepo.FindPageByID(ctx, pageID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = pageRepo.FindPageBySlug(ctx, slug)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
