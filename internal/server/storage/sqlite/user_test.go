package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/activator/internal/models"
	"github.com/iudanet/activator/internal/server/storage"
)

func TestUserStorage_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	created := time.Date(2026, 4, 5, 6, 7, 8, 0, time.UTC)
	user := models.NewUser("dev-1", models.UserTypeShort, created)
	require.NoError(t, s.CreateUser(ctx, user))

	got, err := s.GetUser(ctx, "dev-1")
	require.NoError(t, err)
	assert.Equal(t, "dev-1", got.DeviceID)
	assert.Equal(t, "first name", got.FirstName)
	assert.Equal(t, "البلدية", got.Address)
	assert.Equal(t, models.UserTypeShort, got.UserType)
	assert.True(t, created.Equal(got.CreatedAt))
	assert.True(t, user.BirthDate.Equal(got.BirthDate))
}

func TestUserStorage_CreateDuplicate(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	require.NoError(t, s.CreateUser(ctx, models.NewUser("dev-1", models.UserTypeStandard, time.Now())))

	err := s.CreateUser(ctx, models.NewUser("dev-1", models.UserTypeShort, time.Now()))
	assert.ErrorIs(t, err, storage.ErrUserAlreadyExists)
}

func TestUserStorage_NotFound(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	tests := []struct {
		name string
		op   func() error
	}{
		{
			name: "get",
			op: func() error {
				_, err := s.GetUser(ctx, "missing")
				return err
			},
		},
		{
			name: "update",
			op: func() error {
				return s.UpdateUser(ctx, models.NewUser("missing", models.UserTypeStandard, time.Now()))
			},
		},
		{
			name: "delete",
			op: func() error {
				return s.DeleteUser(ctx, "missing")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.op(), storage.ErrUserNotFound)
		})
	}
}

func TestUserStorage_UpdateKeepsImmutableFields(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.CreateUser(ctx, models.NewUser("dev-1", models.UserTypeShort, created)))

	update := models.NewUser("dev-1", models.UserTypeStandard, time.Now())
	update.FirstName = "John"
	update.BirthDate = time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.UpdateUser(ctx, update))

	got, err := s.GetUser(ctx, "dev-1")
	require.NoError(t, err)
	assert.Equal(t, "John", got.FirstName)
	assert.True(t, update.BirthDate.Equal(got.BirthDate))
	// Тип и время создания не меняются при обновлении
	assert.Equal(t, models.UserTypeShort, got.UserType)
	assert.True(t, created.Equal(got.CreatedAt))
}

func TestUserStorage_Delete(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	require.NoError(t, s.CreateUser(ctx, models.NewUser("dev-1", models.UserTypeStandard, time.Now())))
	require.NoError(t, s.DeleteUser(ctx, "dev-1"))

	_, err := s.GetUser(ctx, "dev-1")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}

func TestArchiveStorage_SaveGetDelete(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	user := models.NewUser("dev-1", models.UserTypeStandard, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	user.FirstName = "John"
	archivedAt := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.SaveArchivedUser(ctx, user.Archive(archivedAt)))

	got, err := s.GetArchivedUser(ctx, "dev-1")
	require.NoError(t, err)
	assert.Equal(t, "John", got.FirstName)
	assert.Equal(t, models.UserTypeStandard, got.UserType)
	assert.True(t, archivedAt.Equal(got.ArchivedAt))

	require.NoError(t, s.DeleteArchivedUser(ctx, "dev-1"))

	_, err = s.GetArchivedUser(ctx, "dev-1")
	assert.ErrorIs(t, err, storage.ErrArchiveNotFound)

	err = s.DeleteArchivedUser(ctx, "dev-1")
	assert.ErrorIs(t, err, storage.ErrArchiveNotFound)
}

func TestArchiveStorage_SaveReplacesStaleArchive(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	first := models.NewUser("dev-1", models.UserTypeStandard, time.Now())
	first.FirstName = "old"
	require.NoError(t, s.SaveArchivedUser(ctx, first.Archive(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))))

	second := models.NewUser("dev-1", models.UserTypeStandard, time.Now())
	second.FirstName = "new"
	latest := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.SaveArchivedUser(ctx, second.Archive(latest)))

	got, err := s.GetArchivedUser(ctx, "dev-1")
	require.NoError(t, err)
	assert.Equal(t, "new", got.FirstName)
	assert.True(t, latest.Equal(got.ArchivedAt))
}
