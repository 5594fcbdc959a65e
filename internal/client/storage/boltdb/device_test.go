package boltdb

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/activator/internal/client/storage"
)

func setupTestStorage(t *testing.T) (*Storage, string) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "client.db")
	store, err := New(context.Background(), dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store, dbPath
}

func TestDeviceID_StableAcrossReopen(t *testing.T) {
	ctx := context.Background()
	store, dbPath := setupTestStorage(t)

	id, err := store.DeviceID(ctx)
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	require.NoError(t, err, "device id should be a UUID")

	again, err := store.DeviceID(ctx)
	require.NoError(t, err)
	assert.Equal(t, id, again)

	// После переоткрытия файла идентификатор сохраняется
	require.NoError(t, store.Close())
	reopened, err := New(ctx, dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	persisted, err := reopened.DeviceID(ctx)
	require.NoError(t, err)
	assert.Equal(t, id, persisted)
}

func TestCredential_SaveGetDelete(t *testing.T) {
	ctx := context.Background()
	store, _ := setupTestStorage(t)

	_, err := store.GetCredential(ctx)
	assert.ErrorIs(t, err, storage.ErrCredentialNotFound)

	expiresAt := time.Now().Add(time.Hour).Unix()
	require.NoError(t, store.SaveCredential(ctx, &storage.Credential{Token: "first", ExpiresAt: expiresAt}))
	require.NoError(t, store.SaveCredential(ctx, &storage.Credential{Token: "second", ExpiresAt: expiresAt}))

	cred, err := store.GetCredential(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", cred.Token)
	assert.Equal(t, expiresAt, cred.ExpiresAt)

	require.NoError(t, store.DeleteCredential(ctx))
	_, err = store.GetCredential(ctx)
	assert.ErrorIs(t, err, storage.ErrCredentialNotFound)

	assert.ErrorIs(t, store.DeleteCredential(ctx), storage.ErrCredentialNotFound)
}

func TestCredential_Expired(t *testing.T) {
	now := time.Unix(1000, 0)

	assert.False(t, (&storage.Credential{ExpiresAt: 0}).Expired(now), "unknown expiry is not expired")
	assert.False(t, (&storage.Credential{ExpiresAt: 1001}).Expired(now))
	assert.True(t, (&storage.Credential{ExpiresAt: 1000}).Expired(now))
}
