package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"

	"github.com/iudanet/activator/internal/client/storage"
)

var (
	deviceIDKey   = []byte("id")
	credentialKey = []byte("current")
)

// DeviceID returns the persisted device id, generating a random UUID on first use
func (s *Storage) DeviceID(ctx context.Context) (string, error) {
	var id string

	err := s.update(bucketDevice, func(b *bbolt.Bucket) error {
		if existing := b.Get(deviceIDKey); existing != nil {
			id = string(existing)
			return nil
		}

		id = uuid.NewString()
		if err := b.Put(deviceIDKey, []byte(id)); err != nil {
			return fmt.Errorf("failed to save device id: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return id, nil
}

// SaveCredential stores the credential, replacing the previous one
func (s *Storage) SaveCredential(ctx context.Context, cred *storage.Credential) error {
	data, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("failed to marshal credential: %w", err)
	}

	return s.update(bucketCredential, func(b *bbolt.Bucket) error {
		if err := b.Put(credentialKey, data); err != nil {
			return fmt.Errorf("failed to save credential: %w", err)
		}
		return nil
	})
}

// GetCredential retrieves the stored credential
func (s *Storage) GetCredential(ctx context.Context) (*storage.Credential, error) {
	var cred *storage.Credential

	err := s.view(bucketCredential, func(b *bbolt.Bucket) error {
		data := b.Get(credentialKey)
		if data == nil {
			return storage.ErrCredentialNotFound
		}

		cred = &storage.Credential{}
		if err := json.Unmarshal(data, cred); err != nil {
			return fmt.Errorf("failed to unmarshal credential: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return cred, nil
}

// DeleteCredential removes the stored credential
func (s *Storage) DeleteCredential(ctx context.Context) error {
	return s.update(bucketCredential, func(b *bbolt.Bucket) error {
		if b.Get(credentialKey) == nil {
			return storage.ErrCredentialNotFound
		}
		if err := b.Delete(credentialKey); err != nil {
			return fmt.Errorf("failed to delete credential: %w", err)
		}
		return nil
	})
}
