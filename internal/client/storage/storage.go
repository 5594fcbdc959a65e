// Package storage описывает локальное хранилище клиента устройства.
package storage

import (
	"context"
	"time"
)

// DeviceStorage хранит идентификатор устройства и последний credential
type DeviceStorage interface {
	// DeviceID returns the persisted device id, generating and saving a new
	// one on first use. The id never changes afterwards.
	DeviceID(ctx context.Context) (string, error)

	// SaveCredential replaces the stored credential
	SaveCredential(ctx context.Context, cred *Credential) error

	// GetCredential returns the stored credential
	// Returns ErrCredentialNotFound if nothing is stored
	GetCredential(ctx context.Context) (*Credential, error)

	// DeleteCredential removes the stored credential
	DeleteCredential(ctx context.Context) error
}

// Credential представляет сохраненный credential устройства
type Credential struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"` // unix seconds, 0 если неизвестно
}

// Expired сообщает, истек ли credential к моменту now
func (c *Credential) Expired(now time.Time) bool {
	return c.ExpiresAt != 0 && now.Unix() >= c.ExpiresAt
}
