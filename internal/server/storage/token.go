package storage

import (
	"context"

	"github.com/iudanet/activator/internal/models"
)

// TokenStorage defines interface for the sold token ledger
type TokenStorage interface {
	// GetSoldToken retrieves sold token by its normalized key
	// Returns ErrTokenNotFound if token doesn't exist
	GetSoldToken(ctx context.Context, key string) (*models.SoldToken, error)

	// ConsumeSoldToken marks an unconsumed token as consumed
	// Returns number of modified rows (0 if token is missing or already consumed)
	// Must be called inside the same transaction that creates the contract
	ConsumeSoldToken(ctx context.Context, key string) (int64, error)

	// SaveSoldToken inserts a provisioned token
	// Returns ErrTokenAlreadyExists if key is already in the ledger
	SaveSoldToken(ctx context.Context, token *models.SoldToken) error
}
