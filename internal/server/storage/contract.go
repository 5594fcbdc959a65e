package storage

import (
	"context"

	"github.com/iudanet/activator/internal/models"
)

// ContractStorage defines interface for device-token bindings
type ContractStorage interface {
	// GetContractByToken retrieves contract bound to the sold token key
	// Returns ErrContractNotFound if no contract exists
	GetContractByToken(ctx context.Context, key string) (*models.Contract, error)

	// GetContractByDevice retrieves contract bound to the device
	// Returns ErrContractNotFound if no contract exists
	GetContractByDevice(ctx context.Context, deviceID string) (*models.Contract, error)

	// CreateContract stores a new binding
	// Returns ErrDuplicateBinding if device or token already has a contract
	CreateContract(ctx context.Context, contract *models.Contract) error
}
