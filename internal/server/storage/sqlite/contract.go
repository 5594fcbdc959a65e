package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iudanet/activator/internal/models"
	"github.com/iudanet/activator/internal/server/storage"
)

const contractColumns = `device_id, sold_token_key, start_date, expiring_date, deleted, deletion_date`

// GetContractByToken retrieves contract bound to the sold token key
func (q *Queries) GetContractByToken(ctx context.Context, key string) (*models.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE sold_token_key = ?`
	return q.getContract(ctx, query, key)
}

// GetContractByDevice retrieves contract bound to the device
func (q *Queries) GetContractByDevice(ctx context.Context, deviceID string) (*models.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE device_id = ?`
	return q.getContract(ctx, query, deviceID)
}

func (q *Queries) getContract(ctx context.Context, query string, arg string) (*models.Contract, error) {
	contract := &models.Contract{}
	var deletionDate sql.NullTime

	err := q.db.QueryRowContext(ctx, query, arg).Scan(
		&contract.DeviceID,
		&contract.SoldTokenKey,
		&contract.StartDate,
		&contract.ExpiringDate,
		&contract.Deleted,
		&deletionDate,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrContractNotFound
		}
		return nil, classify(fmt.Errorf("failed to get contract: %w", err))
	}

	if deletionDate.Valid {
		contract.DeletionDate = &deletionDate.Time
	}

	return contract, nil
}

// CreateContract stores a new binding
func (q *Queries) CreateContract(ctx context.Context, contract *models.Contract) error {
	query := `
		INSERT INTO contracts (` + contractColumns + `)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	var deletionDate sql.NullTime
	if contract.DeletionDate != nil {
		deletionDate = sql.NullTime{Time: contract.DeletionDate.UTC(), Valid: true}
	}

	_, err := q.db.ExecContext(ctx, query,
		contract.DeviceID,
		contract.SoldTokenKey,
		contract.StartDate.UTC(),
		contract.ExpiringDate.UTC(),
		contract.Deleted,
		deletionDate,
	)

	if err != nil {
		// UNIQUE на device_id и на sold_token_key
		if isUniqueViolation(err) {
			return storage.ErrDuplicateBinding
		}
		return classify(fmt.Errorf("failed to insert contract: %w", err))
	}

	return nil
}
