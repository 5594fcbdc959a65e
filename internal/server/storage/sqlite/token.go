package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iudanet/activator/internal/models"
	"github.com/iudanet/activator/internal/server/storage"
)

// GetSoldToken retrieves sold token by its normalized key
func (q *Queries) GetSoldToken(ctx context.Context, key string) (*models.SoldToken, error) {
	query := `
		SELECT token_key, code, sold, consumed, generated_at
		FROM sold_tokens
		WHERE token_key = ?
	`

	token := &models.SoldToken{}

	err := q.db.QueryRowContext(ctx, query, key).Scan(
		&token.Key,
		&token.Code,
		&token.Sold,
		&token.Consumed,
		&token.GeneratedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrTokenNotFound
		}
		return nil, classify(fmt.Errorf("failed to get sold token: %w", err))
	}

	return token, nil
}

// ConsumeSoldToken marks an unconsumed token as consumed
func (q *Queries) ConsumeSoldToken(ctx context.Context, key string) (int64, error) {
	query := `UPDATE sold_tokens SET consumed = 1 WHERE token_key = ? AND consumed = 0`

	result, err := q.db.ExecContext(ctx, query, key)
	if err != nil {
		return 0, classify(fmt.Errorf("failed to consume sold token: %w", err))
	}

	return rowsAffected(result)
}

// SaveSoldToken inserts a provisioned token
func (q *Queries) SaveSoldToken(ctx context.Context, token *models.SoldToken) error {
	query := `
		INSERT INTO sold_tokens (token_key, code, sold, consumed, generated_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := q.db.ExecContext(ctx, query,
		token.Key,
		token.Code,
		token.Sold,
		token.Consumed,
		token.GeneratedAt.UTC(),
	)

	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrTokenAlreadyExists
		}
		return classify(fmt.Errorf("failed to insert sold token: %w", err))
	}

	return nil
}
