package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iudanet/activator/internal/models"
	"github.com/iudanet/activator/internal/server/storage"
)

// SaveArchivedUser stores archived profile, replacing an older archive of the same device
func (q *Queries) SaveArchivedUser(ctx context.Context, user *models.ArchivedUser) error {
	query := `
		INSERT OR REPLACE INTO archived_users (` + profileColumns + `, archived_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	args := append(profileArgs(&user.User), user.ArchivedAt.UTC())

	if _, err := q.db.ExecContext(ctx, query, args...); err != nil {
		return classify(fmt.Errorf("failed to save archived user: %w", err))
	}

	return nil
}

// GetArchivedUser retrieves archived profile by device id
func (q *Queries) GetArchivedUser(ctx context.Context, deviceID string) (*models.ArchivedUser, error) {
	query := `SELECT ` + profileColumns + `, archived_at FROM archived_users WHERE device_id = ?`

	archived := &models.ArchivedUser{}
	var birthDate sql.NullTime

	dest := append(profileDest(&archived.User, &birthDate), &archived.ArchivedAt)

	if err := q.db.QueryRowContext(ctx, query, deviceID).Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrArchiveNotFound
		}
		return nil, classify(fmt.Errorf("failed to get archived user: %w", err))
	}

	if birthDate.Valid {
		archived.BirthDate = birthDate.Time
	}

	return archived, nil
}

// DeleteArchivedUser deletes archived profile by device id
func (q *Queries) DeleteArchivedUser(ctx context.Context, deviceID string) error {
	query := `DELETE FROM archived_users WHERE device_id = ?`

	result, err := q.db.ExecContext(ctx, query, deviceID)
	if err != nil {
		return classify(fmt.Errorf("failed to delete archived user: %w", err))
	}

	rows, err := rowsAffected(result)
	if err != nil {
		return err
	}

	if rows == 0 {
		return storage.ErrArchiveNotFound
	}

	return nil
}
