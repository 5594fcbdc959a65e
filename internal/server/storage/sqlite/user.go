package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/activator/internal/models"
	"github.com/iudanet/activator/internal/server/storage"
)

const profileColumns = `device_id, first_name, last_name, birth_date, place_of_birth,
		email, phone, school, address, user_type, created_at`

// CreateUser creates a new profile
func (q *Queries) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (` + profileColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := q.db.ExecContext(ctx, query, profileArgs(user)...)

	if err != nil {
		// Проверяем на duplicate device_id
		if isUniqueViolation(err) {
			return storage.ErrUserAlreadyExists
		}
		return classify(fmt.Errorf("failed to insert user: %w", err))
	}

	return nil
}

// GetUser retrieves profile by device id
func (q *Queries) GetUser(ctx context.Context, deviceID string) (*models.User, error) {
	query := `SELECT ` + profileColumns + ` FROM users WHERE device_id = ?`

	user := &models.User{}
	var birthDate sql.NullTime

	err := q.db.QueryRowContext(ctx, query, deviceID).Scan(profileDest(user, &birthDate)...)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrUserNotFound
		}
		return nil, classify(fmt.Errorf("failed to get user: %w", err))
	}

	if birthDate.Valid {
		user.BirthDate = birthDate.Time
	}

	return user, nil
}

// UpdateUser updates editable profile fields
func (q *Queries) UpdateUser(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET first_name = ?, last_name = ?, birth_date = ?, place_of_birth = ?,
			email = ?, phone = ?, school = ?, address = ?
		WHERE device_id = ?
	`

	result, err := q.db.ExecContext(ctx, query,
		user.FirstName,
		user.LastName,
		nullTime(user.BirthDate),
		user.PlaceOfBirth,
		user.Email,
		user.Phone,
		user.School,
		user.Address,
		user.DeviceID,
	)

	if err != nil {
		return classify(fmt.Errorf("failed to update user: %w", err))
	}

	rows, err := rowsAffected(result)
	if err != nil {
		return err
	}

	if rows == 0 {
		return storage.ErrUserNotFound
	}

	return nil
}

// DeleteUser deletes profile by device id
func (q *Queries) DeleteUser(ctx context.Context, deviceID string) error {
	query := `DELETE FROM users WHERE device_id = ?`

	result, err := q.db.ExecContext(ctx, query, deviceID)
	if err != nil {
		return classify(fmt.Errorf("failed to delete user: %w", err))
	}

	rows, err := rowsAffected(result)
	if err != nil {
		return err
	}

	if rows == 0 {
		return storage.ErrUserNotFound
	}

	return nil
}

// profileArgs возвращает значения колонок profileColumns в том же порядке
func profileArgs(user *models.User) []any {
	return []any{
		user.DeviceID,
		user.FirstName,
		user.LastName,
		nullTime(user.BirthDate),
		user.PlaceOfBirth,
		user.Email,
		user.Phone,
		user.School,
		user.Address,
		int(user.UserType),
		user.CreatedAt.UTC(),
	}
}

// profileDest возвращает приемники для колонок profileColumns
func profileDest(user *models.User, birthDate *sql.NullTime) []any {
	return []any{
		&user.DeviceID,
		&user.FirstName,
		&user.LastName,
		birthDate,
		&user.PlaceOfBirth,
		&user.Email,
		&user.Phone,
		&user.School,
		&user.Address,
		&user.UserType,
		&user.CreatedAt,
	}
}

func nullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
