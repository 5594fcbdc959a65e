package storage

import (
	"context"

	"github.com/iudanet/activator/internal/models"
)

// UserStorage defines interface for live device profiles
type UserStorage interface {
	// CreateUser creates a new profile
	// Returns ErrUserAlreadyExists if device already has a profile
	CreateUser(ctx context.Context, user *models.User) error

	// GetUser retrieves profile by device id
	// Returns ErrUserNotFound if profile doesn't exist
	GetUser(ctx context.Context, deviceID string) (*models.User, error)

	// UpdateUser updates editable profile fields (user type and creation time are immutable)
	// Returns ErrUserNotFound if profile doesn't exist
	UpdateUser(ctx context.Context, user *models.User) error

	// DeleteUser deletes profile by device id
	// Returns ErrUserNotFound if profile doesn't exist
	DeleteUser(ctx context.Context, deviceID string) error
}

// ArchiveStorage defines interface for archived (soft-deleted) profiles
type ArchiveStorage interface {
	// SaveArchivedUser stores archived profile, replacing an older archive of the same device
	SaveArchivedUser(ctx context.Context, user *models.ArchivedUser) error

	// GetArchivedUser retrieves archived profile by device id
	// Returns ErrArchiveNotFound if archive doesn't exist
	GetArchivedUser(ctx context.Context, deviceID string) (*models.ArchivedUser, error)

	// DeleteArchivedUser deletes archived profile by device id
	// Returns ErrArchiveNotFound if archive doesn't exist
	DeleteArchivedUser(ctx context.Context, deviceID string) error
}
