package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/iudanet/activator/internal/models"
	"github.com/iudanet/activator/internal/server/storage"
	"github.com/iudanet/activator/internal/validation"
)

// Directory manages device profiles and their archive.
type Directory struct {
	store  storage.Store
	logger *slog.Logger
	settings
}

// NewDirectory создает сервис профилей
func NewDirectory(store storage.Store, logger *slog.Logger, opts ...Option) *Directory {
	return &Directory{
		store:    store,
		logger:   logger,
		settings: newSettings(opts),
	}
}

// Profile возвращает живой профиль устройства
func (d *Directory) Profile(ctx context.Context, deviceID string) (*models.User, error) {
	user, err := d.store.GetUser(ctx, deviceID)
	if err != nil {
		return nil, fromStorage(err)
	}
	return user, nil
}

// Contract возвращает контракт устройства
func (d *Directory) Contract(ctx context.Context, deviceID string) (*models.Contract, error) {
	contract, err := d.store.GetContractByDevice(ctx, deviceID)
	if err != nil {
		return nil, fromStorage(err)
	}
	return contract, nil
}

// Update applies the non-empty fields of patch to the profile.
// It never creates a profile.
func (d *Directory) Update(ctx context.Context, deviceID string, patch models.ProfilePatch) (*models.User, error) {
	if err := validation.Struct(patch); err != nil {
		return nil, ValidationError(err)
	}

	if patch.IsEmpty() {
		return d.Profile(ctx, deviceID)
	}

	var user *models.User
	err := d.store.WithTx(ctx, func(repo storage.Repository) error {
		current, err := repo.GetUser(ctx, deviceID)
		if err != nil {
			return err
		}

		if err := patch.Apply(current); err != nil {
			return ValidationError(err)
		}

		if err := repo.UpdateUser(ctx, current); err != nil {
			return err
		}

		user = current
		return nil
	})
	if err != nil {
		return nil, fromStorage(err)
	}

	d.logger.InfoContext(ctx, "profile updated", slog.String("device_id", deviceID))

	return user, nil
}

// Archive moves the live profile into the archive in one transaction.
func (d *Directory) Archive(ctx context.Context, deviceID string) (*models.ArchivedUser, error) {
	var archived *models.ArchivedUser
	err := d.store.WithTx(ctx, func(repo storage.Repository) error {
		user, err := repo.GetUser(ctx, deviceID)
		if err != nil {
			return err
		}

		// Более старый архив того же устройства заменяется
		a := user.Archive(d.now())
		if err := repo.SaveArchivedUser(ctx, a); err != nil {
			return err
		}

		if err := repo.DeleteUser(ctx, deviceID); err != nil {
			return err
		}

		archived = a
		return nil
	})
	if err != nil {
		return nil, fromStorage(err)
	}

	d.logger.InfoContext(ctx, "profile archived", slog.String("device_id", deviceID))

	return archived, nil
}

// Restore moves the archived profile back while the retention window is
// open. A profile archived exactly retention ago is still restorable.
func (d *Directory) Restore(ctx context.Context, deviceID string) (*models.User, error) {
	var user *models.User
	err := d.store.WithTx(ctx, func(repo storage.Repository) error {
		archived, err := repo.GetArchivedUser(ctx, deviceID)
		if err != nil {
			return err
		}

		if d.now().Sub(archived.ArchivedAt) > d.retention {
			return ErrRetentionExpired
		}

		restored := archived.Restore()
		if err := repo.CreateUser(ctx, restored); err != nil {
			return err
		}

		if err := repo.DeleteArchivedUser(ctx, deviceID); err != nil {
			return err
		}

		user = restored
		return nil
	})
	if err != nil {
		err = fromStorage(err)
		if errors.Is(err, ErrRetentionExpired) {
			d.logger.WarnContext(ctx, "archive retention expired", slog.String("device_id", deviceID))
		}
		return nil, err
	}

	d.logger.InfoContext(ctx, "profile restored", slog.String("device_id", deviceID))

	return user, nil
}
