package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/iudanet/activator/internal/license"
	"github.com/iudanet/activator/internal/models"
	"github.com/iudanet/activator/internal/server/storage"
	"github.com/iudanet/activator/internal/validation"
)

// RedeemOutcome итог успешного погашения ключа
type RedeemOutcome int

const (
	// OutcomeCreated создан новый профиль и контракт
	OutcomeCreated RedeemOutcome = iota + 1
	// OutcomeIdempotent устройство уже зарегистрировано, ничего не изменено
	OutcomeIdempotent
)

// String returns the outcome label used in logs and metrics.
func (o RedeemOutcome) String() string {
	switch o {
	case OutcomeCreated:
		return "created"
	case OutcomeIdempotent:
		return "idempotent"
	default:
		return "unknown"
	}
}

// RedeemResult результат погашения ключа
type RedeemResult struct {
	// User is nil when the bound device has archived its profile
	User     *models.User
	Outcome  RedeemOutcome
	Archived bool
}

// Registration redeems sold tokens. Every read and write of one
// redemption happens inside a single store transaction.
type Registration struct {
	store    storage.Store
	logger   *slog.Logger
	recorder Recorder
	settings
}

// NewRegistration создает координатор регистрации
func NewRegistration(store storage.Store, logger *slog.Logger, recorder Recorder, opts ...Option) *Registration {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &Registration{
		store:    store,
		logger:   logger,
		recorder: recorder,
		settings: newSettings(opts),
	}
}

// Redeem binds the sold token to the device.
//
// A token bound to another device fails with ErrAlreadyRegistered, an
// expired binding of the same device with ErrContractExpired. A device that
// already holds a valid binding for the token, or already has a profile,
// gets OutcomeIdempotent and nothing is written. Otherwise the profile, the
// contract and the token consumption are committed together.
func (r *Registration) Redeem(ctx context.Context, deviceID, rawKey string) (*RedeemResult, error) {
	if err := validation.ValidateDeviceID(deviceID); err != nil {
		return nil, ValidationError(err)
	}

	key := license.NormalizeKey(rawKey)
	if err := validation.ValidateTokenKey(key); err != nil {
		return nil, ValidationError(err)
	}

	var result *RedeemResult
	err := r.store.WithTx(ctx, func(repo storage.Repository) error {
		// Замыкание может быть перезапущено при transient ошибке
		result = nil

		res, err := r.redeem(ctx, repo, deviceID, key)
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		err = fromStorage(err)
		r.recorder.Redemption("rejected")
		r.logger.WarnContext(ctx, "redemption rejected",
			slog.String("device_id", deviceID),
			slog.String("status", StatusOf(err)),
			slog.Any("error", err))
		return nil, err
	}

	r.recorder.Redemption(result.Outcome.String())
	r.logger.InfoContext(ctx, "sold token redeemed",
		slog.String("device_id", deviceID),
		slog.String("outcome", result.Outcome.String()),
		slog.Bool("archived", result.Archived))

	return result, nil
}

func (r *Registration) redeem(ctx context.Context, repo storage.Repository, deviceID, key string) (*RedeemResult, error) {
	token, err := repo.GetSoldToken(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrTokenNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	now := r.now()

	contract, err := repo.GetContractByToken(ctx, key)
	switch {
	case err == nil:
		if contract.DeviceID != deviceID {
			return nil, ErrAlreadyRegistered
		}
		if contract.ExpiredAt(now) {
			return nil, ErrContractExpired
		}
		return r.existing(ctx, repo, deviceID)
	case !errors.Is(err, storage.ErrContractNotFound):
		return nil, err
	}

	// Погашенный ключ без контракта повторно не принимается
	if token.Consumed {
		return nil, ErrInvalidToken
	}

	user, err := repo.GetUser(ctx, deviceID)
	if err == nil {
		r.logger.WarnContext(ctx, "device has a profile but no contract for the token",
			slog.String("device_id", deviceID))
		return &RedeemResult{User: user, Outcome: OutcomeIdempotent}, nil
	}
	if !errors.Is(err, storage.ErrUserNotFound) {
		return nil, err
	}

	user = models.NewUser(deviceID, license.Classify(key), now)
	if err := repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	if err := repo.CreateContract(ctx, models.NewContract(deviceID, key, now)); err != nil {
		return nil, err
	}

	rows, err := repo.ConsumeSoldToken(ctx, key)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		// Профиль и контракт уже созданы: фиксируем транзакцию и сигнализируем
		r.recorder.ZeroRowConsume()
		r.logger.WarnContext(ctx, "sold token consume modified no rows",
			slog.String("device_id", deviceID))
	}

	return &RedeemResult{User: user, Outcome: OutcomeCreated}, nil
}

// existing возвращает профиль устройства, уже связанного с ключом
func (r *Registration) existing(ctx context.Context, repo storage.Repository, deviceID string) (*RedeemResult, error) {
	user, err := repo.GetUser(ctx, deviceID)
	if err == nil {
		return &RedeemResult{User: user, Outcome: OutcomeIdempotent}, nil
	}
	if !errors.Is(err, storage.ErrUserNotFound) {
		return nil, err
	}

	if _, err := repo.GetArchivedUser(ctx, deviceID); err != nil {
		if errors.Is(err, storage.ErrArchiveNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &RedeemResult{Outcome: OutcomeIdempotent, Archived: true}, nil
}
