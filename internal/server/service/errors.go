package service

import (
	"errors"
	"fmt"

	"github.com/iudanet/activator/internal/server/storage"
)

// Kind классифицирует ошибку сервиса для транспортного слоя
type Kind int

const (
	// KindInternal неожиданная ошибка
	KindInternal Kind = iota
	// KindValidation некорректный или отсутствующий ввод
	KindValidation
	// KindNotFound запрошенная сущность отсутствует
	KindNotFound
	// KindConflict нарушение уникальности или состояния
	KindConflict
	// KindAuth credential отсутствует или недействителен
	KindAuth
	// KindTransient хранилище временно недоступно
	KindTransient
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindAuth:
		return "auth"
	case KindTransient:
		return "transient"
	default:
		return "internal"
	}
}

// Error is a typed service error carrying a stable status string
// for the boundary.
type Error struct {
	Err    error
	Status string
	Kind   Kind
}

// Error implements error.
func (e *Error) Error() string {
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Business errors of the service
var (
	ErrInvalidToken = &Error{
		Kind:   KindValidation,
		Status: "INVALID_TOKEN",
		Err:    errors.New("sold token is unknown or already consumed"),
	}
	ErrAlreadyRegistered = &Error{
		Kind:   KindConflict,
		Status: "ALREADY_REGISTERED",
		Err:    errors.New("sold token is bound to another device"),
	}
	ErrContractExpired = &Error{
		Kind:   KindConflict,
		Status: "EXPIRED_CONTRACT",
		Err:    errors.New("contract has expired"),
	}
	ErrDuplicateBinding = &Error{
		Kind:   KindConflict,
		Status: "DUPLICATE_BINDING",
		Err:    storage.ErrDuplicateBinding,
	}
	ErrProfileExists = &Error{
		Kind:   KindConflict,
		Status: "ALREADY_REGISTERED",
		Err:    storage.ErrUserAlreadyExists,
	}
	ErrUserNotFound = &Error{
		Kind:   KindNotFound,
		Status: "USER_NOT_FOUND",
		Err:    storage.ErrUserNotFound,
	}
	ErrArchiveNotFound = &Error{
		Kind:   KindNotFound,
		Status: "ARCHIVE_NOT_FOUND",
		Err:    storage.ErrArchiveNotFound,
	}
	ErrContractNotFound = &Error{
		Kind:   KindNotFound,
		Status: "CONTRACT_NOT_FOUND",
		Err:    storage.ErrContractNotFound,
	}
	ErrRetentionExpired = &Error{
		Kind:   KindConflict,
		Status: "RETENTION_EXPIRED",
		Err:    errors.New("archive retention window has passed"),
	}
)

// ValidationError оборачивает ошибку некорректного ввода
func ValidationError(err error) *Error {
	return &Error{Kind: KindValidation, Status: "VALIDATION_FAILED", Err: err}
}

// KindOf returns the kind of err, KindInternal for untyped errors.
func KindOf(err error) Kind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return KindInternal
}

// StatusOf returns the boundary status string of err.
func StatusOf(err error) string {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Status
	}
	return "INTERNAL_ERROR"
}

// fromStorage переводит ошибки хранилища в ошибки сервиса
func fromStorage(err error) error {
	var svcErr *Error
	switch {
	case err == nil:
		return nil
	case errors.As(err, &svcErr):
		return err
	case errors.Is(err, storage.ErrDuplicateBinding):
		return ErrDuplicateBinding
	case errors.Is(err, storage.ErrUserAlreadyExists):
		return ErrProfileExists
	case errors.Is(err, storage.ErrUserNotFound):
		return ErrUserNotFound
	case errors.Is(err, storage.ErrArchiveNotFound):
		return ErrArchiveNotFound
	case errors.Is(err, storage.ErrContractNotFound):
		return ErrContractNotFound
	case errors.Is(err, storage.ErrTransient):
		return &Error{Kind: KindTransient, Status: "STORE_UNAVAILABLE", Err: err}
	default:
		return &Error{Kind: KindInternal, Status: "INTERNAL_ERROR", Err: fmt.Errorf("store: %w", err)}
	}
}
