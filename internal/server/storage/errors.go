package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that user profile was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that a profile for this device already exists
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrArchiveNotFound indicates that no archived profile exists for the device
	ErrArchiveNotFound = errors.New("archived user not found")

	// ErrTokenNotFound indicates that sold token was not found
	ErrTokenNotFound = errors.New("sold token not found")

	// ErrTokenAlreadyExists indicates that sold token with this key already exists
	ErrTokenAlreadyExists = errors.New("sold token already exists")

	// ErrContractNotFound indicates that contract was not found
	ErrContractNotFound = errors.New("contract not found")

	// ErrDuplicateBinding indicates that the device or the token is already bound by a contract
	ErrDuplicateBinding = errors.New("duplicate contract binding")

	// ErrTransient indicates that the store was busy or the transaction was aborted
	// Only errors wrapping ErrTransient may be retried
	ErrTransient = errors.New("transient store error")
)
