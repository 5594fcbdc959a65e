package storage

import "context"

// Repository groups every record type of the service
// Both the store itself and a running transaction implement it
type Repository interface {
	TokenStorage
	ContractStorage
	UserStorage
	ArchiveStorage
}

// Store is the persistent store used by the service layer
type Store interface {
	Repository

	// WithTx runs fn inside one transaction: all writes made through the
	// passed Repository are committed together or not at all.
	// fn may be invoked again from scratch when the store reports a
	// transient error, so it must not have side effects outside repo.
	WithTx(ctx context.Context, fn func(repo Repository) error) error

	// Ping checks that the store is reachable
	Ping(ctx context.Context) error
}
