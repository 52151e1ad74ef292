package domain

import "errors"

// Error kinds shared across services. Service packages wrap these with
// operation-specific sentinels so handlers can map a failure to a response
// with errors.Is.
var (
	// ErrNotFound: a credit, account or request does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidState: the record is in the wrong lifecycle state for the
	// attempted operation.
	ErrInvalidState = errors.New("invalid state transition")
	// ErrValidation: the input itself is unacceptable.
	ErrValidation = errors.New("validation failed")
	// ErrInsufficientFunds: a debit would exceed the current balance.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrConflict: lock contention resolved as a logical conflict.
	ErrConflict = errors.New("conflicting operation")
	// ErrExternalDependency: the payment gateway or another collaborator
	// failed. Never rolls back committed ledger state.
	ErrExternalDependency = errors.New("external dependency failed")
)
