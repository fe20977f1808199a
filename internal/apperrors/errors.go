package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates an operation that is not allowed in the current state of the
// resource, e.g. closing an account with a non-zero balance or deleting a ledger that
// still has sub-ledgers.
var ErrConflict = errors.New("operation conflicts with resource state")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")
