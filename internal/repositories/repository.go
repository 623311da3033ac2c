// Package repositories provides the storage backends of the ledger.
// Every backend implements TransactionRepository and translates its
// native failures into ErrAccountNotFound, ErrLimitExceeded or a
// *TransientError before returning.
package repositories

import (
	"context"
	"errors"
	"fmt"

	"ledger/internal/models"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrLimitExceeded   = models.ErrLimitExceeded
	ErrBalanceOverflow = models.ErrBalanceOverflow
)

// TransactionRepository is the contract shared by all backends.
type TransactionRepository interface {
	// AddTransaction applies tx to the wallet atomically and returns the
	// balance after it. A rejected transaction leaves no trace.
	AddTransaction(ctx context.Context, id uint32, tx models.Transaction) (models.Balance, error)
	// GetStatement returns the balance and the newest transactions of
	// the wallet, read from the authoritative store.
	GetStatement(ctx context.Context, id uint32) (models.Statement, error)
}

// AccountNotFoundError names the wallet that does not exist.
type AccountNotFoundError struct {
	ID uint32
}

func (e *AccountNotFoundError) Error() string {
	return fmt.Sprintf("account %d not found", e.ID)
}

func (e *AccountNotFoundError) Unwrap() error {
	return ErrAccountNotFound
}

// TransientError wraps a storage or network failure. The operation may
// succeed if retried; the repository never retries on its own.
type TransientError struct {
	Op  string
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// IsTransient reports whether err is a *TransientError.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}

func notFound(id uint32) error {
	return &AccountNotFoundError{ID: id}
}

func transient(op string, err error) error {
	return &TransientError{Op: op, Err: err}
}
