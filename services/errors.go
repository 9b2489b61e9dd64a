package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gopinathsjsu/team-project-20202-gvp/storage"
)

// Business-rule errors surfaced to handlers. Handlers map these to HTTP
// status codes; they are never retried.
var (
	ErrNotFound          = errors.New("resource not found")
	ErrCapacityExceeded  = errors.New("no tables available for this slot")
	ErrPartySize         = errors.New("number of people exceeds table size")
	ErrClosed            = errors.New("restaurant is closed on this day")
	ErrOutOfHours        = errors.New("restaurant is not open at this time")
	ErrAlreadyCancelled  = errors.New("booking is already cancelled")
	ErrInvalidTransition = errors.New("only cancellation is allowed")
)

// ValidationError marks malformed or missing input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validationf(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err is an input-validation failure.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// timeNow is swapped out in tests.
var timeNow = time.Now

const maxTxRetries = 3

// runInTx executes fn in a transaction, retrying a bounded number of times
// when the store reports lock contention or a serialization failure.
func runInTx(fn func(tx *gorm.DB) error) error {
	var err error
	for attempt := 0; attempt < maxTxRetries; attempt++ {
		err = storage.DB.Transaction(fn)
		if err == nil || !retryableTxError(err) {
			return err
		}
		time.Sleep(time.Duration(attempt+1) * 25 * time.Millisecond)
	}
	return err
}

func retryableTxError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "40001") || // serialization_failure
		strings.Contains(msg, "40p01") || // deadlock_detected
		strings.Contains(msg, "deadlock") ||
		strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked")
}

// lockForUpdate takes a row-level write lock on the queried rows. SQLite
// (used by tests) has no FOR UPDATE; its single-writer model serializes
// transactions instead.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "constraint failed")
}
