package postgres

import (
	"strings"

	domainerrors "solar/internal/domain/errors"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Helper functions for constraint error checking. Drivers that do not
// translate errors are matched on their message or SQLSTATE.
func isUniqueConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "duplicate key") ||
		strings.Contains(errMsg, "unique constraint") ||
		strings.Contains(errMsg, "23505")
}

func isNotNullConstraintViolation(err error) bool {
	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "null value") ||
		strings.Contains(errMsg, "not null constraint") ||
		strings.Contains(errMsg, "23502") // PostgreSQL not_null_violation error code
}

func isCheckConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return true
	}

	return strings.Contains(strings.ToLower(err.Error()), "check constraint")
}

// translateWriteError converts a failed insert/update into a domain error.
// conflict is returned for uniqueness violations.
func translateWriteError(err error, conflict *domainerrors.BaseError, op string) error {
	switch {
	case isUniqueConstraintViolation(err):
		return conflict.WrapMessage(op)
	case isNotNullConstraintViolation(err), isCheckConstraintViolation(err):
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	default:
		return domainerrors.NewDatabaseExecuteError(err, op)
	}
}

// translateReadError maps a missing record to notFound.
func translateReadError(err error, notFound *domainerrors.BaseError, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}

	return domainerrors.NewDatabaseExecuteError(err, op)
}
