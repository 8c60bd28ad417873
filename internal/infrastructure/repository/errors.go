package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sangkips/salonpos-api/pkg/apperror"
	"gorm.io/gorm"
)

// Postgres SQLSTATE codes that mean "try again"
const (
	sqlStateSerializationFailure = "40001"
	sqlStateDeadlockDetected     = "40P01"
	sqlStateLockNotAvailable     = "55P03"
	sqlStateUniqueViolation      = "23505"
)

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == sqlStateUniqueViolation
}

func isTransient(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case sqlStateSerializationFailure, sqlStateDeadlockDetected, sqlStateLockNotAvailable:
		return true
	}
	return false
}

// translateError maps driver errors escaping a transaction onto the
// application taxonomy. A unique violation that no repository turned into a
// business rule means a concurrent writer won a race.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case apperror.IsAppError(err):
		return err
	case isTransient(err):
		return apperror.NewConcurrencyError("Concurrent update detected, please retry", err)
	case isDuplicate(err):
		return apperror.NewConcurrencyError("Conflicting write detected, please retry", err)
	}
	return apperror.Storage(err)
}
