package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"notebook/internal/domain"
)

// IsPgNoRowsError checks if error is a "no rows" error
func IsPgNoRowsError(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// IsPgForeignKeyError checks if error is a foreign key violation
func IsPgForeignKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23503 = foreign_key_violation
		return pgErr.Code == "23503"
	}
	return false
}

// IsPgCheckViolation checks if error is a check constraint violation
func IsPgCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23514 = check_violation
		return pgErr.Code == "23514"
	}
	return false
}

// IsPgUniqueViolation checks if error is a unique constraint violation
func IsPgUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23505 = unique_violation
		return pgErr.Code == "23505"
	}
	return false
}

// StorageErr wraps a driver error as a domain storage failure.
// Errors that already carry a domain meaning pass through untouched.
func StorageErr(op string, err error) error {
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrStorage) {
		return err
	}
	return domain.NewStorage(op, err)
}

// NotFoundOr maps pgx.ErrNoRows to a NotFoundError, anything else to a storage failure
func NotFoundOr(op, resource string, id int64, err error) error {
	if IsPgNoRowsError(err) {
		return domain.NewNotFound(resource, id)
	}
	return StorageErr(fmt.Sprintf("%s %d", op, id), err)
}

// ConstraintErr maps constraint violations raised by writes. refs names the
// foreign key columns of the row and the ids written to them; a violation on
// one of them means the referenced row is gone.
func ConstraintErr(op string, err error, refs map[string]*int64) error {
	switch {
	case IsPgForeignKeyError(err):
		var pgErr *pgconn.PgError
		errors.As(err, &pgErr)
		for column, id := range refs {
			if id != nil && strings.HasSuffix(pgErr.ConstraintName, "_"+column+"_fkey") {
				return domain.NewReferenceInvalid(column, *id)
			}
		}
	case IsPgCheckViolation(err):
		return domain.NewValidation(op + ": value violates a check constraint")
	}
	return StorageErr(op, err)
}

// UniqueErr maps a unique violation on one of the columns in values to a
// ConflictError; values holds the column values that were written
func UniqueErr(op, resource string, err error, values map[string]string) error {
	if IsPgUniqueViolation(err) {
		var pgErr *pgconn.PgError
		errors.As(err, &pgErr)
		for column, value := range values {
			if strings.HasSuffix(pgErr.ConstraintName, "_"+column+"_key") {
				return domain.NewConflict(resource, column, value)
			}
		}
	}
	return StorageErr(op, err)
}
