package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrDuplicatePair is returned when a unique (subject, object) pair
	// already exists. The database constraint is the concurrency guard: two
	// racing inserts produce exactly one row and one ErrDuplicatePair.
	ErrDuplicatePair = errors.New("pair already exists")

	// ErrPairNotFound is returned by Remove when there is nothing to delete.
	ErrPairNotFound = errors.New("pair not found")

	// ErrDuplicateRecipeName is returned when (author, name) is taken.
	ErrDuplicateRecipeName = errors.New("recipe name already used by this author")
)

const uniqueViolationCode = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
