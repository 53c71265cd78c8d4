package postgresql

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolationCode = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// isUUID reports whether id can be bound to a uuid column. Anything else
// cannot match a row, and binding it would fail the whole statement.
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
