package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	sqlitedriver "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Timestamps are stored as fixed-width UTC text so they sort lexically.
const timestampLayout = "2006-01-02T15:04:05.000000Z"

// GetQuerier returns either transaction or connection pool
func GetQuerier(ctx context.Context, db *database.SQLiteDB) database.SQLQuerier {
	return db.Querier(ctx)
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(timestampLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}

func formatDate(t time.Time) string {
	return t.Format(validator.DateLayout)
}

func parseDate(s string) (time.Time, error) {
	t, ok := validator.IsValidDate(s)
	if !ok {
		return time.Time{}, fmt.Errorf("parse date %q", s)
	}
	return t, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *sqlitedriver.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	code := sqliteErr.Code()
	return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}
