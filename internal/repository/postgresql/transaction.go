package postgresql

import (
	"context"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
)

// GetQuerier returns either transaction or pool
// Used in repositories to support both transactional and non-transactional operations
func GetQuerier(ctx context.Context, db *database.DB) database.Querier {
	return db.Querier(ctx)
}
