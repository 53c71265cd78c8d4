package dashboard

import (
	"context"
	"time"
)

type DashboardRepository interface {
	CountActiveEmployees(ctx context.Context) (int64, error)
	// CountActiveDepartments counts distinct non-null departments of active employees.
	CountActiveDepartments(ctx context.Context) (int64, error)
	CountAttendance(ctx context.Context, date time.Time) (int64, error)
	CountAttendanceByStatus(ctx context.Context, date time.Time, status string) (int64, error)
}
