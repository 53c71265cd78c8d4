package attendance

import "context"

type AttendanceRepository interface {
	// Upsert inserts the record or, when (employee_id, attendance_date)
	// exists, overwrites check_in, check_out, status and remarks in one
	// statement. The stored record is returned.
	Upsert(ctx context.Context, r Record) (Record, error)
	ListByDate(ctx context.Context, filter AttendanceFilter) ([]Record, error)
}
