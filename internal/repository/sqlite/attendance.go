package sqlite

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/predicate"
)

type attendanceRepositoryImpl struct {
	db *database.SQLiteDB
}

func NewAttendanceRepository(db *database.SQLiteDB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

func scanAttendance(row rowScanner, joined bool) (attendance.Record, error) {
	var (
		rec                                 attendance.Record
		checkIn, checkOut                   *string
		date, status, createdAt, updatedAt string
	)
	dest := []any{
		&rec.EmployeeID,
		&date,
		&checkIn,
		&checkOut,
		&status,
		&rec.Remarks,
		&rec.MarkedBy,
		&createdAt,
		&updatedAt,
	}
	if joined {
		dest = append(dest, &rec.EmpID, &rec.FullName, &rec.DepartmentName)
	}
	if err := row.Scan(dest...); err != nil {
		return attendance.Record{}, err
	}

	var err error
	if rec.Date, err = parseDate(date); err != nil {
		return attendance.Record{}, err
	}
	if rec.CheckIn, err = attendance.ParseOptionalTimeOfDay(checkIn); err != nil {
		return attendance.Record{}, fmt.Errorf("scan check_in: %w", err)
	}
	if rec.CheckOut, err = attendance.ParseOptionalTimeOfDay(checkOut); err != nil {
		return attendance.Record{}, fmt.Errorf("scan check_out: %w", err)
	}
	if rec.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return attendance.Record{}, err
	}
	if rec.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return attendance.Record{}, err
	}
	rec.Status = attendance.Status(status)
	return rec, nil
}

// Upsert is a single INSERT .. ON CONFLICT statement. marked_by and
// created_at are absent from the update list, so they keep their first value.
func (r *attendanceRepositoryImpl) Upsert(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance (employee_id, attendance_date, check_in, check_out, status, remarks, marked_by, created_at, updated_at)
		VALUES (?1, ?2, ?3, ?4, ?5, ?6, ?7, ?8, ?9)
		ON CONFLICT (employee_id, attendance_date) DO UPDATE
		SET check_in = excluded.check_in,
			check_out = excluded.check_out,
			status = excluded.status,
			remarks = excluded.remarks,
			updated_at = excluded.updated_at
		RETURNING employee_id, attendance_date, check_in, check_out, status, remarks, marked_by, created_at, updated_at
	`
	return scanAttendance(q.QueryRowContext(ctx, query,
		rec.EmployeeID,
		formatDate(rec.Date),
		attendance.ClockValue(rec.CheckIn),
		attendance.ClockValue(rec.CheckOut),
		string(rec.Status),
		rec.Remarks,
		rec.MarkedBy,
		formatTimestamp(rec.CreatedAt),
		formatTimestamp(rec.UpdatedAt),
	), false)
}

func (r *attendanceRepositoryImpl) ListByDate(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Record, error) {
	conditions := []predicate.Predicate{
		predicate.Eq{Column: "a.attendance_date", Value: formatDate(filter.Date)},
	}
	if filter.DepartmentID != "" {
		conditions = append(conditions, predicate.Eq{Column: "e.department_id", Value: filter.DepartmentID})
	}

	where, args, err := predicate.Where(predicate.SQLite, predicate.And(conditions...), 0)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT a.employee_id, a.attendance_date, a.check_in, a.check_out, a.status, a.remarks,
			   a.marked_by, a.created_at, a.updated_at, e.emp_id, e.full_name, d.dept_name
		FROM attendance a
		INNER JOIN employees e ON e.id = a.employee_id
		LEFT JOIN departments d ON d.id = e.department_id` + where + `
		ORDER BY e.emp_id`

	q := GetQuerier(ctx, r.db)
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []attendance.Record{}
	for rows.Next() {
		rec, err := scanAttendance(rows, true)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
