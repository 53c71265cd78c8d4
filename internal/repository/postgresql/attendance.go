package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/predicate"
	"github.com/jackc/pgx/v5"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

// check_in/check_out are read back through to_char so they scan as HH:MM:SS text.
const attendanceColumns = `a.employee_id, a.attendance_date,
		   to_char(a.check_in, 'HH24:MI:SS'), to_char(a.check_out, 'HH24:MI:SS'),
		   a.status, a.remarks, a.marked_by, a.created_at, a.updated_at`

func scanAttendance(row pgx.Row, joined bool) (attendance.Record, error) {
	var (
		rec               attendance.Record
		checkIn, checkOut *string
		status            string
	)
	dest := []any{
		&rec.EmployeeID,
		&rec.Date,
		&checkIn,
		&checkOut,
		&status,
		&rec.Remarks,
		&rec.MarkedBy,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	}
	if joined {
		dest = append(dest, &rec.EmpID, &rec.FullName, &rec.DepartmentName)
	}
	if err := row.Scan(dest...); err != nil {
		return attendance.Record{}, err
	}

	var err error
	if rec.CheckIn, err = attendance.ParseOptionalTimeOfDay(checkIn); err != nil {
		return attendance.Record{}, fmt.Errorf("scan check_in: %w", err)
	}
	if rec.CheckOut, err = attendance.ParseOptionalTimeOfDay(checkOut); err != nil {
		return attendance.Record{}, fmt.Errorf("scan check_out: %w", err)
	}
	rec.Status = attendance.Status(status)
	return rec, nil
}

// Upsert is a single INSERT .. ON CONFLICT statement. marked_by and
// created_at are absent from the update list, so they keep their first value.
func (r *attendanceRepositoryImpl) Upsert(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance AS a (employee_id, attendance_date, check_in, check_out, status, remarks, marked_by, created_at, updated_at)
		VALUES ($1, $2, $3::time, $4::time, $5, $6, $7, $8, $9)
		ON CONFLICT (employee_id, attendance_date) DO UPDATE
		SET check_in = EXCLUDED.check_in,
			check_out = EXCLUDED.check_out,
			status = EXCLUDED.status,
			remarks = EXCLUDED.remarks,
			updated_at = EXCLUDED.updated_at
		RETURNING ` + attendanceColumns

	return scanAttendance(q.QueryRow(ctx, query,
		rec.EmployeeID,
		rec.Date,
		attendance.ClockValue(rec.CheckIn),
		attendance.ClockValue(rec.CheckOut),
		string(rec.Status),
		rec.Remarks,
		rec.MarkedBy,
		rec.CreatedAt,
		rec.UpdatedAt,
	), false)
}

func (r *attendanceRepositoryImpl) ListByDate(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Record, error) {
	conditions := []predicate.Predicate{
		predicate.Eq{Column: "a.attendance_date", Value: filter.Date},
	}
	if filter.DepartmentID != "" {
		if !isUUID(filter.DepartmentID) {
			return []attendance.Record{}, nil
		}
		conditions = append(conditions, predicate.Eq{Column: "e.department_id", Value: filter.DepartmentID})
	}

	where, args, err := predicate.Where(predicate.Postgres, predicate.And(conditions...), 0)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT ` + attendanceColumns + `, e.emp_id, e.full_name, d.dept_name
		FROM attendance a
		INNER JOIN employees e ON e.id = a.employee_id
		LEFT JOIN departments d ON d.id = e.department_id` + where + `
		ORDER BY e.emp_id`

	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, query, args...)
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
