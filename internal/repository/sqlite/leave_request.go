package sqlite

import (
	"context"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
)

type leaveRequestRepositoryImpl struct {
	db *database.SQLiteDB
}

func NewLeaveRequestRepository(db *database.SQLiteDB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (id, employee_id, leave_type, start_date, end_date, reason, status, requested_at)
		VALUES (?1, ?2, ?3, ?4, ?5, ?6, ?7, ?8)
	`
	_, err := q.ExecContext(ctx, query,
		request.ID,
		request.EmployeeID,
		string(request.LeaveType),
		formatDate(request.StartDate),
		formatDate(request.EndDate),
		request.Reason,
		string(request.Status),
		formatTimestamp(request.RequestedAt),
	)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	return request, nil
}

func (r *leaveRequestRepositoryImpl) UpdateStatus(ctx context.Context, id string, status leave.Status) error {
	q := GetQuerier(ctx, r.db)

	result, err := q.ExecContext(ctx, `UPDATE leave_requests SET status = ?1 WHERE id = ?2`, string(status), id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return leave.ErrLeaveRequestNotFound
	}
	return nil
}

func (r *leaveRequestRepositoryImpl) ListRecent(ctx context.Context, limit int) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT lr.id, lr.employee_id, lr.leave_type, lr.start_date, lr.end_date, lr.reason, lr.status, lr.requested_at,
			   e.emp_id, e.full_name, d.dept_name
		FROM leave_requests lr
		INNER JOIN employees e ON e.id = lr.employee_id
		LEFT JOIN departments d ON d.id = e.department_id
		ORDER BY lr.requested_at DESC, lr.id DESC
		LIMIT ?1
	`
	rows, err := q.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := []leave.LeaveRequest{}
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, lr)
	}
	return requests, rows.Err()
}

func scanLeaveRequest(row rowScanner) (leave.LeaveRequest, error) {
	var (
		lr                                             leave.LeaveRequest
		leaveType, startDate, endDate, status, request string
	)
	err := row.Scan(
		&lr.ID,
		&lr.EmployeeID,
		&leaveType,
		&startDate,
		&endDate,
		&lr.Reason,
		&status,
		&request,
		&lr.EmpID,
		&lr.FullName,
		&lr.DepartmentName,
	)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if lr.StartDate, err = parseDate(startDate); err != nil {
		return leave.LeaveRequest{}, err
	}
	if lr.EndDate, err = parseDate(endDate); err != nil {
		return leave.LeaveRequest{}, err
	}
	if lr.RequestedAt, err = parseTimestamp(request); err != nil {
		return leave.LeaveRequest{}, err
	}
	lr.LeaveType = leave.Type(leaveType)
	lr.Status = leave.Status(status)
	return lr, nil
}
