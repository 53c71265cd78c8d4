package postgresql

import (
	"context"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (id, employee_id, leave_type, start_date, end_date, reason, status, requested_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := q.Exec(ctx, query,
		request.ID,
		request.EmployeeID,
		string(request.LeaveType),
		request.StartDate,
		request.EndDate,
		request.Reason,
		string(request.Status),
		request.RequestedAt,
	)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	return request, nil
}

func (r *leaveRequestRepositoryImpl) UpdateStatus(ctx context.Context, id string, status leave.Status) error {
	if !isUUID(id) {
		return leave.ErrLeaveRequestNotFound
	}
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE leave_requests SET status = $1 WHERE id = $2`, string(status), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
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
		LIMIT $1
	`
	rows, err := q.Query(ctx, query, limit)
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

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var (
		lr                leave.LeaveRequest
		leaveType, status string
	)
	err := row.Scan(
		&lr.ID,
		&lr.EmployeeID,
		&leaveType,
		&lr.StartDate,
		&lr.EndDate,
		&lr.Reason,
		&status,
		&lr.RequestedAt,
		&lr.EmpID,
		&lr.FullName,
		&lr.DepartmentName,
	)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	lr.LeaveType = leave.Type(leaveType)
	lr.Status = leave.Status(status)
	return lr, nil
}
