package postgresql

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	empUUID  = "01900000-0000-7000-8000-0000000000a1"
	deptUUID = "01900000-0000-7000-8000-000000000002"
	leaveID  = "01900000-0000-7000-8000-0000000000f1"
)

func newMock(t *testing.T) (pgxmock.PgxPoolIface, *database.DB) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, database.NewDB(mock)
}

func ptr(s string) *string { return &s }

var employeeColumns = []string{
	"id", "emp_id", "full_name", "email", "phone", "department_id", "designation",
	"join_date", "status", "created_at", "dept_name",
}

func TestDepartmentRepository_List(t *testing.T) {
	t.Parallel()
	mock, db := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, dept_name FROM departments ORDER BY dept_name`)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "dept_name"}).
			AddRow(deptUUID, "Engineering").
			AddRow("01900000-0000-7000-8000-000000000001", "Human Resources"))

	got, err := NewDepartmentRepository(db).List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Engineering", got[0].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDepartmentRepository_Exists_NonUUIDSkipsQuery(t *testing.T) {
	t.Parallel()
	mock, db := newMock(t)

	exists, err := NewDepartmentRepository(db).Exists(context.Background(), "engineering")
	require.NoError(t, err)
	assert.False(t, exists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepository_Create_UniqueViolation(t *testing.T) {
	t.Parallel()
	mock, db := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO employees`)).
		WithArgs(pgxmock.AnyArg(), "E1", "Ann Lee", "ann@x.com", pgxmock.AnyArg(), pgxmock.AnyArg(),
			"Engineer", pgxmock.AnyArg(), "active", pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "employees_email_key"})

	_, err := NewEmployeeRepository(db).Create(context.Background(), employee.Employee{
		ID:          empUUID,
		EmpID:       "E1",
		FullName:    "Ann Lee",
		Email:       "ann@x.com",
		Designation: "Engineer",
		JoinDate:    time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC),
		Status:      employee.StatusActive,
		CreatedAt:   time.Now(),
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeExists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepository_GetByID(t *testing.T) {
	t.Parallel()
	mock, db := newMock(t)
	repo := NewEmployeeRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE e.id = $1`)).
		WithArgs(empUUID).
		WillReturnRows(pgxmock.NewRows(employeeColumns).
			AddRow(empUUID, "E1", "Ann Lee", "ann@x.com", nil, ptr(deptUUID), "Engineer", now, "active", now, ptr("Engineering")))

	got, err := repo.GetByID(context.Background(), empUUID)
	require.NoError(t, err)
	assert.Equal(t, "E1", got.EmpID)
	assert.True(t, got.IsActive())
	require.NotNil(t, got.DepartmentName)
	assert.Equal(t, "Engineering", *got.DepartmentName)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE e.id = $1`)).
		WithArgs(empUUID).
		WillReturnError(pgx.ErrNoRows)
	_, err = repo.GetByID(context.Background(), empUUID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	_, err = repo.GetByID(context.Background(), "E1")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepository_ListActive_BindsFilters(t *testing.T) {
	t.Parallel()
	mock, db := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		`WHERE e.status = $1 AND e.department_id = $2 AND (LOWER(e.emp_id) LIKE $3 ESCAPE '\' OR LOWER(e.full_name) LIKE $3 ESCAPE '\' OR LOWER(e.email) LIKE $3 ESCAPE '\') ORDER BY e.emp_id`)).
		WithArgs("active", deptUUID, `%e\_1%`).
		WillReturnRows(pgxmock.NewRows(employeeColumns))

	got, err := NewEmployeeRepository(db).ListActive(context.Background(), employee.EmployeeFilter{
		DepartmentID: deptUUID,
		Search:       "E_1",
	})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepository_Upsert(t *testing.T) {
	t.Parallel()
	mock, db := newMock(t)

	date := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	created := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	updated := created.Add(30 * time.Minute)
	checkIn := attendance.TimeOfDay{Hour: 9, Minute: 30}

	mock.ExpectQuery(`ON CONFLICT \(employee_id, attendance_date\) DO UPDATE`).
		WithArgs(empUUID, date, pgxmock.AnyArg(), pgxmock.AnyArg(), "late", pgxmock.AnyArg(), "Supervisor", updated, updated).
		WillReturnRows(pgxmock.NewRows([]string{
			"employee_id", "attendance_date", "check_in", "check_out", "status", "remarks", "marked_by", "created_at", "updated_at",
		}).AddRow(empUUID, date, ptr("09:30:00"), nil, "late", nil, "Admin", created, updated))

	got, err := NewAttendanceRepository(db).Upsert(context.Background(), attendance.Record{
		EmployeeID: empUUID,
		Date:       date,
		CheckIn:    &checkIn,
		Status:     attendance.StatusLate,
		MarkedBy:   "Supervisor",
		CreatedAt:  updated,
		UpdatedAt:  updated,
	})
	require.NoError(t, err)
	assert.Equal(t, "Admin", got.MarkedBy, "marked_by keeps the first writer")
	require.NotNil(t, got.CheckIn)
	assert.Equal(t, "09:30", got.CheckIn.String())
	assert.Nil(t, got.CheckOut)
	assert.Equal(t, created, got.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepository_ListByDate(t *testing.T) {
	t.Parallel()
	mock, db := newMock(t)
	date := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE a.attendance_date = $1 AND e.department_id = $2`)).
		WithArgs(date, deptUUID).
		WillReturnRows(pgxmock.NewRows([]string{
			"employee_id", "attendance_date", "check_in", "check_out", "status", "remarks", "marked_by",
			"created_at", "updated_at", "emp_id", "full_name", "dept_name",
		}).AddRow(empUUID, date, ptr("09:00:00"), ptr("17:00:00"), "present", ptr("ok"), "Admin", now, now, "E1", "Ann Lee", ptr("Engineering")))

	got, err := NewAttendanceRepository(db).ListByDate(context.Background(), attendance.AttendanceFilter{
		Date:         date,
		DepartmentID: deptUUID,
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "E1", got[0].EmpID)
	assert.Equal(t, "17:00", got[0].CheckOut.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLeaveRequestRepository_UpdateStatus(t *testing.T) {
	t.Parallel()
	mock, db := newMock(t)
	repo := NewLeaveRequestRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE leave_requests SET status = $1 WHERE id = $2`)).
		WithArgs("approved", leaveID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	require.NoError(t, repo.UpdateStatus(context.Background(), leaveID, leave.StatusApproved))

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE leave_requests SET status = $1 WHERE id = $2`)).
		WithArgs("approved", leaveID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	assert.ErrorIs(t, repo.UpdateStatus(context.Background(), leaveID, leave.StatusApproved), leave.ErrLeaveRequestNotFound)

	assert.ErrorIs(t, repo.UpdateStatus(context.Background(), "42", leave.StatusApproved), leave.ErrLeaveRequestNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLeaveRequestRepository_ListRecent(t *testing.T) {
	t.Parallel()
	mock, db := newMock(t)
	now := time.Now().UTC()
	day := time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY lr.requested_at DESC, lr.id DESC`)).
		WithArgs(10).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "employee_id", "leave_type", "start_date", "end_date", "reason", "status", "requested_at",
			"emp_id", "full_name", "dept_name",
		}).AddRow(leaveID, empUUID, "sick", day, day, "flu", "pending", now, "E1", "Ann Lee", nil))

	got, err := NewLeaveRequestRepository(db).ListRecent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, leave.TypeSick, got[0].LeaveType)
	assert.Equal(t, leave.StatusPending, got[0].Status)
	assert.Nil(t, got[0].DepartmentName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardRepository_Counts(t *testing.T) {
	t.Parallel()
	mock, db := newMock(t)
	repo := NewDashboardRepository(db)
	date := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM employees WHERE status = 'active'`)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(3)))
	mock.ExpectQuery(regexp.QuoteMeta(`COUNT(DISTINCT department_id)`)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(2)))
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE attendance_date = $1 AND status = $2`)).
		WithArgs(date, "present").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(1)))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM attendance WHERE attendance_date = $1`)).
		WithArgs(date).
		WillReturnError(errors.New("connection reset"))

	ctx := context.Background()
	n, err := repo.CountActiveEmployees(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	n, err = repo.CountActiveDepartments(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = repo.CountAttendanceByStatus(ctx, date, "present")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = repo.CountAttendance(ctx, date)
	assert.Error(t, err)

	require.NoError(t, mock.ExpectationsWereMet())
}
