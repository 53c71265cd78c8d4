package sqlite_test

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/sqlite"
	attendanceService "github.com/cmlabs-hris/attendance-backend-go/internal/service/attendance"
	dashboardService "github.com/cmlabs-hris/attendance-backend-go/internal/service/dashboard"
	departmentService "github.com/cmlabs-hris/attendance-backend-go/internal/service/department"
	employeeService "github.com/cmlabs-hris/attendance-backend-go/internal/service/employee"
	leaveService "github.com/cmlabs-hris/attendance-backend-go/internal/service/leave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const engineeringID = "01900000-0000-7000-8000-000000000002"

// steppingClock advances one second per call so timestamps are distinct.
type steppingClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *steppingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

type services struct {
	employees  employee.EmployeeService
	attendance attendance.AttendanceService
	leave      leave.LeaveService
	dashboard  dashboard.DashboardService
}

func setup(t *testing.T) (*database.SQLiteDB, services) {
	t.Helper()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "attendance.db")
	require.NoError(t, database.RunMigration("up", database.DriverSQLite, path))

	db, err := database.NewSQLiteDB(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	clk := &steppingClock{t: time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)}

	employeeRepo := sqlite.NewEmployeeRepository(db)
	departmentRepo := sqlite.NewDepartmentRepository(db)

	svc := services{
		employees:  employeeService.NewEmployeeService(db, employeeRepo, departmentRepo, clk),
		attendance: attendanceService.NewAttendanceService(db, sqlite.NewAttendanceRepository(db), employeeRepo, clk),
		leave:      leaveService.NewLeaveService(db, sqlite.NewLeaveRequestRepository(db), employeeRepo, clk),
		dashboard:  dashboardService.NewDashboardService(sqlite.NewDashboardRepository(db), clk, time.UTC),
	}
	return db, svc
}

func addAnn(t *testing.T, svc services) employee.EmployeeResponse {
	t.Helper()

	dept := engineeringID
	emp, err := svc.employees.AddEmployee(context.Background(), employee.CreateEmployeeRequest{
		EmpID:        "E100",
		FullName:     "Ann",
		Email:        "ann@x.io",
		DepartmentID: &dept,
		Designation:  "Engineer",
		JoinDate:     "2024-01-02",
	})
	require.NoError(t, err)
	return emp
}

func ptr(s string) *string { return &s }

func TestDepartments_Seeded(t *testing.T) {
	db, _ := setup(t)

	depts, err := departmentService.NewDepartmentService(sqlite.NewDepartmentRepository(db)).ListDepartments(context.Background())
	require.NoError(t, err)
	require.Len(t, depts, 6)

	names := make([]string, 0, len(depts))
	for _, d := range depts {
		names = append(names, d.Name)
	}
	assert.IsIncreasing(t, names)
}

func TestEmployees_AddAndDuplicate(t *testing.T) {
	_, svc := setup(t)
	ctx := context.Background()

	ann := addAnn(t, svc)
	assert.Equal(t, "active", ann.Status)
	require.NotNil(t, ann.DepartmentID)
	assert.Equal(t, engineeringID, *ann.DepartmentID)

	_, err := svc.employees.AddEmployee(ctx, employee.CreateEmployeeRequest{
		EmpID: "E100", FullName: "Other", Email: "other@x.io", Designation: "QA", JoinDate: "2024-01-03",
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeExists)

	_, err = svc.employees.AddEmployee(ctx, employee.CreateEmployeeRequest{
		EmpID: "E200", FullName: "Other", Email: "ann@x.io", Designation: "QA", JoinDate: "2024-01-03",
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeExists)

	all, err := svc.employees.ListEmployees(ctx, employee.ListEmployeesRequest{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, ann.ID, all[0].ID)
	require.NotNil(t, all[0].DepartmentName)
	assert.Equal(t, "Engineering", *all[0].DepartmentName)
}

func TestEmployees_UnknownDepartmentStoredAsNull(t *testing.T) {
	_, svc := setup(t)

	emp, err := svc.employees.AddEmployee(context.Background(), employee.CreateEmployeeRequest{
		EmpID: "E7", FullName: "Bo", Email: "bo@x.io", DepartmentID: ptr("no-such-dept"), Designation: "Ops", JoinDate: "2024-02-01",
	})
	require.NoError(t, err)
	assert.Nil(t, emp.DepartmentID)
}

func TestEmployees_Search(t *testing.T) {
	_, svc := setup(t)
	ctx := context.Background()
	ann := addAnn(t, svc)

	found, err := svc.employees.ListEmployees(ctx, employee.ListEmployeesRequest{Search: "e100"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, ann.ID, found[0].ID)

	found, err = svc.employees.ListEmployees(ctx, employee.ListEmployeesRequest{Search: "nomatch"})
	require.NoError(t, err)
	assert.Empty(t, found)

	found, err = svc.employees.ListEmployees(ctx, employee.ListEmployeesRequest{Search: "%"})
	require.NoError(t, err)
	assert.Empty(t, found, "wildcards match literally")

	found, err = svc.employees.ListEmployees(ctx, employee.ListEmployeesRequest{DepartmentID: engineeringID})
	require.NoError(t, err)
	assert.Len(t, found, 1)

	emile, err := svc.employees.AddEmployee(ctx, employee.CreateEmployeeRequest{
		EmpID: "E300", FullName: "Émile Zoë", Email: "emile@x.io", Designation: "Designer", JoinDate: "2024-03-01",
	})
	require.NoError(t, err)

	for _, term := range []string{"émile", "ÉMILE", "zoë", "ZOË"} {
		found, err = svc.employees.ListEmployees(ctx, employee.ListEmployeesRequest{Search: term})
		require.NoError(t, err)
		require.Len(t, found, 1, "search %q", term)
		assert.Equal(t, emile.ID, found[0].ID)
	}
}

func TestAttendance_UpsertKeepsOneRecord(t *testing.T) {
	_, svc := setup(t)
	ctx := context.Background()
	ann := addAnn(t, svc)

	first, err := svc.attendance.MarkAttendance(ctx, attendance.MarkAttendanceRequest{
		EmployeeID: ann.ID, Date: "2024-01-10", Status: "present", CheckIn: ptr("09:00"), CheckOut: ptr("17:00"),
	}, "Admin")
	require.NoError(t, err)
	assert.Equal(t, "present", first.Status)
	require.NotNil(t, first.CheckOut)
	assert.Equal(t, "17:00", *first.CheckOut)

	second, err := svc.attendance.MarkAttendance(ctx, attendance.MarkAttendanceRequest{
		EmployeeID: ann.ID, Date: "2024-01-10", Status: "late", CheckIn: ptr("09:30"),
	}, "Someone Else")
	require.NoError(t, err)
	assert.Equal(t, "late", second.Status)
	assert.Nil(t, second.CheckOut)
	assert.Equal(t, "Admin", second.MarkedBy)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)

	records, err := svc.attendance.ListAttendance(ctx, attendance.ListAttendanceRequest{Date: "2024-01-10"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "late", records[0].Status)
	require.NotNil(t, records[0].CheckIn)
	assert.Equal(t, "09:30", *records[0].CheckIn)
	assert.Nil(t, records[0].CheckOut)
	assert.Equal(t, "E100", records[0].EmpID)

	other, err := svc.attendance.ListAttendance(ctx, attendance.ListAttendanceRequest{Date: "2024-01-11"})
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestAttendance_ConcurrentMarksKeepOneRecord(t *testing.T) {
	_, svc := setup(t)
	ctx := context.Background()
	ann := addAnn(t, svc)

	first, err := svc.attendance.MarkAttendance(ctx, attendance.MarkAttendanceRequest{
		EmployeeID: ann.ID, Date: "2024-01-10", Status: "present",
	}, "First Marker")
	require.NoError(t, err)

	const writers = 20
	errs := make([]error, writers)
	var wg sync.WaitGroup
	for i := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = svc.attendance.MarkAttendance(ctx, attendance.MarkAttendanceRequest{
				EmployeeID: ann.ID, Date: "2024-01-10", Status: "late", CheckIn: ptr("09:15"),
			}, fmt.Sprintf("Marker %d", i))
		}()
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "writer %d", i)
	}

	records, err := svc.attendance.ListAttendance(ctx, attendance.ListAttendanceRequest{Date: "2024-01-10"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, ann.ID, records[0].EmployeeID)
	assert.Equal(t, first.CreatedAt, records[0].CreatedAt)
	assert.Equal(t, "First Marker", records[0].MarkedBy)
	assert.Equal(t, "late", records[0].Status)
}

func TestAttendance_UnknownEmployee(t *testing.T) {
	_, svc := setup(t)

	_, err := svc.attendance.MarkAttendance(context.Background(), attendance.MarkAttendanceRequest{
		EmployeeID: "missing", Date: "2024-01-10", Status: "present",
	}, "Admin")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestLeave_SubmitApproveAndRecent(t *testing.T) {
	db, svc := setup(t)
	ctx := context.Background()
	ann := addAnn(t, svc)

	submitted, err := svc.leave.SubmitLeaveRequest(ctx, leave.CreateLeaveRequestRequest{
		EmployeeID: ann.ID, LeaveType: "sick", StartDate: "2024-01-15", EndDate: "2024-01-16", Reason: "flu",
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", submitted.Status)

	later, err := svc.leave.SubmitLeaveRequest(ctx, leave.CreateLeaveRequestRequest{
		EmployeeID: ann.ID, LeaveType: "annual", StartDate: "2024-02-01", EndDate: "2024-02-05", Reason: "trip",
	})
	require.NoError(t, err)

	require.NoError(t, svc.leave.UpdateLeaveStatus(ctx, leave.UpdateLeaveStatusRequest{ID: submitted.ID, Status: "approved"}))

	recent, err := svc.leave.RecentLeaveRequests(ctx, 0)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, later.ID, recent[0].ID, "newest first")
	assert.Equal(t, submitted.ID, recent[1].ID)
	assert.Equal(t, "approved", recent[1].Status)
	assert.Equal(t, "Ann", recent[1].FullName)

	one, err := svc.leave.RecentLeaveRequests(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, one, 1)

	err = svc.leave.UpdateLeaveStatus(ctx, leave.UpdateLeaveStatusRequest{ID: "does-not-exist", Status: "approved"})
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)

	var count int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM leave_requests`).Scan(&count))
	assert.Equal(t, 2, count)
}

func TestDashboard_Counts(t *testing.T) {
	_, svc := setup(t)
	ctx := context.Background()
	date := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	before, err := svc.dashboard.GetStatsForDate(ctx, date)
	require.NoError(t, err)
	assert.Zero(t, before.TotalEmployees)

	ann := addAnn(t, svc)
	_, err = svc.attendance.MarkAttendance(ctx, attendance.MarkAttendanceRequest{
		EmployeeID: ann.ID, Date: "2024-01-10", Status: "present",
	}, "Admin")
	require.NoError(t, err)

	after, err := svc.dashboard.GetStatsForDate(ctx, date)
	require.NoError(t, err)
	assert.Equal(t, before.TotalEmployees+1, after.TotalEmployees)
	assert.Equal(t, int64(1), after.Departments)
	assert.Equal(t, int64(1), after.TodayAttendance)
	assert.Equal(t, int64(1), after.PresentToday)
	assert.Equal(t, "2024-01-10", after.Date)
}
