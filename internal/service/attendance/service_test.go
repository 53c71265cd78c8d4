package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployeeRepo struct{ employees map[string]employee.Employee }

func (f *fakeEmployeeRepo) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	return e, nil
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployeeRepo) ListActive(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, error) {
	return nil, nil
}

type recordKey struct {
	employeeID string
	date       string
}

// fakeAttendanceRepo mirrors the upsert contract of the real stores.
type fakeAttendanceRepo struct {
	records map[recordKey]attendance.Record
	err     error
	filter  attendance.AttendanceFilter
}

func (f *fakeAttendanceRepo) Upsert(ctx context.Context, r attendance.Record) (attendance.Record, error) {
	if f.err != nil {
		return attendance.Record{}, f.err
	}
	key := recordKey{r.EmployeeID, r.Date.Format("2006-01-02")}
	if existing, ok := f.records[key]; ok {
		existing.CheckIn = r.CheckIn
		existing.CheckOut = r.CheckOut
		existing.Status = r.Status
		existing.Remarks = r.Remarks
		existing.UpdatedAt = r.UpdatedAt
		f.records[key] = existing
		return existing, nil
	}
	f.records[key] = r
	return r, nil
}

func (f *fakeAttendanceRepo) ListByDate(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Record, error) {
	f.filter = filter
	if f.err != nil {
		return nil, f.err
	}
	var out []attendance.Record
	for key, r := range f.records {
		if key.date == filter.Date.Format("2006-01-02") {
			out = append(out, r)
		}
	}
	return out, nil
}

func ptr(s string) *string { return &s }

func setup(t *testing.T) (*fakeAttendanceRepo, attendance.AttendanceService, *time.Time) {
	t.Helper()
	now := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	repo := &fakeAttendanceRepo{records: map[recordKey]attendance.Record{}}
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {ID: "emp-1", EmpID: "E1", Status: employee.StatusActive},
		"emp-9": {ID: "emp-9", EmpID: "E9", Status: employee.StatusInactive},
	}}
	clk := &movingClock{now: &now}
	return repo, NewAttendanceService(nil, repo, employees, clk), &now
}

type movingClock struct{ now *time.Time }

func (m *movingClock) Now() time.Time { return *m.now }

func TestAttendanceService_MarkAttendance_UpsertKeepsMarkedBy(t *testing.T) {
	repo, svc, now := setup(t)
	ctx := context.Background()

	first, err := svc.MarkAttendance(ctx, attendance.MarkAttendanceRequest{
		EmployeeID: "emp-1", Date: "2024-01-10", Status: "present",
		CheckIn: ptr("09:00"), CheckOut: ptr("17:00"),
	}, "Admin")
	require.NoError(t, err)
	assert.Equal(t, "present", first.Status)
	assert.Equal(t, "09:00", *first.CheckIn)

	*now = now.Add(30 * time.Minute)
	second, err := svc.MarkAttendance(ctx, attendance.MarkAttendanceRequest{
		EmployeeID: "emp-1", Date: "2024-01-10", Status: "late",
		CheckIn: ptr("09:30"), CheckOut: ptr(""), Remarks: ptr("  bus  "),
	}, "Supervisor")
	require.NoError(t, err)

	require.Len(t, repo.records, 1)
	assert.Equal(t, "late", second.Status)
	assert.Equal(t, "09:30", *second.CheckIn)
	assert.Nil(t, second.CheckOut)
	assert.Equal(t, "bus", *second.Remarks)
	assert.Equal(t, "Admin", second.MarkedBy)
	assert.Equal(t, "2024-01-10T09:00:00Z", second.CreatedAt)
	assert.Equal(t, "2024-01-10T09:30:00Z", second.UpdatedAt)
}

func TestAttendanceService_MarkAttendance_Validation(t *testing.T) {
	repo, svc, _ := setup(t)
	ctx := context.Background()

	_, err := svc.MarkAttendance(ctx, attendance.MarkAttendanceRequest{
		EmployeeID: "emp-1", Date: "2024-01-10", Status: "vacation",
	}, "Admin")
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "status")

	_, err = svc.MarkAttendance(ctx, attendance.MarkAttendanceRequest{
		EmployeeID: "emp-1", Date: "2024-01-10", Status: "present",
	}, "   ")
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "marked_by")

	assert.Empty(t, repo.records)
}

func TestAttendanceService_MarkAttendance_UnknownOrInactiveEmployee(t *testing.T) {
	repo, svc, _ := setup(t)
	ctx := context.Background()

	for _, id := range []string{"emp-404", "emp-9"} {
		_, err := svc.MarkAttendance(ctx, attendance.MarkAttendanceRequest{
			EmployeeID: id, Date: "2024-01-10", Status: "present",
		}, "Admin")
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound, id)
	}
	assert.Empty(t, repo.records)
}

func TestAttendanceService_MarkAttendance_StoreFailure(t *testing.T) {
	repo, svc, _ := setup(t)
	repo.err = errors.New("deadlock detected")

	_, err := svc.MarkAttendance(context.Background(), attendance.MarkAttendanceRequest{
		EmployeeID: "emp-1", Date: "2024-01-10", Status: "present",
	}, "Admin")
	var storeErr *database.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "error marking attendance", storeErr.Message)
	assert.Equal(t, "mark attendance", storeErr.Op)
}

func TestAttendanceService_ListAttendance(t *testing.T) {
	repo, svc, _ := setup(t)
	ctx := context.Background()

	empty, err := svc.ListAttendance(ctx, attendance.ListAttendanceRequest{Date: "2024-01-10"})
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	_, err = svc.MarkAttendance(ctx, attendance.MarkAttendanceRequest{
		EmployeeID: "emp-1", Date: "2024-01-10", Status: "absent",
	}, "Admin")
	require.NoError(t, err)

	got, err := svc.ListAttendance(ctx, attendance.ListAttendanceRequest{Date: "2024-01-10", DepartmentID: " d-1 "})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "absent", got[0].Status)
	assert.Equal(t, "d-1", repo.filter.DepartmentID)

	_, err = svc.ListAttendance(ctx, attendance.ListAttendanceRequest{})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}
