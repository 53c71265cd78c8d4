package attendance

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	tx             database.Transactor
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	clock          clock.Clock
}

func NewAttendanceService(
	tx database.Transactor,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	clk clock.Clock,
) attendance.AttendanceService {
	if tx == nil {
		tx = database.NoopTransactor{}
	}
	if clk == nil {
		clk = clock.Real()
	}
	return &AttendanceServiceImpl{
		tx:             tx,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		clock:          clk,
	}
}

// MarkAttendance records the employee's attendance for a date. A second mark
// for the same date overwrites times, status and remarks; marked_by keeps the
// first caller.
func (s *AttendanceServiceImpl) MarkAttendance(ctx context.Context, req attendance.MarkAttendanceRequest, markedBy string) (attendance.AttendanceResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	markedBy = strings.TrimSpace(markedBy)
	if markedBy == "" {
		return attendance.AttendanceResponse{}, validator.ValidationErrors{
			{Field: "marked_by", Message: "marked_by is required"},
		}
	}

	record := req.ToRecord(markedBy)
	now := s.clock.Now()
	record.CreatedAt = now
	record.UpdatedAt = now

	var saved attendance.Record
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		emp, err := s.employeeRepo.GetByID(ctx, record.EmployeeID)
		if err != nil {
			return err
		}
		if !emp.IsActive() {
			return employee.ErrEmployeeNotFound
		}

		saved, err = s.attendanceRepo.Upsert(ctx, record)
		return err
	})
	if err != nil {
		if !errors.Is(err, employee.ErrEmployeeNotFound) {
			slog.Error("failed to mark attendance", "employee_id", record.EmployeeID, "date", req.Date, "error", err)
		}
		return attendance.AttendanceResponse{}, database.WrapStoreError("mark attendance", "error marking attendance", err, employee.ErrEmployeeNotFound)
	}

	return attendance.NewAttendanceResponse(saved), nil
}

func (s *AttendanceServiceImpl) ListAttendance(ctx context.Context, req attendance.ListAttendanceRequest) ([]attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	records, err := s.attendanceRepo.ListByDate(ctx, req.Filter())
	if err != nil {
		slog.Error("failed to list attendance", "date", req.Date, "error", err)
		return nil, database.WrapStoreError("list attendance", "error loading attendance", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, attendance.NewAttendanceResponse(r))
	}
	return responses, nil
}
