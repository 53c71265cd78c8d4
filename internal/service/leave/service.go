package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
)

type LeaveServiceImpl struct {
	tx               database.Transactor
	leaveRequestRepo leave.LeaveRequestRepository
	employeeRepo     employee.EmployeeRepository
	clock            clock.Clock
}

func NewLeaveService(
	tx database.Transactor,
	leaveRequestRepo leave.LeaveRequestRepository,
	employeeRepo employee.EmployeeRepository,
	clk clock.Clock,
) leave.LeaveService {
	if tx == nil {
		tx = database.NoopTransactor{}
	}
	if clk == nil {
		clk = clock.Real()
	}
	return &LeaveServiceImpl{
		tx:               tx,
		leaveRequestRepo: leaveRequestRepo,
		employeeRepo:     employeeRepo,
		clock:            clk,
	}
}

func (s *LeaveServiceImpl) SubmitLeaveRequest(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	startDate, _ := validator.IsValidDate(req.StartDate)
	endDate, _ := validator.IsValidDate(req.EndDate)

	id, err := uuid.NewV7()
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to generate leave request id: %w", err)
	}

	var created leave.LeaveRequest
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
			return err
		}

		created, err = s.leaveRequestRepo.Create(ctx, leave.LeaveRequest{
			ID:          id.String(),
			EmployeeID:  req.EmployeeID,
			LeaveType:   leave.Type(req.LeaveType),
			StartDate:   startDate,
			EndDate:     endDate,
			Reason:      req.Reason,
			Status:      leave.StatusPending,
			RequestedAt: s.clock.Now(),
		})
		return err
	})
	if err != nil {
		if !errors.Is(err, employee.ErrEmployeeNotFound) {
			slog.Error("failed to submit leave request", "employee_id", req.EmployeeID, "error", err)
		}
		return leave.LeaveRequestResponse{}, database.WrapStoreError("submit leave request", "error submitting leave request", err, employee.ErrEmployeeNotFound)
	}

	return leave.NewLeaveRequestResponse(created), nil
}

// UpdateLeaveStatus sets any valid status regardless of the current one.
func (s *LeaveServiceImpl) UpdateLeaveStatus(ctx context.Context, req leave.UpdateLeaveStatusRequest) error {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return err
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		return s.leaveRequestRepo.UpdateStatus(ctx, req.ID, leave.Status(req.Status))
	})
	if err != nil {
		if !errors.Is(err, leave.ErrLeaveRequestNotFound) {
			slog.Error("failed to update leave request", "leave_request_id", req.ID, "status", req.Status, "error", err)
		}
		return database.WrapStoreError("update leave request", "error updating leave request", err, leave.ErrLeaveRequestNotFound)
	}

	slog.Info("leave request status updated", "leave_request_id", req.ID, "status", req.Status)
	return nil
}

func (s *LeaveServiceImpl) RecentLeaveRequests(ctx context.Context, limit int) ([]leave.LeaveRequestResponse, error) {
	requests, err := s.leaveRequestRepo.ListRecent(ctx, leave.ClampRecentLimit(limit))
	if err != nil {
		slog.Error("failed to list recent leave requests", "error", err)
		return nil, database.WrapStoreError("list recent leave requests", "error loading leave requests", err)
	}

	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, lr := range requests {
		responses = append(responses, leave.NewLeaveRequestResponse(lr))
	}
	return responses, nil
}
