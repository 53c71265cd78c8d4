package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
)

type EmployeeServiceImpl struct {
	tx             database.Transactor
	employeeRepo   employee.EmployeeRepository
	departmentRepo department.DepartmentRepository
	clock          clock.Clock
}

func NewEmployeeService(
	tx database.Transactor,
	employeeRepo employee.EmployeeRepository,
	departmentRepo department.DepartmentRepository,
	clk clock.Clock,
) employee.EmployeeService {
	if tx == nil {
		tx = database.NoopTransactor{}
	}
	if clk == nil {
		clk = clock.Real()
	}
	return &EmployeeServiceImpl{
		tx:             tx,
		employeeRepo:   employeeRepo,
		departmentRepo: departmentRepo,
		clock:          clk,
	}
}

// AddEmployee creates an active employee. An unknown department_id is stored as NULL.
func (s *EmployeeServiceImpl) AddEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}
	joinDate, _ := validator.IsValidDate(req.JoinDate)

	id, err := uuid.NewV7()
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to generate employee id: %w", err)
	}

	var created employee.Employee
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		departmentID := req.DepartmentID
		if departmentID != nil {
			exists, err := s.departmentRepo.Exists(ctx, *departmentID)
			if err != nil {
				return fmt.Errorf("failed to check department: %w", err)
			}
			if !exists {
				departmentID = nil
			}
		}

		created, err = s.employeeRepo.Create(ctx, employee.Employee{
			ID:           id.String(),
			EmpID:        req.EmpID,
			FullName:     req.FullName,
			Email:        req.Email,
			Phone:        req.Phone,
			DepartmentID: departmentID,
			Designation:  req.Designation,
			JoinDate:     joinDate,
			Status:       employee.StatusActive,
			CreatedAt:    s.clock.Now(),
		})
		return err
	})
	if err != nil {
		if !errors.Is(err, employee.ErrEmployeeExists) {
			slog.Error("failed to add employee", "emp_id", req.EmpID, "error", err)
		}
		return employee.EmployeeResponse{}, database.WrapStoreError("add employee", "error adding employee", err, employee.ErrEmployeeExists)
	}

	return employee.NewEmployeeResponse(created), nil
}

func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, req employee.ListEmployeesRequest) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.ListActive(ctx, req.Filter())
	if err != nil {
		slog.Error("failed to list employees", "error", err)
		return nil, database.WrapStoreError("list employees", "error loading employees", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, employee.NewEmployeeResponse(e))
	}
	return responses, nil
}
