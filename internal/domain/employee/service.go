package employee

import "context"

type EmployeeService interface {
	AddEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	ListEmployees(ctx context.Context, req ListEmployeesRequest) ([]EmployeeResponse, error)
}
