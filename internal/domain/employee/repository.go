package employee

import "context"

type EmployeeRepository interface {
	// Create inserts e. A duplicate emp_id or email yields ErrEmployeeExists.
	Create(ctx context.Context, e Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	// ListActive returns active employees matching filter ordered by emp_id.
	ListActive(ctx context.Context, filter EmployeeFilter) ([]Employee, error)
}
