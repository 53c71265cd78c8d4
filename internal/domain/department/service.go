package department

import "context"

type DepartmentService interface {
	ListDepartments(ctx context.Context) ([]DepartmentResponse, error)
}
