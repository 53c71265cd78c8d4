package department

import (
	"context"
	"log/slog"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
)

type DepartmentServiceImpl struct {
	departmentRepo department.DepartmentRepository
}

func NewDepartmentService(departmentRepo department.DepartmentRepository) department.DepartmentService {
	return &DepartmentServiceImpl{departmentRepo: departmentRepo}
}

func (s *DepartmentServiceImpl) ListDepartments(ctx context.Context) ([]department.DepartmentResponse, error) {
	departments, err := s.departmentRepo.List(ctx)
	if err != nil {
		slog.Error("failed to list departments", "error", err)
		return nil, database.WrapStoreError("list departments", "error loading departments", err)
	}

	responses := make([]department.DepartmentResponse, 0, len(departments))
	for _, d := range departments {
		responses = append(responses, department.NewDepartmentResponse(d))
	}
	return responses, nil
}
