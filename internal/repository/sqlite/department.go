package sqlite

import (
	"context"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
)

type departmentRepositoryImpl struct {
	db *database.SQLiteDB
}

func NewDepartmentRepository(db *database.SQLiteDB) department.DepartmentRepository {
	return &departmentRepositoryImpl{db: db}
}

func (r *departmentRepositoryImpl) List(ctx context.Context) ([]department.Department, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.QueryContext(ctx, `SELECT id, dept_name FROM departments ORDER BY dept_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	departments := []department.Department{}
	for rows.Next() {
		var d department.Department
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			return nil, err
		}
		departments = append(departments, d)
	}
	return departments, rows.Err()
}

func (r *departmentRepositoryImpl) Exists(ctx context.Context, id string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM departments WHERE id = ?1)`, id).Scan(&exists)
	return exists, err
}
