package postgresql

import (
	"context"
	"errors"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/predicate"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeSelect = `
	SELECT e.id, e.emp_id, e.full_name, e.email, e.phone, e.department_id, e.designation,
		   e.join_date, e.status, e.created_at, d.dept_name
	FROM employees e
	LEFT JOIN departments d ON d.id = e.department_id`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var (
		e      employee.Employee
		status string
	)
	err := row.Scan(
		&e.ID,
		&e.EmpID,
		&e.FullName,
		&e.Email,
		&e.Phone,
		&e.DepartmentID,
		&e.Designation,
		&e.JoinDate,
		&status,
		&e.CreatedAt,
		&e.DepartmentName,
	)
	if err != nil {
		return employee.Employee{}, err
	}
	e.Status = employee.Status(status)
	return e, nil
}

func (r *employeeRepositoryImpl) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (id, emp_id, full_name, email, phone, department_id, designation, join_date, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := q.Exec(ctx, query,
		e.ID,
		e.EmpID,
		e.FullName,
		e.Email,
		e.Phone,
		e.DepartmentID,
		e.Designation,
		e.JoinDate,
		string(e.Status),
		e.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return employee.Employee{}, employee.ErrEmployeeExists
		}
		return employee.Employee{}, err
	}

	return e, nil
}

func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	if !isUUID(id) {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	q := GetQuerier(ctx, r.db)

	e, err := scanEmployee(q.QueryRow(ctx, employeeSelect+` WHERE e.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	return e, nil
}

func (r *employeeRepositoryImpl) ListActive(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, error) {
	conditions := []predicate.Predicate{
		predicate.Eq{Column: "e.status", Value: string(employee.StatusActive)},
	}
	if filter.DepartmentID != "" {
		if !isUUID(filter.DepartmentID) {
			return []employee.Employee{}, nil
		}
		conditions = append(conditions, predicate.Eq{Column: "e.department_id", Value: filter.DepartmentID})
	}
	if filter.Search != "" {
		conditions = append(conditions, predicate.ContainsFold{
			Columns: []string{"e.emp_id", "e.full_name", "e.email"},
			Term:    filter.Search,
		})
	}

	where, args, err := predicate.Where(predicate.Postgres, predicate.And(conditions...), 0)
	if err != nil {
		return nil, err
	}

	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, employeeSelect+where+` ORDER BY e.emp_id`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := []employee.Employee{}
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}
