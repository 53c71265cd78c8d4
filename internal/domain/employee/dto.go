package employee

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	EmpID        string  `json:"emp_id"`
	FullName     string  `json:"full_name"`
	Email        string  `json:"email"`
	Phone        *string `json:"phone,omitempty"`
	DepartmentID *string `json:"department_id,omitempty"`
	Designation  string  `json:"designation"`
	JoinDate     string  `json:"join_date"`
}

// Normalize trims every text field. Blank optional fields become nil.
func (r *CreateEmployeeRequest) Normalize() {
	r.EmpID = strings.TrimSpace(r.EmpID)
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = validator.TrimOptional(r.Phone)
	r.DepartmentID = validator.TrimOptional(r.DepartmentID)
	r.Designation = strings.TrimSpace(r.Designation)
	r.JoinDate = strings.TrimSpace(r.JoinDate)
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmpID) {
		errs.Add("emp_id", "emp_id is required")
	}
	if validator.IsEmpty(r.FullName) {
		errs.Add("full_name", "full_name is required")
	}
	if validator.IsEmpty(r.Email) {
		errs.Add("email", "email is required")
	}
	if validator.IsEmpty(r.Designation) {
		errs.Add("designation", "designation is required")
	}
	if validator.IsEmpty(r.JoinDate) {
		errs.Add("join_date", "join_date is required")
	} else if _, ok := validator.IsValidDate(r.JoinDate); !ok {
		errs.Add("join_date", "join_date must be in YYYY-MM-DD format")
	}

	return errs.Err()
}

type ListEmployeesRequest struct {
	DepartmentID string
	Search       string
}

// EmployeeFilter restricts an employee listing. Empty fields do not restrict.
type EmployeeFilter struct {
	DepartmentID string
	Search       string
}

func (r ListEmployeesRequest) Filter() EmployeeFilter {
	return EmployeeFilter{
		DepartmentID: strings.TrimSpace(r.DepartmentID),
		Search:       strings.TrimSpace(r.Search),
	}
}

type EmployeeResponse struct {
	ID             string  `json:"id"`
	EmpID          string  `json:"emp_id"`
	FullName       string  `json:"full_name"`
	Email          string  `json:"email"`
	Phone          *string `json:"phone"`
	DepartmentID   *string `json:"department_id"`
	DepartmentName *string `json:"dept_name"`
	Designation    string  `json:"designation"`
	JoinDate       string  `json:"join_date"`
	Status         string  `json:"status"`
	CreatedAt      string  `json:"created_at"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:             e.ID,
		EmpID:          e.EmpID,
		FullName:       e.FullName,
		Email:          e.Email,
		Phone:          e.Phone,
		DepartmentID:   e.DepartmentID,
		DepartmentName: e.DepartmentName,
		Designation:    e.Designation,
		JoinDate:       e.JoinDate.Format(validator.DateLayout),
		Status:         string(e.Status),
		CreatedAt:      e.CreatedAt.UTC().Format(time.RFC3339),
	}
}
