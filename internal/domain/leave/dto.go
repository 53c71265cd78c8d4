package leave

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

const (
	DefaultRecentLimit = 10
	MaxRecentLimit     = 100
)

type CreateLeaveRequestRequest struct {
	EmployeeID string `json:"employee_id"`
	LeaveType  string `json:"leave_type"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Reason     string `json:"reason"`
}

func (r *CreateLeaveRequestRequest) Normalize() {
	r.EmployeeID = strings.TrimSpace(r.EmployeeID)
	r.LeaveType = strings.TrimSpace(r.LeaveType)
	r.StartDate = strings.TrimSpace(r.StartDate)
	r.EndDate = strings.TrimSpace(r.EndDate)
	r.Reason = strings.TrimSpace(r.Reason)
}

// Validate checks each field on its own; start_date after end_date is accepted.
func (r *CreateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "employee_id is required")
	}
	if validator.IsEmpty(r.LeaveType) {
		errs.Add("leave_type", "leave_type is required")
	} else if !validator.IsInSlice(r.LeaveType, Types) {
		errs.Add("leave_type", "leave_type must be one of: "+strings.Join(Types, ", "))
	}
	if validator.IsEmpty(r.StartDate) {
		errs.Add("start_date", "start_date is required")
	} else if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
	}
	if validator.IsEmpty(r.EndDate) {
		errs.Add("end_date", "end_date is required")
	} else if _, ok := validator.IsValidDate(r.EndDate); !ok {
		errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
	}
	if validator.IsEmpty(r.Reason) {
		errs.Add("reason", "reason is required")
	}

	return errs.Err()
}

type UpdateLeaveStatusRequest struct {
	ID     string `json:"-"`
	Status string `json:"status"`
}

func (r *UpdateLeaveStatusRequest) Normalize() {
	r.ID = strings.TrimSpace(r.ID)
	r.Status = strings.TrimSpace(r.Status)
}

func (r *UpdateLeaveStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	if validator.IsEmpty(r.Status) {
		errs.Add("status", "status is required")
	} else if !validator.IsInSlice(r.Status, Statuses) {
		errs.Add("status", "status must be one of: "+strings.Join(Statuses, ", "))
	}

	return errs.Err()
}

// ClampRecentLimit maps non-positive limits to the default and caps the rest.
func ClampRecentLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultRecentLimit
	case limit > MaxRecentLimit:
		return MaxRecentLimit
	default:
		return limit
	}
}

type LeaveRequestResponse struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"employee_id"`
	EmpID          string  `json:"emp_id,omitempty"`
	FullName       string  `json:"full_name,omitempty"`
	DepartmentName *string `json:"dept_name,omitempty"`
	LeaveType      string  `json:"leave_type"`
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	Reason         string  `json:"reason"`
	Status         string  `json:"status"`
	RequestedAt    string  `json:"requested_at"`
}

func NewLeaveRequestResponse(lr LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:             lr.ID,
		EmployeeID:     lr.EmployeeID,
		EmpID:          lr.EmpID,
		FullName:       lr.FullName,
		DepartmentName: lr.DepartmentName,
		LeaveType:      string(lr.LeaveType),
		StartDate:      lr.StartDate.Format(validator.DateLayout),
		EndDate:        lr.EndDate.Format(validator.DateLayout),
		Reason:         lr.Reason,
		Status:         string(lr.Status),
		RequestedAt:    lr.RequestedAt.UTC().Format(time.RFC3339),
	}
}
