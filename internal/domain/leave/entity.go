package leave

import "time"

type Type string

const (
	TypeSick   Type = "sick"
	TypeCasual Type = "casual"
	TypeAnnual Type = "annual"
	TypeUnpaid Type = "unpaid"
)

var Types = []string{string(TypeSick), string(TypeCasual), string(TypeAnnual), string(TypeUnpaid)}

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

var Statuses = []string{string(StatusPending), string(StatusApproved), string(StatusRejected)}

type LeaveRequest struct {
	ID          string
	EmployeeID  string
	LeaveType   Type
	StartDate   time.Time
	EndDate     time.Time
	Reason      string
	Status      Status
	RequestedAt time.Time

	// Joined
	EmpID          string
	FullName       string
	DepartmentName *string
}
