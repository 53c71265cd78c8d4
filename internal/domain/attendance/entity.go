package attendance

import "time"

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusLate    Status = "late"
	StatusLeave   Status = "leave"
	StatusHalfDay Status = "half_day"
)

var Statuses = []string{
	string(StatusPresent),
	string(StatusAbsent),
	string(StatusLate),
	string(StatusLeave),
	string(StatusHalfDay),
}

// Record is keyed by (EmployeeID, Date). MarkedBy is set on first insert only.
type Record struct {
	EmployeeID string
	Date       time.Time
	CheckIn    *TimeOfDay
	CheckOut   *TimeOfDay
	Status     Status
	Remarks    *string
	MarkedBy   string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Joined
	EmpID          string
	FullName       string
	DepartmentName *string
}
