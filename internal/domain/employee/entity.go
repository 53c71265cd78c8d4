package employee

import "time"

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

type Employee struct {
	ID           string
	EmpID        string
	FullName     string
	Email        string
	Phone        *string
	DepartmentID *string
	Designation  string
	JoinDate     time.Time
	Status       Status
	CreatedAt    time.Time

	// Joined
	DepartmentName *string
}

func (e Employee) IsActive() bool {
	return e.Status == StatusActive
}
