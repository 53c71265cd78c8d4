package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	// ErrEmployeeExists covers both emp_id and email; callers cannot tell which collided.
	ErrEmployeeExists = errors.New("employee id or email already exists")
)
