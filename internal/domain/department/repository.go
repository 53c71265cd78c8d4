package department

import "context"

type DepartmentRepository interface {
	// List returns every department ordered by name.
	List(ctx context.Context) ([]Department, error)
	Exists(ctx context.Context, id string) (bool, error)
}
