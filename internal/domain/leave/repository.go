package leave

import "context"

type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	// UpdateStatus returns ErrLeaveRequestNotFound when no row has id.
	UpdateStatus(ctx context.Context, id string, status Status) error
	// ListRecent orders by requested_at then id, newest first.
	ListRecent(ctx context.Context, limit int) ([]LeaveRequest, error)
}
