package leave

import "context"

type LeaveService interface {
	SubmitLeaveRequest(ctx context.Context, req CreateLeaveRequestRequest) (LeaveRequestResponse, error)
	UpdateLeaveStatus(ctx context.Context, req UpdateLeaveStatusRequest) error
	RecentLeaveRequests(ctx context.Context, limit int) ([]LeaveRequestResponse, error)
}
