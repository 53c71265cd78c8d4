package attendance

import "context"

type AttendanceService interface {
	MarkAttendance(ctx context.Context, req MarkAttendanceRequest, markedBy string) (AttendanceResponse, error)
	ListAttendance(ctx context.Context, req ListAttendanceRequest) ([]AttendanceResponse, error)
}
