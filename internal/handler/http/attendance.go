package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

type AttendanceHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Mark(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	clock             clock.Clock
	location          *time.Location
}

// NewAttendanceHandler builds the handler. clk and location decide "today"
// when a listing names no date.
func NewAttendanceHandler(attendanceService attendance.AttendanceService, clk clock.Clock, location *time.Location) AttendanceHandler {
	if clk == nil {
		clk = clock.Real()
	}
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		clock:             clk,
		location:          location,
	}
}

// List handles GET /attendance?date=&department_id=
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := attendance.ListAttendanceRequest{
		Date:         query.Get("date"),
		DepartmentID: query.Get("department_id"),
	}
	if validator.IsEmpty(req.Date) {
		req.Date = clock.Today(h.clock, h.location).Format(validator.DateLayout)
	}

	records, err := h.attendanceService.ListAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// Mark handles POST /attendance. The caller becomes marked_by.
func (h *attendanceHandlerImpl) Mark(w http.ResponseWriter, r *http.Request) {
	var req attendance.MarkAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("MarkAttendance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	record, err := h.attendanceService.MarkAttendance(r.Context(), req, middleware.ActorFromContext(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance marked successfully", record)
}
