package attendance

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

type MarkAttendanceRequest struct {
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"attendance_date"`
	Status     string  `json:"status"`
	CheckIn    *string `json:"check_in,omitempty"`
	CheckOut   *string `json:"check_out,omitempty"`
	Remarks    *string `json:"remarks,omitempty"`
}

// Normalize trims input. Blank optional fields become nil.
func (r *MarkAttendanceRequest) Normalize() {
	r.EmployeeID = strings.TrimSpace(r.EmployeeID)
	r.Date = strings.TrimSpace(r.Date)
	r.Status = strings.TrimSpace(r.Status)
	r.CheckIn = validator.TrimOptional(r.CheckIn)
	r.CheckOut = validator.TrimOptional(r.CheckOut)
	r.Remarks = validator.TrimOptional(r.Remarks)
}

func (r *MarkAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "employee_id is required")
	}
	if validator.IsEmpty(r.Date) {
		errs.Add("attendance_date", "attendance_date is required")
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs.Add("attendance_date", "attendance_date must be in YYYY-MM-DD format")
	}
	if validator.IsEmpty(r.Status) {
		errs.Add("status", "status is required")
	} else if !validator.IsInSlice(r.Status, Statuses) {
		errs.Add("status", "status must be one of: "+strings.Join(Statuses, ", "))
	}
	if _, err := ParseOptionalTimeOfDay(r.CheckIn); err != nil {
		errs.Add("check_in", "check_in must be in HH:MM or HH:MM:SS format")
	}
	if _, err := ParseOptionalTimeOfDay(r.CheckOut); err != nil {
		errs.Add("check_out", "check_out must be in HH:MM or HH:MM:SS format")
	}

	return errs.Err()
}

// ToRecord converts a validated request.
func (r *MarkAttendanceRequest) ToRecord(markedBy string) Record {
	date, _ := validator.IsValidDate(r.Date)
	checkIn, _ := ParseOptionalTimeOfDay(r.CheckIn)
	checkOut, _ := ParseOptionalTimeOfDay(r.CheckOut)
	return Record{
		EmployeeID: r.EmployeeID,
		Date:       date,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Status:     Status(r.Status),
		Remarks:    r.Remarks,
		MarkedBy:   markedBy,
	}
}

type ListAttendanceRequest struct {
	Date         string
	DepartmentID string
}

type AttendanceFilter struct {
	Date         time.Time
	DepartmentID string
}

func (r *ListAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Date) {
		errs.Add("date", "date is required")
	} else if _, ok := validator.IsValidDate(strings.TrimSpace(r.Date)); !ok {
		errs.Add("date", "date must be in YYYY-MM-DD format")
	}

	return errs.Err()
}

// Filter converts a validated request.
func (r *ListAttendanceRequest) Filter() AttendanceFilter {
	date, _ := validator.IsValidDate(strings.TrimSpace(r.Date))
	return AttendanceFilter{Date: date, DepartmentID: strings.TrimSpace(r.DepartmentID)}
}

type AttendanceResponse struct {
	EmployeeID     string  `json:"employee_id"`
	EmpID          string  `json:"emp_id,omitempty"`
	FullName       string  `json:"full_name,omitempty"`
	DepartmentName *string `json:"dept_name,omitempty"`
	Date           string  `json:"attendance_date"`
	CheckIn        *string `json:"check_in"`
	CheckOut       *string `json:"check_out"`
	Status         string  `json:"status"`
	Remarks        *string `json:"remarks"`
	MarkedBy       string  `json:"marked_by"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

func NewAttendanceResponse(r Record) AttendanceResponse {
	return AttendanceResponse{
		EmployeeID:     r.EmployeeID,
		EmpID:          r.EmpID,
		FullName:       r.FullName,
		DepartmentName: r.DepartmentName,
		Date:           r.Date.Format(validator.DateLayout),
		CheckIn:        formatOptionalTime(r.CheckIn),
		CheckOut:       formatOptionalTime(r.CheckOut),
		Status:         string(r.Status),
		Remarks:        r.Remarks,
		MarkedBy:       r.MarkedBy,
		CreatedAt:      r.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:      r.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
