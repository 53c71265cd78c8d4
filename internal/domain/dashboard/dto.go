package dashboard

// StatsResponse holds the dashboard counters for one date.
type StatsResponse struct {
	TotalEmployees  int64  `json:"total_employees"`
	Departments     int64  `json:"departments"`
	TodayAttendance int64  `json:"today_attendance"`
	PresentToday    int64  `json:"present_today"`
	Date            string `json:"date"` // Format: "YYYY-MM-DD"
}
