package model

// DashboardStats is the landing page summary.
type DashboardStats struct {
	TotalPatients   int           `json:"total_patients"`
	TodayPatients   int           `json:"today_patients"`
	TotalDoctors    int           `json:"total_doctors"`
	ActiveSchedules int           `json:"active_schedules"`
	RecentPatients  []PatientView `json:"recent_patients"`
}
