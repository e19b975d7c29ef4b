package model

import (
	"time"

	"github.com/google/uuid"
)

type ScheduleStatus string

const (
	ScheduleStatusActive   ScheduleStatus = "active"
	ScheduleStatusHoliday  ScheduleStatus = "holiday"
	ScheduleStatusInactive ScheduleStatus = "inactive"
)

// Weekday is the lowercase English day name stored on a schedule.
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

var weekdayLabels = map[Weekday]string{
	Monday:    "Senin",
	Tuesday:   "Selasa",
	Wednesday: "Rabu",
	Thursday:  "Kamis",
	Friday:    "Jumat",
	Saturday:  "Sabtu",
	Sunday:    "Minggu",
}

func (d Weekday) Valid() bool {
	_, ok := weekdayLabels[d]
	return ok
}

func (d Weekday) Label() string {
	return weekdayLabels[d]
}

// DefaultMaxPatients is applied to shifts created without a quota.
const DefaultMaxPatients = 20

// LegacyShiftName names the single shift produced from a flat start/end pair.
const LegacyShiftName = "Praktek"

type Shift struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	MaxPatients int    `json:"max_patients"`
}

// ShiftTemplates are the presets offered by the schedule form.
var ShiftTemplates = []Shift{
	{Name: "Pagi", StartTime: "08:00", EndTime: "12:00", MaxPatients: DefaultMaxPatients},
	{Name: "Siang", StartTime: "13:00", EndTime: "17:00", MaxPatients: DefaultMaxPatients},
	{Name: "Malam", StartTime: "18:00", EndTime: "22:00", MaxPatients: DefaultMaxPatients},
}

// Schedule is a doctor's weekly practice plan. Holiday fields hold
// yyyy-mm-dd dates and are empty when no holiday is staged.
type Schedule struct {
	ID               uuid.UUID      `json:"id"`
	DoctorID         uuid.UUID      `json:"doctor_id"`
	DoctorName       string         `json:"doctor_name"`
	Poly             string         `json:"poly"`
	Days             []Weekday      `json:"days"`
	Shifts           []Shift        `json:"shifts"`
	Status           ScheduleStatus `json:"status"`
	HolidayReason    string         `json:"holiday_reason"`
	HolidayStartDate string         `json:"holiday_start_date"`
	HolidayEndDate   string         `json:"holiday_end_date"`
	CreatedAt        time.Time      `json:"created_at"`
	LastUpdated      time.Time      `json:"last_updated"`
}

// HasHoliday reports whether any holiday field is set.
func (s *Schedule) HasHoliday() bool {
	return s.HolidayReason != "" || s.HolidayStartDate != "" || s.HolidayEndDate != ""
}

// ClearHoliday empties the three holiday fields.
func (s *Schedule) ClearHoliday() {
	s.HolidayReason = ""
	s.HolidayStartDate = ""
	s.HolidayEndDate = ""
}

// RemainingHolidayDays counts the whole days left until the holiday end,
// floored at zero. It is zero unless the schedule is on holiday.
func (s *Schedule) RemainingHolidayDays(now time.Time) int {
	if s.Status != ScheduleStatusHoliday || s.HolidayEndDate == "" {
		return 0
	}
	end, err := time.ParseInLocation(DateLayout, s.HolidayEndDate, now.Location())
	if err != nil {
		return 0
	}
	diff := end.Sub(StartOfDay(now))
	if diff <= 0 {
		return 0
	}
	days := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) != 0 {
		days++
	}
	return days
}

// ScheduleRequest is the create/update body. StartTime and EndTime carry the
// older flat schema and are folded into a single shift when Shifts is empty.
type ScheduleRequest struct {
	DoctorID  string         `json:"doctor_id"`
	Poly      string         `json:"poly"`
	Days      []Weekday      `json:"days" binding:"dive,weekday"`
	Shifts    []Shift        `json:"shifts"`
	Status    ScheduleStatus `json:"status"`
	StartTime string         `json:"start_time,omitempty"`
	EndTime   string         `json:"end_time,omitempty"`
}

// NormalizedShifts returns the request shifts, migrating the flat schema and
// filling defaults.
func (r *ScheduleRequest) NormalizedShifts() []Shift {
	shifts := r.Shifts
	if len(shifts) == 0 && (r.StartTime != "" || r.EndTime != "") {
		shifts = []Shift{{Name: LegacyShiftName, StartTime: r.StartTime, EndTime: r.EndTime}}
	}
	out := make([]Shift, 0, len(shifts))
	for _, sh := range shifts {
		if sh.ID == "" {
			sh.ID = uuid.NewString()
		}
		if sh.MaxPatients <= 0 {
			sh.MaxPatients = DefaultMaxPatients
		}
		out = append(out, sh)
	}
	return out
}

type HolidayRequest struct {
	Reason    string `json:"reason"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type ScheduleFilter struct {
	Search string `form:"search"`
	Status string `form:"status"`
	Poly   string `form:"poly"`
}

type ScheduleSummary struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Holiday  int `json:"holiday"`
	Inactive int `json:"inactive"`
}

// ScheduleView adds derived fields to a schedule for listing.
type ScheduleView struct {
	*Schedule
	RemainingHolidayDays int `json:"remaining_holiday_days"`
}

type ScheduleList struct {
	Schedules      []ScheduleView  `json:"schedules"`
	Summary        ScheduleSummary `json:"summary"`
	PolyCategories []string        `json:"poly_categories"`
}
