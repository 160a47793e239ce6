package domain

import (
	"strings"
	"time"
)

// ==================== ENUMS ====================

// Department is the staffing department a member belongs to.
type Department string

const (
	DepartmentFrontDesk    Department = "frontdesk"
	DepartmentHousekeeping Department = "housekeeping"
	DepartmentMaintenance  Department = "maintenance"
	DepartmentRestaurant   Department = "restaurant"

	// DepartmentOverall only exists on budget rows.
	DepartmentOverall Department = "overall"
)

// Departments lists the staffing departments in display order.
var Departments = []Department{
	DepartmentFrontDesk,
	DepartmentHousekeeping,
	DepartmentMaintenance,
	DepartmentRestaurant,
}

// Valid reports whether d is one of the staffing departments.
func (d Department) Valid() bool {
	for _, dep := range Departments {
		if d == dep {
			return true
		}
	}
	return false
}

// ParseDepartment accepts a department name, tolerating case and the "front-desk" spelling.
func ParseDepartment(s string) (Department, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	v = strings.ReplaceAll(v, "-", "")
	v = strings.ReplaceAll(v, " ", "")
	d := Department(v)
	if d.Valid() || d == DepartmentOverall {
		return d, nil
	}
	return "", NewValidationError("department", "unknown department "+s)
}

// Weekday is a day of the scheduling week. Monday starts the week.
type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

// Weekdays lists the days of the week, Monday first.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Index returns the 0-based position of the day in the week, or -1.
func (d Weekday) Index() int {
	for i, w := range Weekdays {
		if d == w {
			return i
		}
	}
	return -1
}

// Valid reports whether d is a known weekday.
func (d Weekday) Valid() bool { return d.Index() >= 0 }

// Lower is the lower-case form used by availability rows.
func (d Weekday) Lower() string { return strings.ToLower(string(d)) }

// ParseWeekday accepts "Monday", "monday" or "MONDAY".
func ParseWeekday(s string) (Weekday, error) {
	for _, w := range Weekdays {
		if strings.EqualFold(string(w), strings.TrimSpace(s)) {
			return w, nil
		}
	}
	return "", ErrInvalidDay
}

// ShiftType is one of the fixed calendar rows.
type ShiftType string

const (
	ShiftMorning ShiftType = "Morning"
	ShiftDay     ShiftType = "Day"
	ShiftEvening ShiftType = "Evening"
	ShiftNight   ShiftType = "Night"
	ShiftSplit   ShiftType = "Split"
)

// ShiftTypes lists the shifts in calendar row order.
var ShiftTypes = []ShiftType{ShiftMorning, ShiftDay, ShiftEvening, ShiftNight, ShiftSplit}

// NominalHours is the fixed hour count used for cost derivation,
// independent of actual clock times.
func (s ShiftType) NominalHours() float64 {
	switch s {
	case ShiftMorning, ShiftDay, ShiftEvening, ShiftNight:
		return 8
	case ShiftSplit:
		return 6
	}
	return 0
}

// TimeRange is the display label of the shift.
func (s ShiftType) TimeRange() string {
	switch s {
	case ShiftMorning:
		return "7AM-3PM"
	case ShiftDay:
		return "8AM-4PM"
	case ShiftEvening:
		return "3PM-11PM"
	case ShiftNight:
		return "11PM-7AM"
	case ShiftSplit:
		return "Split Shift"
	}
	return ""
}

// Order returns the calendar row of the shift, or -1.
func (s ShiftType) Order() int {
	for i, t := range ShiftTypes {
		if s == t {
			return i
		}
	}
	return -1
}

func (s ShiftType) Valid() bool { return s.Order() >= 0 }

// ParseShiftType accepts a shift name in any case.
func ParseShiftType(s string) (ShiftType, error) {
	for _, t := range ShiftTypes {
		if strings.EqualFold(string(t), strings.TrimSpace(s)) {
			return t, nil
		}
	}
	return "", ErrInvalidShift
}

// TimeOffStatus is the review state of a time-off request.
type TimeOffStatus string

const (
	TimeOffPending  TimeOffStatus = "pending"
	TimeOffApproved TimeOffStatus = "approved"
	TimeOffRejected TimeOffStatus = "rejected"
)

func (s TimeOffStatus) Valid() bool {
	switch s {
	case TimeOffPending, TimeOffApproved, TimeOffRejected:
		return true
	}
	return false
}

// Role is supplied by the external auth service.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleStaff   Role = "staff"
)

// IsManager is the capability gate for time-off review, deletion and budgets.
func (r Role) IsManager() bool {
	return r == RoleManager || r == RoleAdmin
}

// ==================== ENTITIES ====================

// StaffMember represents the staff_members table
type StaffMember struct {
	ID                    string     `json:"id" db:"id"`
	Name                  string     `json:"name" db:"name"`
	Department            Department `json:"department" db:"department"`
	HourlyRate            float64    `json:"hourly_rate" db:"hourly_rate"`
	Avatar                string     `json:"avatar" db:"avatar"`
	Email                 *string    `json:"email,omitempty" db:"email"`
	Phone                 *string    `json:"phone,omitempty" db:"phone"`
	Address               *string    `json:"address,omitempty" db:"address"`
	City                  *string    `json:"city,omitempty" db:"city"`
	PostalCode            *string    `json:"postal_code,omitempty" db:"postal_code"`
	EmergencyContactName  *string    `json:"emergency_contact_name,omitempty" db:"emergency_contact_name"`
	EmergencyContactPhone *string    `json:"emergency_contact_phone,omitempty" db:"emergency_contact_phone"`
	DateOfBirth           *time.Time `json:"date_of_birth,omitempty" db:"date_of_birth"`
	HireDate              *time.Time `json:"hire_date,omitempty" db:"hire_date"`
	CreatedAt             time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at" db:"updated_at"`
}

// FirstName is what the calendar cells show.
func (s StaffMember) FirstName() string {
	if f := strings.Fields(s.Name); len(f) > 0 {
		return f[0]
	}
	return s.Name
}

// Initials derives the avatar text from a name: "Sarah Johnson" -> "SJ".
func Initials(name string) string {
	var sb strings.Builder
	for _, part := range strings.Fields(name) {
		r := []rune(part)
		sb.WriteString(strings.ToUpper(string(r[0])))
	}
	return sb.String()
}

// ScheduleSlot represents the shift_schedules table. At most one slot exists
// per (staff, day, week, year).
type ScheduleSlot struct {
	ID         int64     `json:"id" db:"id"`
	StaffID    string    `json:"staff_id" db:"staff_id"`
	Day        Weekday   `json:"day_of_week" db:"day_of_week"`
	Shift      ShiftType `json:"shift_type" db:"shift_type"`
	Hours      float64   `json:"hours" db:"hours"`
	WeekNumber int       `json:"week_number" db:"week_number"`
	Year       int       `json:"year" db:"year"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// Availability represents the staff_availability table
type Availability struct {
	ID             int64   `json:"id,omitempty" db:"id"`
	StaffID        string  `json:"staff_id" db:"staff_id"`
	DayOfWeek      string  `json:"day_of_week" db:"day_of_week"`
	IsAvailable    bool    `json:"is_available" db:"is_available"`
	PreferredShift *string `json:"preferred_shift,omitempty" db:"preferred_shift"`
	StartTime      *string `json:"start_time,omitempty" db:"start_time"`
	EndTime        *string `json:"end_time,omitempty" db:"end_time"`
	Notes          *string `json:"notes,omitempty" db:"notes"`
}

// TimeOffRequest represents the time_off_requests table
type TimeOffRequest struct {
	ID        string        `json:"id" db:"id"`
	StaffID   string        `json:"staff_id" db:"staff_id"`
	StartDate time.Time     `json:"start_date" db:"start_date"`
	EndDate   time.Time     `json:"end_date" db:"end_date"`
	Reason    *string       `json:"reason,omitempty" db:"reason"`
	Status    TimeOffStatus `json:"status" db:"status"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
}

// Budget represents the budgets table
type Budget struct {
	ID           int64      `json:"id" db:"id"`
	Department   Department `json:"department" db:"department"`
	WeeklyBudget float64    `json:"weekly_budget" db:"weekly_budget"`
	Month        int        `json:"month" db:"month"`
	Year         int        `json:"year" db:"year"`
}

// StaffFilter defines criteria for listing staff
type StaffFilter struct {
	Department Department
	Limit      int
	Offset     int
}
