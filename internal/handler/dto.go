package handler

import (
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/locvowork/hotel_scheduler/apigateway/internal/domain"
	"github.com/locvowork/hotel_scheduler/apigateway/internal/schedule"
)

const dateLayout = "2006-01-02"

// WeekRequest selects the scheduling week of a mutation.
type WeekRequest struct {
	Week int `json:"week"`
	Year int `json:"year"`
}

func (r WeekRequest) week() domain.Week {
	return domain.Week{Number: r.Week, Year: r.Year}
}

// MoveRequest is the body of POST /schedule/move.
type MoveRequest struct {
	WeekRequest
	StaffID     string `json:"staff_id"`
	TargetDay   string `json:"target_day"`
	TargetShift string `json:"target_shift"`
	SourceDay   string `json:"source_day,omitempty"`
	SourceShift string `json:"source_shift,omitempty"`
}

func (r MoveRequest) toMove() (schedule.MoveRequest, error) {
	out := schedule.MoveRequest{StaffID: r.StaffID}
	var err error
	if out.TargetDay, err = domain.ParseWeekday(r.TargetDay); err != nil {
		return out, err
	}
	if out.TargetShift, err = domain.ParseShiftType(r.TargetShift); err != nil {
		return out, err
	}
	if r.SourceDay == "" && r.SourceShift == "" {
		return out, nil
	}
	if out.SourceDay, err = domain.ParseWeekday(r.SourceDay); err != nil {
		return out, err
	}
	if out.SourceShift, err = domain.ParseShiftType(r.SourceShift); err != nil {
		return out, err
	}
	return out, nil
}

// ApplyTemplateRequest is the body of POST /schedule/apply-template.
type ApplyTemplateRequest struct {
	WeekRequest
	StaffID    string `json:"staff_id"`
	TemplateID string `json:"template_id"`
	Shift      string `json:"shift"`
}

// SlotRequest is the body of DELETE /schedule/slot.
type SlotRequest struct {
	WeekRequest
	StaffID string `json:"staff_id"`
	Day     string `json:"day"`
	Shift   string `json:"shift"`
}

// StaffRequest is the body of POST /staff and PUT /staff/:id.
type StaffRequest struct {
	Name                  string  `json:"name"`
	Department            string  `json:"department"`
	HourlyRate            float64 `json:"hourly_rate"`
	Email                 *string `json:"email"`
	Phone                 *string `json:"phone"`
	Address               *string `json:"address"`
	City                  *string `json:"city"`
	PostalCode            *string `json:"postal_code"`
	EmergencyContactName  *string `json:"emergency_contact_name"`
	EmergencyContactPhone *string `json:"emergency_contact_phone"`
	DateOfBirth           string  `json:"date_of_birth"`
	HireDate              string  `json:"hire_date"`
}

func (r StaffRequest) toStaff() (*domain.StaffMember, error) {
	dept, err := domain.ParseDepartment(r.Department)
	if err != nil {
		return nil, err
	}
	s := &domain.StaffMember{
		Name:                  r.Name,
		Department:            dept,
		HourlyRate:            r.HourlyRate,
		Email:                 r.Email,
		Phone:                 r.Phone,
		Address:               r.Address,
		City:                  r.City,
		PostalCode:            r.PostalCode,
		EmergencyContactName:  r.EmergencyContactName,
		EmergencyContactPhone: r.EmergencyContactPhone,
	}
	if s.DateOfBirth, err = optionalDate("date_of_birth", r.DateOfBirth); err != nil {
		return nil, err
	}
	if s.HireDate, err = optionalDate("hire_date", r.HireDate); err != nil {
		return nil, err
	}
	return s, nil
}

// AvailabilityRequest is the body of PUT /staff/:id/availability/:day.
type AvailabilityRequest struct {
	IsAvailable    bool    `json:"is_available"`
	PreferredShift *string `json:"preferred_shift"`
	StartTime      *string `json:"start_time"`
	EndTime        *string `json:"end_time"`
	Notes          *string `json:"notes"`
}

// TimeOffRequest is the body of POST /staff/:id/time-off.
type TimeOffRequest struct {
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Reason    *string `json:"reason"`
}

func (r TimeOffRequest) toTimeOff(staffID string) (*domain.TimeOffRequest, error) {
	out := &domain.TimeOffRequest{StaffID: staffID, Reason: r.Reason}
	start, err := optionalDate("start_date", r.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := optionalDate("end_date", r.EndDate)
	if err != nil {
		return nil, err
	}
	if start != nil {
		out.StartDate = *start
	}
	if end != nil {
		out.EndDate = *end
	}
	return out, nil
}

// StatusRequest is the body of PUT /time-off/:id/status.
type StatusRequest struct {
	Status string `json:"status"`
}

// BudgetRequest is the body of PUT /budget.
type BudgetRequest struct {
	Department   string  `json:"department"`
	WeeklyBudget float64 `json:"weekly_budget"`
	Month        int     `json:"month"`
	Year         int     `json:"year"`
}

func optionalDate(field, v string) (*time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return nil, domain.NewValidationError(field, "must be YYYY-MM-DD")
	}
	return &t, nil
}

// weekFromQuery reads ?week=&year=, defaulting to the current ISO week.
func weekFromQuery(c echo.Context) (domain.Week, error) {
	w := domain.CurrentWeek(time.Now())
	if v := c.QueryParam("week"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return w, domain.NewValidationError("week", "must be a number")
		}
		w.Number = n
	}
	if v := c.QueryParam("year"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return w, domain.NewValidationError("year", "must be a number")
		}
		w.Year = n
	}
	return w, w.Validate()
}
