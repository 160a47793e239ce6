package service

import (
	"context"

	"github.com/locvowork/hotel_scheduler/apigateway/internal/domain"
	"github.com/locvowork/hotel_scheduler/apigateway/internal/schedule"
)

// WeeklyReport holds the workforce statistics of one week.
type WeeklyReport struct {
	Week              domain.Week                   `json:"week"`
	WeekLabel         string                        `json:"week_label"`
	TotalStaff        int                           `json:"total_staff"`
	AverageHours      float64                       `json:"average_hours"`
	DepartmentCount   int                           `json:"department_count"`
	StaffByDepartment map[domain.Department]int     `json:"staff_by_department"`
	SlotsByShift      map[domain.ShiftType]int      `json:"slots_by_shift"`
	WeeklyCost        float64                       `json:"weekly_cost"`
	CostByDepartment  map[domain.Department]float64 `json:"cost_by_department"`
	UnassignedStaff   int                           `json:"unassigned_staff"`
}

type ReportService struct {
	schedule *ScheduleService
}

func NewReportService(schedule *ScheduleService) *ReportService {
	return &ReportService{schedule: schedule}
}

func (rs *ReportService) Weekly(ctx context.Context, week domain.Week) (*WeeklyReport, error) {
	store, err := rs.schedule.Load(ctx, week)
	if err != nil {
		return nil, err
	}
	// The staff counts come from the same read as the placements.
	staff := store.Members()

	report := &WeeklyReport{
		Week:              week,
		WeekLabel:         week.String(),
		TotalStaff:        len(staff),
		StaffByDepartment: make(map[domain.Department]int),
		SlotsByShift:      make(map[domain.ShiftType]int),
		WeeklyCost:        store.WeeklyCost(),
		CostByDepartment:  store.CostByDepartment(),
		UnassignedStaff:   len(store.Unassigned()),
	}
	for _, s := range staff {
		report.StaffByDepartment[s.Department]++
	}
	report.DepartmentCount = len(report.StaffByDepartment)

	placements := store.Placements()
	for _, p := range placements {
		if p.Assigned() {
			report.SlotsByShift[p.Shift]++
		}
	}
	if len(staff) > 0 {
		var hours float64
		for _, h := range schedule.HoursByStaff(placements) {
			hours += h
		}
		report.AverageHours = hours / float64(len(staff))
	}
	return report, nil
}
