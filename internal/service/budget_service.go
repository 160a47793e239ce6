package service

import (
	"context"

	"github.com/locvowork/hotel_scheduler/apigateway/internal/domain"
	"github.com/locvowork/hotel_scheduler/apigateway/internal/logger"
)

// DepartmentBudget compares one department's budget with its scheduled cost.
type DepartmentBudget struct {
	Department   domain.Department `json:"department"`
	WeeklyBudget float64           `json:"weekly_budget"`
	ActualCost   float64           `json:"actual_cost"`
	Percentage   float64           `json:"percentage"`
	Variance     float64           `json:"variance"`
}

// BudgetReport is the budget page for one week.
type BudgetReport struct {
	Week        domain.Week        `json:"week"`
	Month       int                `json:"month"`
	Year        int                `json:"year"`
	Departments []DepartmentBudget `json:"departments"`
	TotalBudget float64            `json:"total_budget"`
	TotalActual float64            `json:"total_actual"`
	Percentage  float64            `json:"percentage"`
	OverBudget  bool               `json:"over_budget"`
}

type BudgetService struct {
	repo     domain.BudgetRepository
	schedule *ScheduleService
}

func NewBudgetService(repo domain.BudgetRepository, schedule *ScheduleService) *BudgetService {
	return &BudgetService{repo: repo, schedule: schedule}
}

// Report compares the budgets of the month containing the week's Monday
// with that week's scheduled cost.
func (bs *BudgetService) Report(ctx context.Context, week domain.Week) (*BudgetReport, error) {
	if err := week.Validate(); err != nil {
		return nil, err
	}
	monday := week.Monday()
	month, year := int(monday.Month()), monday.Year()

	budgets, err := bs.repo.ListForMonth(ctx, month, year)
	if err != nil {
		return nil, err
	}
	store, err := bs.schedule.Load(ctx, week)
	if err != nil {
		return nil, err
	}
	actual := store.CostByDepartment()

	report := &BudgetReport{Week: week, Month: month, Year: year, Departments: []DepartmentBudget{}}
	for _, b := range budgets {
		if b.Department == domain.DepartmentOverall {
			continue
		}
		line := DepartmentBudget{
			Department:   b.Department,
			WeeklyBudget: b.WeeklyBudget,
			ActualCost:   actual[b.Department],
			Percentage:   percentOf(actual[b.Department], b.WeeklyBudget),
			Variance:     b.WeeklyBudget - actual[b.Department],
		}
		report.Departments = append(report.Departments, line)
		report.TotalBudget += line.WeeklyBudget
		report.TotalActual += line.ActualCost
	}
	report.Percentage = percentOf(report.TotalActual, report.TotalBudget)
	report.OverBudget = report.TotalActual > report.TotalBudget
	return report, nil
}

func (bs *BudgetService) Set(ctx context.Context, role domain.Role, b *domain.Budget) error {
	if !role.IsManager() {
		return domain.ErrForbidden
	}
	dept, err := domain.ParseDepartment(string(b.Department))
	if err != nil {
		return err
	}
	b.Department = dept
	if b.WeeklyBudget < 0 {
		return domain.NewValidationError("weekly_budget", "must not be negative")
	}
	if b.Month < 1 || b.Month > 12 {
		return domain.NewValidationError("month", "must be between 1 and 12")
	}
	if b.Year <= 0 {
		return domain.NewValidationError("year", "must be greater than 0")
	}
	if err := bs.repo.Upsert(ctx, b); err != nil {
		return err
	}
	logger.InfoLog(ctx, "budget for %s %d/%d set to %.2f", b.Department, b.Month, b.Year, b.WeeklyBudget)
	return nil
}

func percentOf(actual, budget float64) float64 {
	if budget == 0 {
		return 0
	}
	return actual / budget * 100
}
