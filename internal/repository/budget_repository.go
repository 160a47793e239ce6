package repository

import (
	"context"
	"database/sql"

	"github.com/locvowork/hotel_scheduler/apigateway/internal/domain"
	"github.com/locvowork/hotel_scheduler/apigateway/internal/repository/builder"
)

type budgetRepository struct {
	db *sql.DB
}

func NewBudgetRepository(db *sql.DB) domain.BudgetRepository {
	return &budgetRepository{db: db}
}

func (r *budgetRepository) ListForMonth(ctx context.Context, month, year int) ([]domain.Budget, error) {
	b := builder.NewSQLBuilder()
	query, args := b.Select("id", "department", "weekly_budget", "month", "year").
		From("budgets").
		Where("month = ?", month).
		Where("year = ?", year).
		OrderBy("department ASC").
		Build()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError("list budgets", err)
	}
	defer rows.Close()

	var out []domain.Budget
	for rows.Next() {
		var bg domain.Budget
		if err := rows.Scan(&bg.ID, &bg.Department, &bg.WeeklyBudget, &bg.Month, &bg.Year); err != nil {
			return nil, mapError("scan budget", err)
		}
		out = append(out, bg)
	}
	return out, mapError("list budgets", rows.Err())
}

func (r *budgetRepository) Upsert(ctx context.Context, bg *domain.Budget) error {
	b := builder.NewSQLBuilder()
	query, args := b.Insert("budgets", "department", "weekly_budget", "month", "year").
		Values(bg.Department, bg.WeeklyBudget, bg.Month, bg.Year).
		OnConflictUpdate([]string{"department", "month", "year"}, "weekly_budget").
		Returning("id").
		Build()

	return mapError("upsert budget", r.db.QueryRowContext(ctx, query, args...).Scan(&bg.ID))
}
