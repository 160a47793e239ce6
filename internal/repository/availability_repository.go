package repository

import (
	"context"
	"database/sql"

	"github.com/locvowork/hotel_scheduler/apigateway/internal/domain"
	"github.com/locvowork/hotel_scheduler/apigateway/internal/repository/builder"
)

type availabilityRepository struct {
	db *sql.DB
}

func NewAvailabilityRepository(db *sql.DB) domain.AvailabilityRepository {
	return &availabilityRepository{db: db}
}

func (r *availabilityRepository) ListByStaff(ctx context.Context, staffID string) ([]domain.Availability, error) {
	b := builder.NewSQLBuilder()
	query, args := b.Select("id", "staff_id", "day_of_week", "is_available", "preferred_shift", "start_time", "end_time", "notes").
		From("staff_availability").
		Where("staff_id = ?", staffID).
		Build()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError("list availability", err)
	}
	defer rows.Close()

	var out []domain.Availability
	for rows.Next() {
		var a domain.Availability
		if err := rows.Scan(&a.ID, &a.StaffID, &a.DayOfWeek, &a.IsAvailable, &a.PreferredShift, &a.StartTime, &a.EndTime, &a.Notes); err != nil {
			return nil, mapError("scan availability", err)
		}
		out = append(out, a)
	}
	return out, mapError("list availability", rows.Err())
}

func (r *availabilityRepository) Upsert(ctx context.Context, a *domain.Availability) error {
	b := builder.NewSQLBuilder()
	query, args := b.Insert("staff_availability", "staff_id", "day_of_week", "is_available", "preferred_shift", "start_time", "end_time", "notes").
		Values(a.StaffID, a.DayOfWeek, a.IsAvailable, a.PreferredShift, a.StartTime, a.EndTime, a.Notes).
		OnConflictUpdate([]string{"staff_id", "day_of_week"}, "is_available", "preferred_shift", "start_time", "end_time", "notes").
		Returning("id").
		Build()

	return mapError("upsert availability", r.db.QueryRowContext(ctx, query, args...).Scan(&a.ID))
}
