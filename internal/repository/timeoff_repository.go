package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/locvowork/hotel_scheduler/apigateway/internal/domain"
	"github.com/locvowork/hotel_scheduler/apigateway/internal/repository/builder"
)

type timeOffRepository struct {
	db *sql.DB
}

func NewTimeOffRepository(db *sql.DB) domain.TimeOffRepository {
	return &timeOffRepository{db: db}
}

func (r *timeOffRepository) Create(ctx context.Context, req *domain.TimeOffRequest) error {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	b := builder.NewSQLBuilder()
	query, args := b.Insert("time_off_requests", "id", "staff_id", "start_date", "end_date", "reason", "status").
		Values(req.ID, req.StaffID, req.StartDate, req.EndDate, req.Reason, req.Status).
		Returning("created_at").
		Build()

	return mapError("create time off request", r.db.QueryRowContext(ctx, query, args...).Scan(&req.CreatedAt))
}

func (r *timeOffRepository) ListByStaff(ctx context.Context, staffID string) ([]domain.TimeOffRequest, error) {
	b := builder.NewSQLBuilder()
	query, args := b.Select("id", "staff_id", "start_date", "end_date", "reason", "status", "created_at").
		From("time_off_requests").
		Where("staff_id = ?", staffID).
		OrderBy("start_date DESC").
		Build()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError("list time off requests", err)
	}
	defer rows.Close()

	var out []domain.TimeOffRequest
	for rows.Next() {
		var t domain.TimeOffRequest
		if err := rows.Scan(&t.ID, &t.StaffID, &t.StartDate, &t.EndDate, &t.Reason, &t.Status, &t.CreatedAt); err != nil {
			return nil, mapError("scan time off request", err)
		}
		out = append(out, t)
	}
	return out, mapError("list time off requests", rows.Err())
}

func (r *timeOffRepository) UpdateStatus(ctx context.Context, id string, status domain.TimeOffStatus) error {
	b := builder.NewSQLBuilder()
	query, args := b.Update("time_off_requests").
		Set("status", status).
		Where("id = ?", id).
		Build()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return mapError("update time off status", err)
	}
	return expectAffected("update time off status", res)
}

func (r *timeOffRepository) Delete(ctx context.Context, id string) error {
	b := builder.NewSQLBuilder()
	query, args := b.Delete("time_off_requests").Where("id = ?", id).Build()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return mapError("delete time off request", err)
	}
	return expectAffected("delete time off request", res)
}
