package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/locvowork/hotel_scheduler/apigateway/internal/domain"
	"github.com/locvowork/hotel_scheduler/apigateway/internal/repository/builder"
)

var slotConflictCols = []string{"staff_id", "day_of_week", "week_number", "year"}

type slotRepository struct {
	db *sql.DB
}

// NewSlotRepository creates the shift_schedules repository.
func NewSlotRepository(db *sql.DB) domain.SlotRepository {
	return &slotRepository{db: db}
}

func (r *slotRepository) ListWeek(ctx context.Context, week domain.Week) ([]domain.ScheduleSlot, error) {
	b := builder.NewSQLBuilder()
	query, args := b.Select("id", "staff_id", "day_of_week", "shift_type", "hours", "week_number", "year", "created_at").
		From("shift_schedules").
		Where("week_number = ?", week.Number).
		Where("year = ?", week.Year).
		OrderBy("staff_id ASC").
		OrderBy("id ASC").
		Build()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError("list week slots", err)
	}
	defer rows.Close()

	var slots []domain.ScheduleSlot
	for rows.Next() {
		var s domain.ScheduleSlot
		if err := rows.Scan(&s.ID, &s.StaffID, &s.Day, &s.Shift, &s.Hours, &s.WeekNumber, &s.Year, &s.CreatedAt); err != nil {
			return nil, mapError("scan slot", err)
		}
		slots = append(slots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list week slots", err)
	}
	return slots, nil
}

func (r *slotRepository) Upsert(ctx context.Context, slot *domain.ScheduleSlot) error {
	return upsertSlot(ctx, r.db, slot)
}

func (r *slotRepository) DeleteAt(ctx context.Context, staffID string, day domain.Weekday, shift domain.ShiftType, week domain.Week) error {
	return deleteSlot(ctx, r.db, staffID, day, shift, week)
}

func (r *slotRepository) Move(ctx context.Context, fromDay domain.Weekday, fromShift domain.ShiftType, to *domain.ScheduleSlot) error {
	week := domain.Week{Number: to.WeekNumber, Year: to.Year}
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := deleteSlot(ctx, tx, to.StaffID, fromDay, fromShift, week); err != nil {
			return err
		}
		return upsertSlot(ctx, tx, to)
	})
}

func (r *slotRepository) ReplaceStaffWeek(ctx context.Context, staffID string, week domain.Week, slots []domain.ScheduleSlot) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		b := builder.NewSQLBuilder()
		query, args := b.Delete("shift_schedules").
			Where("staff_id = ?", staffID).
			Where("week_number = ?", week.Number).
			Where("year = ?", week.Year).
			Build()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return mapError("clear staff week", err)
		}
		if len(slots) == 0 {
			return nil
		}

		ins := builder.NewSQLBuilder().
			Insert("shift_schedules", "staff_id", "day_of_week", "shift_type", "hours", "week_number", "year")
		for _, s := range slots {
			ins.Values(s.StaffID, s.Day, s.Shift, s.Hours, s.WeekNumber, s.Year)
		}
		query, args = ins.Returning("id", "created_at").Build()

		rows, err := tx.QueryContext(ctx, query, args...)
		if err != nil {
			return mapError("insert staff week", err)
		}
		defer rows.Close()

		// Postgres returns the rows of a multi-row VALUES insert in input order.
		i := 0
		for rows.Next() {
			if i >= len(slots) {
				return fmt.Errorf("insert staff week: more rows returned than inserted")
			}
			if err := rows.Scan(&slots[i].ID, &slots[i].CreatedAt); err != nil {
				return mapError("scan inserted slot", err)
			}
			i++
		}
		if err := rows.Err(); err != nil {
			return mapError("insert staff week", err)
		}
		if i != len(slots) {
			return fmt.Errorf("insert staff week: %d of %d rows returned", i, len(slots))
		}
		return nil
	})
}

func upsertSlot(ctx context.Context, db dbtx, slot *domain.ScheduleSlot) error {
	b := builder.NewSQLBuilder()
	query, args := b.Insert("shift_schedules", "staff_id", "day_of_week", "shift_type", "hours", "week_number", "year").
		Values(slot.StaffID, slot.Day, slot.Shift, slot.Hours, slot.WeekNumber, slot.Year).
		OnConflictUpdate(slotConflictCols, "shift_type", "hours").
		Returning("id", "created_at").
		Build()

	err := db.QueryRowContext(ctx, query, args...).Scan(&slot.ID, &slot.CreatedAt)
	return mapError("upsert slot", err)
}

func deleteSlot(ctx context.Context, db dbtx, staffID string, day domain.Weekday, shift domain.ShiftType, week domain.Week) error {
	b := builder.NewSQLBuilder()
	query, args := b.Delete("shift_schedules").
		Where("staff_id = ?", staffID).
		Where("day_of_week = ?", day).
		Where("shift_type = ?", shift).
		Where("week_number = ?", week.Number).
		Where("year = ?", week.Year).
		Build()

	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return mapError("delete slot", err)
	}
	return nil
}
