package domain

import "context"

// StaffReader is the read side the schedule store needs.
type StaffReader interface {
	ListStaff(ctx context.Context, filter StaffFilter) ([]StaffMember, error)
}

// StaffRepository defines the interface for staff data access
type StaffRepository interface {
	StaffReader
	Create(ctx context.Context, s *StaffMember) error
	GetByID(ctx context.Context, id string) (*StaffMember, error)
	Update(ctx context.Context, s *StaffMember) error
	SearchByName(ctx context.Context, name string, limit int) ([]StaffMember, error)
	GetByIDs(ctx context.Context, ids []string) ([]StaffMember, error)
}

// SlotRepository is the backing store for shift_schedules.
type SlotRepository interface {
	ListWeek(ctx context.Context, week Week) ([]ScheduleSlot, error)
	// Upsert writes the slot keyed on (staff, day, week, year).
	Upsert(ctx context.Context, slot *ScheduleSlot) error
	DeleteAt(ctx context.Context, staffID string, day Weekday, shift ShiftType, week Week) error
	// Move deletes the slot at (fromDay, fromShift) and upserts to in one step.
	Move(ctx context.Context, fromDay Weekday, fromShift ShiftType, to *ScheduleSlot) error
	// ReplaceStaffWeek deletes every slot of the staff member in the week and
	// inserts slots in their place.
	ReplaceStaffWeek(ctx context.Context, staffID string, week Week, slots []ScheduleSlot) error
}

// AvailabilityRepository defines the interface for staff_availability
type AvailabilityRepository interface {
	ListByStaff(ctx context.Context, staffID string) ([]Availability, error)
	Upsert(ctx context.Context, a *Availability) error
}

// TimeOffRepository defines the interface for time_off_requests
type TimeOffRepository interface {
	Create(ctx context.Context, r *TimeOffRequest) error
	ListByStaff(ctx context.Context, staffID string) ([]TimeOffRequest, error)
	UpdateStatus(ctx context.Context, id string, status TimeOffStatus) error
	Delete(ctx context.Context, id string) error
}

// BudgetRepository defines the interface for budgets
type BudgetRepository interface {
	ListForMonth(ctx context.Context, month, year int) ([]Budget, error)
	Upsert(ctx context.Context, b *Budget) error
}

// StaffIndex is the optional search index over the staff directory.
type StaffIndex interface {
	IndexStaff(ctx context.Context, s StaffMember) error
	SearchStaffByName(ctx context.Context, name string) ([]StaffMember, error)
}
