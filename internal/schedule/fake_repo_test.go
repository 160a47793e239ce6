package schedule

import (
	"context"
	"errors"
	"sort"

	"github.com/locvowork/hotel_scheduler/apigateway/internal/domain"
)

var errBackend = errors.New("backend unavailable")

type fakeStaff struct {
	staff []domain.StaffMember
	err   error
}

func (f *fakeStaff) ListStaff(ctx context.Context, filter domain.StaffFilter) ([]domain.StaffMember, error) {
	if f.err != nil {
		return nil, f.err
	}
	return append([]domain.StaffMember(nil), f.staff...), nil
}

type slotKey struct {
	staffID string
	day     domain.Weekday
	week    int
	year    int
}

// fakeSlots mimics the shift_schedules table with its
// (staff, day, week, year) unique key.
type fakeSlots struct {
	rows   map[slotKey]domain.ScheduleSlot
	nextID int64

	listErr    error
	writeErr   error
	writeCalls int
}

func newFakeSlots(seed ...domain.ScheduleSlot) *fakeSlots {
	f := &fakeSlots{rows: make(map[slotKey]domain.ScheduleSlot)}
	for _, s := range seed {
		s := s
		_ = f.Upsert(context.Background(), &s)
	}
	f.writeCalls = 0
	return f
}

func keyOf(s domain.ScheduleSlot) slotKey {
	return slotKey{s.StaffID, s.Day, s.WeekNumber, s.Year}
}

func (f *fakeSlots) ListWeek(ctx context.Context, week domain.Week) ([]domain.ScheduleSlot, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []domain.ScheduleSlot
	for k, v := range f.rows {
		if k.week == week.Number && k.year == week.Year {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeSlots) Upsert(ctx context.Context, slot *domain.ScheduleSlot) error {
	f.writeCalls++
	if f.writeErr != nil {
		return f.writeErr
	}
	k := keyOf(*slot)
	if existing, ok := f.rows[k]; ok {
		slot.ID = existing.ID
	} else {
		f.nextID++
		slot.ID = f.nextID
	}
	f.rows[k] = *slot
	return nil
}

func (f *fakeSlots) DeleteAt(ctx context.Context, staffID string, day domain.Weekday, shift domain.ShiftType, week domain.Week) error {
	f.writeCalls++
	if f.writeErr != nil {
		return f.writeErr
	}
	k := slotKey{staffID, day, week.Number, week.Year}
	if row, ok := f.rows[k]; ok && row.Shift == shift {
		delete(f.rows, k)
	}
	return nil
}

func (f *fakeSlots) Move(ctx context.Context, fromDay domain.Weekday, fromShift domain.ShiftType, to *domain.ScheduleSlot) error {
	if f.writeErr != nil {
		f.writeCalls++
		return f.writeErr
	}
	week := domain.Week{Number: to.WeekNumber, Year: to.Year}
	if err := f.DeleteAt(ctx, to.StaffID, fromDay, fromShift, week); err != nil {
		return err
	}
	return f.Upsert(ctx, to)
}

func (f *fakeSlots) ReplaceStaffWeek(ctx context.Context, staffID string, week domain.Week, slots []domain.ScheduleSlot) error {
	f.writeCalls++
	if f.writeErr != nil {
		return f.writeErr
	}
	for k := range f.rows {
		if k.staffID == staffID && k.week == week.Number && k.year == week.Year {
			delete(f.rows, k)
		}
	}
	for i := range slots {
		f.nextID++
		slots[i].ID = f.nextID
		f.rows[keyOf(slots[i])] = slots[i]
	}
	return nil
}

func (f *fakeSlots) countFor(staffID string) int {
	n := 0
	for k := range f.rows {
		if k.staffID == staffID {
			n++
		}
	}
	return n
}

func (f *fakeSlots) has(staffID string, day domain.Weekday, shift domain.ShiftType, week domain.Week) bool {
	row, ok := f.rows[slotKey{staffID, day, week.Number, week.Year}]
	return ok && row.Shift == shift
}
