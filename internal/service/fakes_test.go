package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/locvowork/hotel_scheduler/apigateway/internal/domain"
)

var errBackend = errors.New("backend unavailable")

type fakeStaffRepo struct {
	members   map[string]domain.StaffMember
	nextID    int
	searchErr error
}

func newFakeStaffRepo(members ...domain.StaffMember) *fakeStaffRepo {
	r := &fakeStaffRepo{members: make(map[string]domain.StaffMember)}
	for _, m := range members {
		r.members[m.ID] = m
	}
	return r
}

func (r *fakeStaffRepo) ListStaff(_ context.Context, filter domain.StaffFilter) ([]domain.StaffMember, error) {
	var out []domain.StaffMember
	for _, m := range r.members {
		if filter.Department == "" || m.Department == filter.Department {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeStaffRepo) Create(_ context.Context, s *domain.StaffMember) error {
	r.nextID++
	s.ID = fmt.Sprintf("new-%d", r.nextID)
	r.members[s.ID] = *s
	return nil
}

func (r *fakeStaffRepo) GetByID(_ context.Context, id string) (*domain.StaffMember, error) {
	m, ok := r.members[id]
	if !ok {
		return nil, fmt.Errorf("get staff member: %w", domain.ErrNotFound)
	}
	return &m, nil
}

func (r *fakeStaffRepo) Update(_ context.Context, s *domain.StaffMember) error {
	if _, ok := r.members[s.ID]; !ok {
		return fmt.Errorf("update staff member: %w", domain.ErrNotFound)
	}
	r.members[s.ID] = *s
	return nil
}

func (r *fakeStaffRepo) GetByIDs(_ context.Context, ids []string) ([]domain.StaffMember, error) {
	if r.searchErr != nil {
		return nil, r.searchErr
	}
	// Unordered, like the database.
	var out []domain.StaffMember
	for _, m := range r.members {
		for _, id := range ids {
			if m.ID == id {
				out = append(out, m)
			}
		}
	}
	return out, nil
}

func (r *fakeStaffRepo) SearchByName(_ context.Context, name string, _ int) ([]domain.StaffMember, error) {
	if r.searchErr != nil {
		return nil, r.searchErr
	}
	var out []domain.StaffMember
	for _, m := range r.members {
		if strings.Contains(strings.ToLower(m.Name), strings.ToLower(name)) {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeIndex struct {
	indexed   []string
	results   []domain.StaffMember
	searchErr error
	indexErr  error
}

func (f *fakeIndex) IndexStaff(_ context.Context, s domain.StaffMember) error {
	if f.indexErr != nil {
		return f.indexErr
	}
	f.indexed = append(f.indexed, s.ID)
	return nil
}

func (f *fakeIndex) SearchStaffByName(context.Context, string) ([]domain.StaffMember, error) {
	return f.results, f.searchErr
}

type slotKey struct {
	staffID string
	day     domain.Weekday
	week    domain.Week
}

type fakeSlotRepo struct {
	slots    map[slotKey]domain.ScheduleSlot
	nextID   int64
	writeErr error
}

func newFakeSlotRepo() *fakeSlotRepo {
	return &fakeSlotRepo{slots: make(map[slotKey]domain.ScheduleSlot)}
}

func (r *fakeSlotRepo) seed(week domain.Week, staffID string, day domain.Weekday, shift domain.ShiftType) {
	r.nextID++
	r.slots[slotKey{staffID, day, week}] = domain.ScheduleSlot{
		ID: r.nextID, StaffID: staffID, Day: day, Shift: shift, Hours: shift.NominalHours(),
		WeekNumber: week.Number, Year: week.Year,
	}
}

func (r *fakeSlotRepo) ListWeek(_ context.Context, week domain.Week) ([]domain.ScheduleSlot, error) {
	var out []domain.ScheduleSlot
	for k, s := range r.slots {
		if k.week == week {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeSlotRepo) Upsert(_ context.Context, slot *domain.ScheduleSlot) error {
	if r.writeErr != nil {
		return r.writeErr
	}
	r.nextID++
	slot.ID = r.nextID
	r.slots[slotKey{slot.StaffID, slot.Day, domain.Week{Number: slot.WeekNumber, Year: slot.Year}}] = *slot
	return nil
}

func (r *fakeSlotRepo) DeleteAt(_ context.Context, staffID string, day domain.Weekday, shift domain.ShiftType, week domain.Week) error {
	if r.writeErr != nil {
		return r.writeErr
	}
	k := slotKey{staffID, day, week}
	if s, ok := r.slots[k]; ok && s.Shift == shift {
		delete(r.slots, k)
	}
	return nil
}

func (r *fakeSlotRepo) Move(ctx context.Context, fromDay domain.Weekday, fromShift domain.ShiftType, to *domain.ScheduleSlot) error {
	if r.writeErr != nil {
		return r.writeErr
	}
	week := domain.Week{Number: to.WeekNumber, Year: to.Year}
	if err := r.DeleteAt(ctx, to.StaffID, fromDay, fromShift, week); err != nil {
		return err
	}
	return r.Upsert(ctx, to)
}

func (r *fakeSlotRepo) ReplaceStaffWeek(ctx context.Context, staffID string, week domain.Week, slots []domain.ScheduleSlot) error {
	if r.writeErr != nil {
		return r.writeErr
	}
	for k := range r.slots {
		if k.staffID == staffID && k.week == week {
			delete(r.slots, k)
		}
	}
	for i := range slots {
		if err := r.Upsert(ctx, &slots[i]); err != nil {
			return err
		}
	}
	return nil
}

type fakeAvailabilityRepo struct {
	rows map[string]domain.Availability
}

func (r *fakeAvailabilityRepo) ListByStaff(_ context.Context, staffID string) ([]domain.Availability, error) {
	var out []domain.Availability
	for _, a := range r.rows {
		if a.StaffID == staffID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAvailabilityRepo) Upsert(_ context.Context, a *domain.Availability) error {
	if r.rows == nil {
		r.rows = make(map[string]domain.Availability)
	}
	a.ID = int64(len(r.rows) + 1)
	r.rows[a.StaffID+"/"+a.DayOfWeek] = *a
	return nil
}

type fakeTimeOffRepo struct {
	requests map[string]domain.TimeOffRequest
}

func (r *fakeTimeOffRepo) Create(_ context.Context, req *domain.TimeOffRequest) error {
	if r.requests == nil {
		r.requests = make(map[string]domain.TimeOffRequest)
	}
	req.ID = fmt.Sprintf("req-%d", len(r.requests)+1)
	r.requests[req.ID] = *req
	return nil
}

func (r *fakeTimeOffRepo) ListByStaff(_ context.Context, staffID string) ([]domain.TimeOffRequest, error) {
	var out []domain.TimeOffRequest
	for _, req := range r.requests {
		if req.StaffID == staffID {
			out = append(out, req)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	return out, nil
}

func (r *fakeTimeOffRepo) UpdateStatus(_ context.Context, id string, status domain.TimeOffStatus) error {
	req, ok := r.requests[id]
	if !ok {
		return fmt.Errorf("update time off status: %w", domain.ErrNotFound)
	}
	req.Status = status
	r.requests[id] = req
	return nil
}

func (r *fakeTimeOffRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.requests[id]; !ok {
		return fmt.Errorf("delete time off request: %w", domain.ErrNotFound)
	}
	delete(r.requests, id)
	return nil
}

type fakeBudgetRepo struct {
	budgets []domain.Budget
}

func (r *fakeBudgetRepo) ListForMonth(_ context.Context, month, year int) ([]domain.Budget, error) {
	var out []domain.Budget
	for _, b := range r.budgets {
		if b.Month == month && b.Year == year {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBudgetRepo) Upsert(_ context.Context, b *domain.Budget) error {
	for i, existing := range r.budgets {
		if existing.Department == b.Department && existing.Month == b.Month && existing.Year == b.Year {
			b.ID = existing.ID
			r.budgets[i] = *b
			return nil
		}
	}
	b.ID = int64(len(r.budgets) + 1)
	r.budgets = append(r.budgets, *b)
	return nil
}

var (
	sarah = domain.StaffMember{ID: "s1", Name: "Sarah Johnson", Department: domain.DepartmentFrontDesk, HourlyRate: 15, Avatar: "SJ"}
	emma  = domain.StaffMember{ID: "s2", Name: "Emma Williams", Department: domain.DepartmentHousekeeping, HourlyRate: 12, Avatar: "EW"}
	david = domain.StaffMember{ID: "s3", Name: "David Thompson", Department: domain.DepartmentRestaurant, HourlyRate: 20, Avatar: "DT"}

	week47 = domain.Week{Number: 47, Year: 2025}
)
