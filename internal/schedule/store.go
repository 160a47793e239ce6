// Package schedule holds the weekly shift-assignment model: the in-memory
// placement list for one week, its mutation protocol, the fixed shift
// templates, and the labour cost fold.
package schedule

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/locvowork/hotel_scheduler/apigateway/internal/domain"
	"github.com/locvowork/hotel_scheduler/apigateway/internal/logger"
)

var ErrNotLoaded = errors.New("schedule: week not loaded")

// WriteError is returned when the backing write of a mutation fails. The
// store has already reverted its local state when this is returned.
type WriteError struct {
	Op  string
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("schedule %s: backing write failed: %v", e.Op, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Placement is one row of the calendar view: a staff member with either a
// (day, shift) assignment or, when Day is empty, a placeholder in the
// unassigned pool.
type Placement struct {
	SlotID     int64             `json:"slot_id,omitempty"`
	StaffID    string            `json:"staff_id"`
	Name       string            `json:"name"`
	Department domain.Department `json:"department"`
	Avatar     string            `json:"avatar"`
	HourlyRate float64           `json:"hourly_rate"`
	Day        domain.Weekday    `json:"day,omitempty"`
	Shift      domain.ShiftType  `json:"shift,omitempty"`
}

// Assigned reports whether the placement has a day set.
func (p Placement) Assigned() bool { return p.Day != "" }

func (p Placement) at(day domain.Weekday, shift domain.ShiftType) bool {
	return p.Day == day && p.Shift == shift
}

// MoveRequest describes one drop on the calendar. SourceDay and SourceShift
// are set when the drag started on an existing cell and empty when it
// started in the unassigned pool.
type MoveRequest struct {
	StaffID     string
	TargetDay   domain.Weekday
	TargetShift domain.ShiftType
	SourceDay   domain.Weekday
	SourceShift domain.ShiftType
}

// HasSource reports whether the drop is a move rather than an insert.
func (r MoveRequest) HasSource() bool {
	return r.SourceDay != "" || r.SourceShift != ""
}

func (r MoveRequest) validate() error {
	if r.StaffID == "" {
		return domain.NewValidationError("staff_id", "is required")
	}
	if !r.TargetDay.Valid() {
		return domain.ErrInvalidDay
	}
	if !r.TargetShift.Valid() {
		return domain.ErrInvalidShift
	}
	if r.HasSource() {
		if !r.SourceDay.Valid() {
			return domain.ErrInvalidDay
		}
		if !r.SourceShift.Valid() {
			return domain.ErrInvalidShift
		}
	}
	return nil
}

// View is the rendered state of a loaded week.
type View struct {
	Week             domain.Week                   `json:"week"`
	Placements       []Placement                   `json:"placements"`
	Unassigned       []domain.StaffMember          `json:"unassigned"`
	WeeklyCost       float64                       `json:"weekly_cost"`
	CostByDepartment map[domain.Department]float64 `json:"cost_by_department"`
}

// Store holds the placements of one week and keeps them consistent with the
// backing store after every mutation. Local state is applied before the
// backing write and reverted when the write fails.
//
// A Store is not safe for concurrent use.
type Store struct {
	staff domain.StaffReader
	slots domain.SlotRepository

	week       domain.Week
	loaded     bool
	members    map[string]domain.StaffMember
	order      []string
	placements []Placement
	cost       float64
}

// NewStore creates a store over the given backing repositories.
func NewStore(staff domain.StaffReader, slots domain.SlotRepository) *Store {
	return &Store{
		staff:   staff,
		slots:   slots,
		members: make(map[string]domain.StaffMember),
	}
}

// Week returns the loaded week.
func (s *Store) Week() domain.Week { return s.week }

// Members returns the staff read by the last Load, in load order.
func (s *Store) Members() []domain.StaffMember {
	out := make([]domain.StaffMember, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.members[id])
	}
	return out
}

// Load fetches all staff and all slots of week and rebuilds the placement
// list. Staff members without slots get one placeholder each.
func (s *Store) Load(ctx context.Context, week domain.Week) ([]Placement, error) {
	if err := week.Validate(); err != nil {
		return nil, err
	}
	ctx = logger.WithLogger(ctx, map[string]interface{}{"week": week.Number, "year": week.Year})

	staff, err := s.staff.ListStaff(ctx, domain.StaffFilter{})
	if err != nil {
		logger.ErrorLog(ctx, "failed to load staff: %v", err)
		return nil, fmt.Errorf("load staff: %w", err)
	}
	slots, err := s.slots.ListWeek(ctx, week)
	if err != nil {
		logger.ErrorLog(ctx, "failed to load schedule slots: %v", err)
		return nil, fmt.Errorf("load slots: %w", err)
	}

	s.week = week
	s.members = make(map[string]domain.StaffMember, len(staff))
	s.order = s.order[:0]
	for _, m := range staff {
		s.members[m.ID] = m
		s.order = append(s.order, m.ID)
	}

	s.placements = s.placements[:0]
	for _, slot := range slots {
		m, ok := s.members[slot.StaffID]
		if !ok {
			logger.WarnLog(ctx, "slot %d references unknown staff %s", slot.ID, slot.StaffID)
			continue
		}
		p := newPlacement(m)
		p.SlotID = slot.ID
		p.Day = slot.Day
		p.Shift = slot.Shift
		s.placements = append(s.placements, p)
	}
	for _, id := range s.order {
		s.ensurePlaceholder(id)
	}

	s.loaded = true
	s.recompute()
	logger.DebugLog(ctx, "loaded %d placements for %d staff", len(s.placements), len(staff))
	return s.Placements(), nil
}

// Move reassigns one slot. With a source coordinate the slot at the source is
// deleted and the target is upserted. Without one the target is inserted as an
// additional placement. A target day that already holds a slot for the staff
// member is overwritten.
func (s *Store) Move(ctx context.Context, req MoveRequest) error {
	if !s.loaded {
		return ErrNotLoaded
	}
	if err := req.validate(); err != nil {
		return err
	}
	member, ok := s.members[req.StaffID]
	if !ok {
		return fmt.Errorf("staff %s: %w", req.StaffID, domain.ErrNotFound)
	}
	if req.HasSource() {
		if req.SourceDay == req.TargetDay && req.SourceShift == req.TargetShift {
			return nil
		}
		if s.find(req.StaffID, req.SourceDay, req.SourceShift) < 0 {
			return fmt.Errorf("no slot for %s at %s %s: %w", req.StaffID, req.SourceDay, req.SourceShift, domain.ErrNotFound)
		}
	}

	ctx = logger.WithLogger(ctx, map[string]interface{}{"staff_id": req.StaffID})
	snapshot := s.snapshot()

	if req.HasSource() {
		s.remove(func(p Placement) bool {
			return p.StaffID == req.StaffID && p.at(req.SourceDay, req.SourceShift)
		})
	}
	idx := s.place(member, req.TargetDay, req.TargetShift)
	s.recompute()

	slot := &domain.ScheduleSlot{
		StaffID:    req.StaffID,
		Day:        req.TargetDay,
		Shift:      req.TargetShift,
		Hours:      req.TargetShift.NominalHours(),
		WeekNumber: s.week.Number,
		Year:       s.week.Year,
	}
	var err error
	if req.HasSource() {
		err = s.slots.Move(ctx, req.SourceDay, req.SourceShift, slot)
	} else {
		err = s.slots.Upsert(ctx, slot)
	}
	if err != nil {
		s.restore(snapshot)
		logger.ErrorLog(ctx, "move failed, local state reverted: %v", err)
		return &WriteError{Op: "move", Err: err}
	}

	s.placements[idx].SlotID = slot.ID
	logger.InfoLog(ctx, "%s assigned to %s %s", member.Name, req.TargetDay, req.TargetShift)
	return nil
}

// ApplyTemplate replaces every slot of the staff member in the loaded week
// with pattern. A day listed twice keeps its last shift.
func (s *Store) ApplyTemplate(ctx context.Context, staffID string, pattern []PatternSlot) error {
	if !s.loaded {
		return ErrNotLoaded
	}
	member, ok := s.members[staffID]
	if !ok {
		return fmt.Errorf("staff %s: %w", staffID, domain.ErrNotFound)
	}
	pattern, err := normalizePattern(pattern)
	if err != nil {
		return err
	}

	ctx = logger.WithLogger(ctx, map[string]interface{}{"staff_id": staffID})
	snapshot := s.snapshot()

	s.remove(func(p Placement) bool { return p.StaffID == staffID })
	start := len(s.placements)
	slots := make([]domain.ScheduleSlot, 0, len(pattern))
	for _, ps := range pattern {
		p := newPlacement(member)
		p.Day = ps.Day
		p.Shift = ps.Shift
		s.placements = append(s.placements, p)
		slots = append(slots, domain.ScheduleSlot{
			StaffID:    staffID,
			Day:        ps.Day,
			Shift:      ps.Shift,
			Hours:      ps.Shift.NominalHours(),
			WeekNumber: s.week.Number,
			Year:       s.week.Year,
		})
	}
	s.recompute()

	if err := s.slots.ReplaceStaffWeek(ctx, staffID, s.week, slots); err != nil {
		s.restore(snapshot)
		logger.ErrorLog(ctx, "apply template failed, local state reverted: %v", err)
		return &WriteError{Op: "apply-template", Err: err}
	}

	for i := range slots {
		s.placements[start+i].SlotID = slots[i].ID
	}
	logger.InfoLog(ctx, "applied %d-slot template to %s", len(slots), member.Name)
	return nil
}

// Unassign removes the slot of staffID at (day, shift). When it was the last
// slot the member returns to the unassigned pool.
func (s *Store) Unassign(ctx context.Context, staffID string, day domain.Weekday, shift domain.ShiftType) error {
	if !s.loaded {
		return ErrNotLoaded
	}
	if !day.Valid() {
		return domain.ErrInvalidDay
	}
	if !shift.Valid() {
		return domain.ErrInvalidShift
	}
	if s.find(staffID, day, shift) < 0 {
		return fmt.Errorf("no slot for %s at %s %s: %w", staffID, day, shift, domain.ErrNotFound)
	}

	ctx = logger.WithLogger(ctx, map[string]interface{}{"staff_id": staffID})
	snapshot := s.snapshot()

	s.remove(func(p Placement) bool { return p.StaffID == staffID && p.at(day, shift) })
	s.ensurePlaceholder(staffID)
	s.recompute()

	if err := s.slots.DeleteAt(ctx, staffID, day, shift, s.week); err != nil {
		s.restore(snapshot)
		logger.ErrorLog(ctx, "unassign failed, local state reverted: %v", err)
		return &WriteError{Op: "unassign", Err: err}
	}
	return nil
}

// Placements returns a copy of the current placement list in display order.
func (s *Store) Placements() []Placement {
	out := make([]Placement, len(s.placements))
	copy(out, s.placements)
	sortPlacements(out)
	return out
}

// Unassigned returns the staff members with no slot in the week, once each.
func (s *Store) Unassigned() []domain.StaffMember {
	out := []domain.StaffMember{}
	for _, p := range s.Placements() {
		if !p.Assigned() {
			out = append(out, s.members[p.StaffID])
		}
	}
	return out
}

// SlotsOf returns the assigned placements of one staff member.
func (s *Store) SlotsOf(staffID string) []Placement {
	var out []Placement
	for _, p := range s.Placements() {
		if p.StaffID == staffID && p.Assigned() {
			out = append(out, p)
		}
	}
	return out
}

// Member returns the loaded staff record.
func (s *Store) Member(staffID string) (domain.StaffMember, bool) {
	m, ok := s.members[staffID]
	return m, ok
}

// WeeklyCost returns the labour cost of the loaded week.
func (s *Store) WeeklyCost() float64 { return s.cost }

// CostByDepartment returns the labour cost grouped by department.
func (s *Store) CostByDepartment() map[domain.Department]float64 {
	return CostByDepartment(s.placements)
}

// CostByStaff returns the labour cost grouped by staff id.
func (s *Store) CostByStaff() map[string]float64 {
	return CostByStaff(s.placements)
}

// View renders the loaded week.
func (s *Store) View() View {
	return View{
		Week:             s.week,
		Placements:       s.Placements(),
		Unassigned:       s.Unassigned(),
		WeeklyCost:       s.cost,
		CostByDepartment: s.CostByDepartment(),
	}
}

func newPlacement(m domain.StaffMember) Placement {
	return Placement{
		StaffID:    m.ID,
		Name:       m.Name,
		Department: m.Department,
		Avatar:     m.Avatar,
		HourlyRate: m.HourlyRate,
	}
}

// place upserts the placement of member on day and returns its index. Any
// placement of the member on the same day, and its placeholder, is dropped.
func (s *Store) place(member domain.StaffMember, day domain.Weekday, shift domain.ShiftType) int {
	s.remove(func(p Placement) bool {
		return p.StaffID == member.ID && (!p.Assigned() || p.Day == day)
	})
	p := newPlacement(member)
	p.Day = day
	p.Shift = shift
	s.placements = append(s.placements, p)
	return len(s.placements) - 1
}

func (s *Store) ensurePlaceholder(staffID string) {
	for _, p := range s.placements {
		if p.StaffID == staffID {
			return
		}
	}
	s.placements = append(s.placements, newPlacement(s.members[staffID]))
}

func (s *Store) find(staffID string, day domain.Weekday, shift domain.ShiftType) int {
	for i, p := range s.placements {
		if p.StaffID == staffID && p.at(day, shift) {
			return i
		}
	}
	return -1
}

func (s *Store) remove(match func(Placement) bool) {
	kept := s.placements[:0]
	for _, p := range s.placements {
		if !match(p) {
			kept = append(kept, p)
		}
	}
	s.placements = kept
}

func (s *Store) snapshot() []Placement {
	out := make([]Placement, len(s.placements))
	copy(out, s.placements)
	return out
}

func (s *Store) restore(snapshot []Placement) {
	s.placements = snapshot
	s.recompute()
}

func (s *Store) recompute() {
	s.cost = WeeklyCost(s.placements)
}

func normalizePattern(pattern []PatternSlot) ([]PatternSlot, error) {
	if len(pattern) == 0 {
		return nil, domain.NewValidationError("pattern", "must not be empty")
	}
	out := make([]PatternSlot, 0, len(pattern))
	pos := make(map[domain.Weekday]int, len(pattern))
	for _, ps := range pattern {
		if !ps.Day.Valid() {
			return nil, domain.ErrInvalidDay
		}
		if !ps.Shift.Valid() {
			return nil, domain.ErrInvalidShift
		}
		if i, ok := pos[ps.Day]; ok {
			out[i].Shift = ps.Shift
			continue
		}
		pos[ps.Day] = len(out)
		out = append(out, ps)
	}
	return out, nil
}

// sortPlacements orders by staff name, then weekday, then shift. Placeholders
// sort after the assigned rows of the same member.
func sortPlacements(ps []Placement) {
	sort.SliceStable(ps, func(i, j int) bool {
		a, b := ps[i], ps[j]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		if a.StaffID != b.StaffID {
			return a.StaffID < b.StaffID
		}
		if a.Assigned() != b.Assigned() {
			return a.Assigned()
		}
		if a.Day != b.Day {
			return a.Day.Index() < b.Day.Index()
		}
		return a.Shift.Order() < b.Shift.Order()
	})
}
