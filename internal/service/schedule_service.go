package service

import (
	"context"

	"github.com/locvowork/hotel_scheduler/apigateway/internal/domain"
	"github.com/locvowork/hotel_scheduler/apigateway/internal/schedule"
)

// ScheduleService builds one schedule.Store per call, so no state outlives a request.
type ScheduleService struct {
	staff domain.StaffReader
	slots domain.SlotRepository
}

func NewScheduleService(staff domain.StaffReader, slots domain.SlotRepository) *ScheduleService {
	return &ScheduleService{staff: staff, slots: slots}
}

// Load returns a store with week loaded.
func (s *ScheduleService) Load(ctx context.Context, week domain.Week) (*schedule.Store, error) {
	store := schedule.NewStore(s.staff, s.slots)
	if _, err := store.Load(ctx, week); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *ScheduleService) GetWeek(ctx context.Context, week domain.Week) (*schedule.View, error) {
	return s.mutate(ctx, week, nil)
}

func (s *ScheduleService) Move(ctx context.Context, week domain.Week, req schedule.MoveRequest) (*schedule.View, error) {
	return s.mutate(ctx, week, func(store *schedule.Store) error {
		return store.Move(ctx, req)
	})
}

func (s *ScheduleService) ApplyTemplate(ctx context.Context, week domain.Week, staffID string, id schedule.TemplateID, shift domain.ShiftType) (*schedule.View, error) {
	pattern, err := schedule.Expand(id, shift)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, week, func(store *schedule.Store) error {
		return store.ApplyTemplate(ctx, staffID, pattern)
	})
}

func (s *ScheduleService) Unassign(ctx context.Context, week domain.Week, staffID string, day domain.Weekday, shift domain.ShiftType) (*schedule.View, error) {
	return s.mutate(ctx, week, func(store *schedule.Store) error {
		return store.Unassign(ctx, staffID, day, shift)
	})
}

func (s *ScheduleService) Templates() []schedule.Template {
	return schedule.Templates()
}

func (s *ScheduleService) PreviewTemplate(id schedule.TemplateID, shift domain.ShiftType) ([]schedule.PatternSlot, error) {
	return schedule.Expand(id, shift)
}

func (s *ScheduleService) mutate(ctx context.Context, week domain.Week, fn func(*schedule.Store) error) (*schedule.View, error) {
	store, err := s.Load(ctx, week)
	if err != nil {
		return nil, err
	}
	if fn != nil {
		if err := fn(store); err != nil {
			return nil, err
		}
	}
	view := store.View()
	return &view, nil
}
