package service

import (
	"context"
	"time"

	"github.com/locvowork/hotel_scheduler/apigateway/internal/domain"
)

var preferredShifts = map[string]bool{"morning": true, "day": true, "evening": true, "night": true}

type AvailabilityService struct {
	repo domain.AvailabilityRepository
}

func NewAvailabilityService(repo domain.AvailabilityRepository) *AvailabilityService {
	return &AvailabilityService{repo: repo}
}

// Get returns one record per weekday, Monday first. Days without a stored
// row default to available.
func (as *AvailabilityService) Get(ctx context.Context, staffID string) ([]domain.Availability, error) {
	stored, err := as.repo.ListByStaff(ctx, staffID)
	if err != nil {
		return nil, err
	}
	byDay := make(map[string]domain.Availability, len(stored))
	for _, a := range stored {
		byDay[a.DayOfWeek] = a
	}

	out := make([]domain.Availability, 0, len(domain.Weekdays))
	for _, d := range domain.Weekdays {
		a, ok := byDay[d.Lower()]
		if !ok {
			a = domain.Availability{StaffID: staffID, DayOfWeek: d.Lower(), IsAvailable: true}
		}
		out = append(out, a)
	}
	return out, nil
}

// Set upserts the availability of one day.
func (as *AvailabilityService) Set(ctx context.Context, staffID, day string, a domain.Availability) (*domain.Availability, error) {
	wd, err := domain.ParseWeekday(day)
	if err != nil {
		return nil, err
	}
	a.StaffID = staffID
	a.DayOfWeek = wd.Lower()

	a.PreferredShift = emptyToNil(a.PreferredShift)
	if a.PreferredShift != nil && !preferredShifts[*a.PreferredShift] {
		return nil, domain.NewValidationError("preferred_shift", "must be one of morning, day, evening, night")
	}
	a.StartTime = emptyToNil(a.StartTime)
	a.EndTime = emptyToNil(a.EndTime)
	for field, v := range map[string]*string{"start_time": a.StartTime, "end_time": a.EndTime} {
		if v == nil {
			continue
		}
		if _, err := time.Parse("15:04", *v); err != nil {
			return nil, domain.NewValidationError(field, "must be HH:MM")
		}
	}

	if err := as.repo.Upsert(ctx, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
