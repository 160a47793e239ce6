package service

import (
	"context"

	"github.com/locvowork/hotel_scheduler/apigateway/internal/domain"
	"github.com/locvowork/hotel_scheduler/apigateway/internal/logger"
)

type TimeOffService struct {
	repo domain.TimeOffRepository
}

func NewTimeOffService(repo domain.TimeOffRepository) *TimeOffService {
	return &TimeOffService{repo: repo}
}

func (ts *TimeOffService) Create(ctx context.Context, req *domain.TimeOffRequest) error {
	if req.StaffID == "" {
		return domain.NewValidationError("staff_id", "is required")
	}
	if req.StartDate.IsZero() {
		return domain.NewValidationError("start_date", "is required")
	}
	if req.EndDate.IsZero() {
		return domain.NewValidationError("end_date", "is required")
	}
	if req.EndDate.Before(req.StartDate) {
		return domain.NewValidationError("end_date", "must not be before start_date")
	}
	req.Status = domain.TimeOffPending

	return ts.repo.Create(ctx, req)
}

// List returns the requests of a staff member, latest start first.
func (ts *TimeOffService) List(ctx context.Context, staffID string) ([]domain.TimeOffRequest, error) {
	return ts.repo.ListByStaff(ctx, staffID)
}

func (ts *TimeOffService) UpdateStatus(ctx context.Context, role domain.Role, id string, status domain.TimeOffStatus) error {
	if !role.IsManager() {
		return domain.ErrForbidden
	}
	if !status.Valid() {
		return domain.NewValidationError("status", "must be one of pending, approved, rejected")
	}
	if err := ts.repo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	logger.InfoLog(ctx, "time off request %s marked %s", id, status)
	return nil
}

func (ts *TimeOffService) Delete(ctx context.Context, role domain.Role, id string) error {
	if !role.IsManager() {
		return domain.ErrForbidden
	}
	return ts.repo.Delete(ctx, id)
}
