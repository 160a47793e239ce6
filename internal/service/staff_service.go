package service

import (
	"context"
	"strings"

	"github.com/locvowork/hotel_scheduler/apigateway/internal/domain"
	"github.com/locvowork/hotel_scheduler/apigateway/internal/logger"
)

const defaultSearchLimit = 50

// StaffService handles the staff directory.
type StaffService struct {
	repo  domain.StaffRepository
	index domain.StaffIndex
}

// NewStaffService creates a StaffService. index may be nil when search is not configured.
func NewStaffService(repo domain.StaffRepository, index domain.StaffIndex) *StaffService {
	return &StaffService{repo: repo, index: index}
}

func validateStaff(s *domain.StaffMember) error {
	s.Name = strings.TrimSpace(s.Name)
	if s.Name == "" {
		return domain.NewValidationError("name", "is required")
	}
	if !s.Department.Valid() {
		return domain.NewValidationError("department", "must be one of frontdesk, housekeeping, maintenance, restaurant")
	}
	if s.HourlyRate <= 0 {
		return domain.NewValidationError("hourly_rate", "must be greater than 0")
	}
	if s.Email != nil && *s.Email != "" && !strings.Contains(*s.Email, "@") {
		return domain.NewValidationError("email", "is not an email address")
	}
	return nil
}

func (ss *StaffService) Create(ctx context.Context, s *domain.StaffMember) error {
	if err := validateStaff(s); err != nil {
		return err
	}
	s.Avatar = domain.Initials(s.Name)

	if err := ss.repo.Create(ctx, s); err != nil {
		return err
	}
	ss.reindex(ctx, *s)
	logger.InfoLog(ctx, "staff member %s created in %s", s.ID, s.Department)
	return nil
}

func (ss *StaffService) Update(ctx context.Context, s *domain.StaffMember) (*domain.StaffMember, error) {
	if err := validateStaff(s); err != nil {
		return nil, err
	}
	s.Avatar = domain.Initials(s.Name)

	if err := ss.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	updated, err := ss.repo.GetByID(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	ss.reindex(ctx, *updated)
	return updated, nil
}

func (ss *StaffService) Get(ctx context.Context, id string) (*domain.StaffMember, error) {
	return ss.repo.GetByID(ctx, id)
}

func (ss *StaffService) List(ctx context.Context, filter domain.StaffFilter) ([]domain.StaffMember, error) {
	if filter.Department != "" && !filter.Department.Valid() {
		return nil, domain.NewValidationError("department", "unknown department "+string(filter.Department))
	}
	return ss.repo.ListStaff(ctx, filter)
}

// Search looks names up in the search index and falls back to the database
// when the index is missing or fails. Index hits carry only part of a member,
// so they are reloaded from the database in ranking order.
func (ss *StaffService) Search(ctx context.Context, q string) ([]domain.StaffMember, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, domain.NewValidationError("q", "is required")
	}
	if ss.index != nil {
		hits, err := ss.index.SearchStaffByName(ctx, q)
		if err == nil {
			return ss.hydrate(ctx, hits)
		}
		logger.WarnLog(ctx, "staff search index unavailable, using database: %v", err)
	}
	return ss.repo.SearchByName(ctx, q, defaultSearchLimit)
}

// hydrate replaces index hits with their database rows. Hits whose row is
// gone (a stale index entry) are dropped.
func (ss *StaffService) hydrate(ctx context.Context, hits []domain.StaffMember) ([]domain.StaffMember, error) {
	out := []domain.StaffMember{}
	if len(hits) == 0 {
		return out, nil
	}
	ids := make([]string, len(hits))
	for i, h := range hits {
		ids[i] = h.ID
	}
	rows, err := ss.repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.StaffMember, len(rows))
	for _, r := range rows {
		byID[r.ID] = r
	}
	for _, id := range ids {
		if m, ok := byID[id]; ok {
			out = append(out, m)
			delete(byID, id)
		}
	}
	if dropped := len(ids) - len(out); dropped > 0 {
		logger.WarnLog(ctx, "search index returned %d unknown staff ids", dropped)
	}
	return out, nil
}

// reindex keeps the search index in step. Failures are logged only; the
// database row is the record.
func (ss *StaffService) reindex(ctx context.Context, s domain.StaffMember) {
	if ss.index == nil {
		return
	}
	if err := ss.index.IndexStaff(ctx, s); err != nil {
		logger.WarnLog(ctx, "failed to index staff member %s: %v", s.ID, err)
	}
}
