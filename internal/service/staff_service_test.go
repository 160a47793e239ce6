package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locvowork/hotel_scheduler/apigateway/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestStaffService_Create(t *testing.T) {
	repo := newFakeStaffRepo()
	index := &fakeIndex{}
	svc := NewStaffService(repo, index)

	s := &domain.StaffMember{Name: "  Lisa Anderson ", Department: domain.DepartmentMaintenance, HourlyRate: 18.5}
	require.NoError(t, svc.Create(context.Background(), s))

	assert.Equal(t, "Lisa Anderson", s.Name)
	assert.Equal(t, "LA", s.Avatar)
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, []string{s.ID}, index.indexed)
}

func TestStaffService_Create_Validation(t *testing.T) {
	svc := NewStaffService(newFakeStaffRepo(), nil)

	tests := []struct {
		name  string
		staff domain.StaffMember
		field string
	}{
		{"blank name", domain.StaffMember{Name: "   ", Department: domain.DepartmentRestaurant, HourlyRate: 10}, "name"},
		{"bad department", domain.StaffMember{Name: "A", Department: "spa", HourlyRate: 10}, "department"},
		{"overall is not a staff department", domain.StaffMember{Name: "A", Department: domain.DepartmentOverall, HourlyRate: 10}, "department"},
		{"zero rate", domain.StaffMember{Name: "A", Department: domain.DepartmentRestaurant}, "hourly_rate"},
		{"bad email", domain.StaffMember{Name: "A", Department: domain.DepartmentRestaurant, HourlyRate: 1, Email: strPtr("nope")}, "email"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.staff
			err := svc.Create(context.Background(), &s)
			require.ErrorIs(t, err, domain.ErrValidation)
			var vErr *domain.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestStaffService_Create_IndexFailureIsNotFatal(t *testing.T) {
	repo := newFakeStaffRepo()
	svc := NewStaffService(repo, &fakeIndex{indexErr: errBackend})

	s := &domain.StaffMember{Name: "Ryan Davis", Department: domain.DepartmentFrontDesk, HourlyRate: 16}
	require.NoError(t, svc.Create(context.Background(), s))
	assert.Contains(t, repo.members, s.ID)
}

func TestStaffService_Update(t *testing.T) {
	repo := newFakeStaffRepo(sarah)
	index := &fakeIndex{}
	svc := NewStaffService(repo, index)

	upd := sarah
	upd.Name = "Sarah Connor"
	upd.HourlyRate = 17
	got, err := svc.Update(context.Background(), &upd)
	require.NoError(t, err)
	assert.Equal(t, "SC", got.Avatar)
	assert.Equal(t, 17.0, repo.members[sarah.ID].HourlyRate)
	assert.Equal(t, []string{sarah.ID}, index.indexed)

	missing := sarah
	missing.ID = "ghost"
	_, err = svc.Update(context.Background(), &missing)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStaffService_List(t *testing.T) {
	svc := NewStaffService(newFakeStaffRepo(sarah, emma, david), nil)

	all, err := svc.List(context.Background(), domain.StaffFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, "David Thompson", all[0].Name)

	fd, err := svc.List(context.Background(), domain.StaffFilter{Department: domain.DepartmentFrontDesk})
	require.NoError(t, err)
	require.Len(t, fd, 1)
	assert.Equal(t, sarah.ID, fd[0].ID)

	_, err = svc.List(context.Background(), domain.StaffFilter{Department: "spa"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestStaffService_Search(t *testing.T) {
	ctx := context.Background()
	repo := newFakeStaffRepo(sarah, emma)

	t.Run("empty query", func(t *testing.T) {
		_, err := NewStaffService(repo, nil).Search(ctx, " ")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("index hit", func(t *testing.T) {
		svc := NewStaffService(repo, &fakeIndex{results: []domain.StaffMember{emma}})
		got, err := svc.Search(ctx, "emm")
		require.NoError(t, err)
		assert.Equal(t, []domain.StaffMember{emma}, got)
	})

	t.Run("index hits are reloaded in ranking order", func(t *testing.T) {
		full := emma
		full.Email = strPtr("emma@hotel.test")
		full.Phone = strPtr("555-0102")
		rows := newFakeStaffRepo(sarah, full)

		hits := []domain.StaffMember{
			{ID: emma.ID, Name: emma.Name},
			{ID: "gone", Name: "Deleted Person"},
			{ID: sarah.ID, Name: sarah.Name},
		}
		got, err := NewStaffService(rows, &fakeIndex{results: hits}).Search(ctx, "e")
		require.NoError(t, err)
		assert.Equal(t, []domain.StaffMember{full, sarah}, got)
	})

	t.Run("no index hits", func(t *testing.T) {
		got, err := NewStaffService(repo, &fakeIndex{}).Search(ctx, "zed")
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("reload failure", func(t *testing.T) {
		broken := newFakeStaffRepo(emma)
		broken.searchErr = errBackend
		_, err := NewStaffService(broken, &fakeIndex{results: []domain.StaffMember{emma}}).Search(ctx, "emm")
		assert.ErrorIs(t, err, errBackend)
	})

	t.Run("index failure falls back to database", func(t *testing.T) {
		svc := NewStaffService(repo, &fakeIndex{searchErr: errBackend})
		got, err := svc.Search(ctx, "sarah")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, sarah.ID, got[0].ID)
	})

	t.Run("no index", func(t *testing.T) {
		got, err := NewStaffService(repo, nil).Search(ctx, "williams")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, emma.ID, got[0].ID)
	})
}
