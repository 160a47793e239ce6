package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/locvowork/hotel_scheduler/apigateway/internal/domain"
	"github.com/locvowork/hotel_scheduler/apigateway/internal/repository/builder"
)

var staffColumns = []string{
	"id", "name", "department", "hourly_rate", "avatar",
	"email", "phone", "address", "city", "postal_code",
	"emergency_contact_name", "emergency_contact_phone",
	"date_of_birth", "hire_date", "created_at", "updated_at",
}

type staffRepository struct {
	db *sql.DB
}

// NewStaffRepository creates a new instance of StaffRepository
func NewStaffRepository(db *sql.DB) domain.StaffRepository {
	return &staffRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanStaff(row rowScanner) (domain.StaffMember, error) {
	var s domain.StaffMember
	err := row.Scan(&s.ID, &s.Name, &s.Department, &s.HourlyRate, &s.Avatar,
		&s.Email, &s.Phone, &s.Address, &s.City, &s.PostalCode,
		&s.EmergencyContactName, &s.EmergencyContactPhone,
		&s.DateOfBirth, &s.HireDate, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func (r *staffRepository) Create(ctx context.Context, s *domain.StaffMember) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	b := builder.NewSQLBuilder()
	query, args := b.Insert("staff_members",
		"id", "name", "department", "hourly_rate", "avatar",
		"email", "phone", "address", "city", "postal_code",
		"emergency_contact_name", "emergency_contact_phone", "date_of_birth", "hire_date").
		Values(s.ID, s.Name, s.Department, s.HourlyRate, s.Avatar,
			s.Email, s.Phone, s.Address, s.City, s.PostalCode,
			s.EmergencyContactName, s.EmergencyContactPhone, s.DateOfBirth, s.HireDate).
		Returning("created_at", "updated_at").
		Build()

	err := r.db.QueryRowContext(ctx, query, args...).Scan(&s.CreatedAt, &s.UpdatedAt)
	return mapError("create staff member", err)
}

func (r *staffRepository) GetByID(ctx context.Context, id string) (*domain.StaffMember, error) {
	b := builder.NewSQLBuilder()
	query, args := b.Select(staffColumns...).
		From("staff_members").
		Where("id = ?", id).
		Build()

	s, err := scanStaff(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, mapError("get staff member", err)
	}
	return &s, nil
}

func (r *staffRepository) Update(ctx context.Context, s *domain.StaffMember) error {
	s.UpdatedAt = time.Now().UTC()
	b := builder.NewSQLBuilder()
	query, args := b.Update("staff_members").
		Set("name", s.Name).
		Set("department", s.Department).
		Set("hourly_rate", s.HourlyRate).
		Set("avatar", s.Avatar).
		Set("email", s.Email).
		Set("phone", s.Phone).
		Set("address", s.Address).
		Set("city", s.City).
		Set("postal_code", s.PostalCode).
		Set("emergency_contact_name", s.EmergencyContactName).
		Set("emergency_contact_phone", s.EmergencyContactPhone).
		Set("date_of_birth", s.DateOfBirth).
		Set("hire_date", s.HireDate).
		Set("updated_at", s.UpdatedAt).
		Where("id = ?", s.ID).
		Build()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return mapError("update staff member", err)
	}
	return expectAffected("update staff member", res)
}

func (r *staffRepository) ListStaff(ctx context.Context, filter domain.StaffFilter) ([]domain.StaffMember, error) {
	b := builder.NewSQLBuilder()
	b.Select(staffColumns...).From("staff_members")
	if filter.Department != "" {
		b.Where("department = ?", filter.Department)
	}
	b.OrderBy("name ASC").OrderBy("id ASC")
	if filter.Limit > 0 {
		b.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		b.Offset(filter.Offset)
	}

	query, args := b.Build()
	return r.query(ctx, "list staff", query, args...)
}

// SearchByName matches the text against name or email. Wildcards in the
// text are matched literally.
func (r *staffRepository) SearchByName(ctx context.Context, name string, limit int) ([]domain.StaffMember, error) {
	query, args, err := searchStaffQuery(name, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to build staff search: %w", err)
	}
	return r.query(ctx, "search staff", query, args...)
}

// GetByIDs returns the members with the given ids. Unknown ids are skipped.
func (r *staffRepository) GetByIDs(ctx context.Context, ids []string) ([]domain.StaffMember, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := staffByIDsQuery(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build staff lookup: %w", err)
	}
	return r.query(ctx, "get staff by ids", query, args...)
}

func searchStaffQuery(text string, limit int) (string, []interface{}, error) {
	pattern := "%" + escapeLike(text) + "%"
	b := builder.NewSQLBuilder()
	b.Select(staffColumns...).
		From("staff_members").
		WhereGroup(func(g *builder.SQLBuilder) *builder.SQLBuilder {
			return g.Where(`name ILIKE ? ESCAPE '\'`, pattern).
				Or(`email ILIKE ? ESCAPE '\'`, pattern)
		}).
		OrderBy("name ASC")
	if limit > 0 {
		b.Limit(limit)
	}
	return b.BuildSafe()
}

func staffByIDsQuery(ids []string) (string, []interface{}, error) {
	return builder.NewSQLBuilder().
		Select(staffColumns...).
		From("staff_members").
		WhereRaw("id = ANY(?)", pq.Array(ids)).
		BuildSafe()
}

func (r *staffRepository) query(ctx context.Context, op, query string, args ...interface{}) ([]domain.StaffMember, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(op, err)
	}
	defer rows.Close()

	var staff []domain.StaffMember
	for rows.Next() {
		s, err := scanStaff(rows)
		if err != nil {
			return nil, mapError(op, err)
		}
		staff = append(staff, s)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(op, err)
	}
	return staff, nil
}
