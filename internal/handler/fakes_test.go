package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/locvowork/hotel_scheduler/apigateway/internal/domain"
	"github.com/locvowork/hotel_scheduler/apigateway/internal/middleware"
	"github.com/locvowork/hotel_scheduler/apigateway/internal/service"
)

var week47 = domain.Week{Number: 47, Year: 2025}

type memStaff struct {
	members map[string]domain.StaffMember
}

func (m *memStaff) ListStaff(_ context.Context, f domain.StaffFilter) ([]domain.StaffMember, error) {
	var out []domain.StaffMember
	for _, s := range m.members {
		if f.Department == "" || s.Department == f.Department {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memStaff) Create(_ context.Context, s *domain.StaffMember) error {
	s.ID = "staff-new"
	m.members[s.ID] = *s
	return nil
}

func (m *memStaff) GetByID(_ context.Context, id string) (*domain.StaffMember, error) {
	s, ok := m.members[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &s, nil
}

func (m *memStaff) Update(_ context.Context, s *domain.StaffMember) error {
	if _, ok := m.members[s.ID]; !ok {
		return domain.ErrNotFound
	}
	m.members[s.ID] = *s
	return nil
}

func (m *memStaff) SearchByName(_ context.Context, name string, _ int) ([]domain.StaffMember, error) {
	var out []domain.StaffMember
	for _, s := range m.members {
		if strings.Contains(strings.ToLower(s.Name), strings.ToLower(name)) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memStaff) GetByIDs(_ context.Context, ids []string) ([]domain.StaffMember, error) {
	var out []domain.StaffMember
	for _, id := range ids {
		if s, ok := m.members[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

// memSlots keys slots by staff and day, which is enough for a single week.
type memSlots struct {
	slots  map[string]domain.ScheduleSlot
	nextID int64
}

func (m *memSlots) key(staffID string, day domain.Weekday) string { return staffID + "/" + string(day) }

func (m *memSlots) ListWeek(_ context.Context, w domain.Week) ([]domain.ScheduleSlot, error) {
	var out []domain.ScheduleSlot
	for _, s := range m.slots {
		if s.WeekNumber == w.Number && s.Year == w.Year {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memSlots) Upsert(_ context.Context, s *domain.ScheduleSlot) error {
	m.nextID++
	s.ID = m.nextID
	m.slots[m.key(s.StaffID, s.Day)] = *s
	return nil
}

func (m *memSlots) DeleteAt(_ context.Context, staffID string, day domain.Weekday, shift domain.ShiftType, _ domain.Week) error {
	if s, ok := m.slots[m.key(staffID, day)]; ok && s.Shift == shift {
		delete(m.slots, m.key(staffID, day))
	}
	return nil
}

func (m *memSlots) Move(ctx context.Context, day domain.Weekday, shift domain.ShiftType, to *domain.ScheduleSlot) error {
	_ = m.DeleteAt(ctx, to.StaffID, day, shift, week47)
	return m.Upsert(ctx, to)
}

func (m *memSlots) ReplaceStaffWeek(ctx context.Context, staffID string, _ domain.Week, slots []domain.ScheduleSlot) error {
	for k, s := range m.slots {
		if s.StaffID == staffID {
			delete(m.slots, k)
		}
	}
	for i := range slots {
		_ = m.Upsert(ctx, &slots[i])
	}
	return nil
}

type memAvailability struct{ rows []domain.Availability }

func (m *memAvailability) ListByStaff(context.Context, string) ([]domain.Availability, error) {
	return m.rows, nil
}

func (m *memAvailability) Upsert(_ context.Context, a *domain.Availability) error {
	m.rows = append(m.rows, *a)
	return nil
}

type memTimeOff struct{ rows map[string]domain.TimeOffRequest }

func (m *memTimeOff) Create(_ context.Context, r *domain.TimeOffRequest) error {
	r.ID = "to-1"
	m.rows[r.ID] = *r
	return nil
}

func (m *memTimeOff) ListByStaff(_ context.Context, staffID string) ([]domain.TimeOffRequest, error) {
	var out []domain.TimeOffRequest
	for _, r := range m.rows {
		if r.StaffID == staffID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memTimeOff) UpdateStatus(_ context.Context, id string, status domain.TimeOffStatus) error {
	r, ok := m.rows[id]
	if !ok {
		return domain.ErrNotFound
	}
	r.Status = status
	m.rows[id] = r
	return nil
}

func (m *memTimeOff) Delete(_ context.Context, id string) error {
	if _, ok := m.rows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

type memBudget struct{ rows []domain.Budget }

func (m *memBudget) ListForMonth(_ context.Context, month, year int) ([]domain.Budget, error) {
	var out []domain.Budget
	for _, b := range m.rows {
		if b.Month == month && b.Year == year {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memBudget) Upsert(_ context.Context, b *domain.Budget) error {
	m.rows = append(m.rows, *b)
	return nil
}

type testEnv struct {
	echo    *echo.Echo
	staff   *memStaff
	slots   *memSlots
	timeOff *memTimeOff
	budgets *memBudget
}

// newTestEnv mounts every route the way the application does, with role
// injected from the X-Test-Role header in place of a JWT.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		staff: &memStaff{members: map[string]domain.StaffMember{
			"s1": {ID: "s1", Name: "Sarah Johnson", Department: domain.DepartmentFrontDesk, HourlyRate: 15},
			"s2": {ID: "s2", Name: "Emma Wilson", Department: domain.DepartmentHousekeeping, HourlyRate: 12},
		}},
		slots:   &memSlots{slots: make(map[string]domain.ScheduleSlot)},
		timeOff: &memTimeOff{rows: make(map[string]domain.TimeOffRequest)},
		budgets: &memBudget{},
	}

	scheduleSvc := service.NewScheduleService(env.staff, env.slots)
	exportSvc, err := service.NewExportService(scheduleSvc, "")
	require.NoError(t, err)

	sh := NewScheduleHandler(scheduleSvc, exportSvc)
	st := NewStaffHandler(
		service.NewStaffService(env.staff, nil),
		service.NewAvailabilityService(&memAvailability{}),
		service.NewTimeOffService(env.timeOff),
	)
	bh := NewBudgetHandler(
		service.NewBudgetService(env.budgets, scheduleSvc),
		service.NewReportService(scheduleSvc),
	)

	e := echo.New()
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if role := c.Request().Header.Get("X-Test-Role"); role != "" {
				c.Set(middleware.ContextKeyClaims, &middleware.Claims{Role: domain.Role(role)})
			}
			return next(c)
		}
	})
	RegisterRoutes(e.Group(""), sh, st, bh)
	env.echo = e
	return env
}

func (env *testEnv) do(method, path, body string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	env.echo.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}
