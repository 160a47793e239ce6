package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locvowork/hotel_scheduler/apigateway/internal/domain"
)

func TestCreateStaff(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/staff",
		`{"name":"Lisa Anderson","department":"restaurant","hourly_rate":18.5,"hire_date":"2024-03-01"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created domain.StaffMember
	decode(t, rec, &created)
	assert.Equal(t, "staff-new", created.ID)
	assert.Equal(t, "LA", created.Avatar)
	require.NotNil(t, created.HireDate)
	assert.Equal(t, "2024-03-01", created.HireDate.Format(dateLayout))
}

func TestCreateStaff_Invalid(t *testing.T) {
	env := newTestEnv(t)

	for name, body := range map[string]string{
		"unknown department": `{"name":"X","department":"spa","hourly_rate":10}`,
		"zero rate":          `{"name":"X","department":"restaurant","hourly_rate":0}`,
		"bad date":           `{"name":"X","department":"restaurant","hourly_rate":10,"hire_date":"01/03/2024"}`,
	} {
		rec := env.do(http.MethodPost, "/staff", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, name)
	}
}

func TestGetAndUpdateStaff(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/staff/s1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(http.MethodGet, "/staff/nobody", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(http.MethodPut, "/staff/s1", `{"name":"Sarah Johnson","department":"frontdesk","hourly_rate":16}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 16.0, env.staff.members["s1"].HourlyRate)
}

func TestListAndSearchStaff(t *testing.T) {
	env := newTestEnv(t)

	var staff []domain.StaffMember
	rec := env.do(http.MethodGet, "/staff?department=housekeeping", "")
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &staff)
	require.Len(t, staff, 1)
	assert.Equal(t, "s2", staff[0].ID)

	rec = env.do(http.MethodGet, "/staff?limit=-1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodGet, "/staff/search?q=sar", "")
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &staff)
	require.Len(t, staff, 1)
	assert.Equal(t, "s1", staff[0].ID)

	rec = env.do(http.MethodGet, "/staff/search", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAvailability(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/staff/s1/availability", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var days []domain.Availability
	decode(t, rec, &days)
	assert.Len(t, days, 7)

	rec = env.do(http.MethodPut, "/staff/s1/availability/Monday",
		`{"is_available":true,"preferred_shift":"morning","start_time":"07:00","end_time":"15:00"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var a domain.Availability
	decode(t, rec, &a)
	assert.Equal(t, "monday", a.DayOfWeek)

	rec = env.do(http.MethodPut, "/staff/s1/availability/Monday", `{"is_available":true,"start_time":"7am"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTimeOffLifecycle(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/staff/s1/time-off", `{"start_date":"2025-12-01","end_date":"2025-12-05","reason":"holiday"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var req domain.TimeOffRequest
	decode(t, rec, &req)
	assert.Equal(t, domain.TimeOffPending, req.Status)

	rec = env.do(http.MethodPost, "/staff/s1/time-off", `{"start_date":"2025-12-05","end_date":"2025-12-01"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodGet, "/staff/s1/time-off", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []domain.TimeOffRequest
	decode(t, rec, &list)
	assert.Len(t, list, 1)

	rec = env.do(http.MethodPut, "/time-off/to-1/status", `{"status":"approved"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(http.MethodPut, "/time-off/to-1/status", `{"status":"approved"}`, "X-Test-Role", "manager")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, domain.TimeOffApproved, env.timeOff.rows["to-1"].Status)

	rec = env.do(http.MethodPut, "/time-off/to-1/status", `{"status":"maybe"}`, "X-Test-Role", "manager")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodDelete, "/time-off/to-1", "", "X-Test-Role", "admin")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, env.timeOff.rows)

	rec = env.do(http.MethodDelete, "/time-off/to-1", "", "X-Test-Role", "admin")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
