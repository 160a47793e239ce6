package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/locvowork/hotel_scheduler/apigateway/internal/domain"
	"github.com/locvowork/hotel_scheduler/apigateway/internal/middleware"
	"github.com/locvowork/hotel_scheduler/apigateway/internal/service"
	"github.com/locvowork/hotel_scheduler/apigateway/internal/service/serviceutils"
)

type StaffHandler struct {
	staff        *service.StaffService
	availability *service.AvailabilityService
	timeOff      *service.TimeOffService
}

func NewStaffHandler(staff *service.StaffService, availability *service.AvailabilityService, timeOff *service.TimeOffService) *StaffHandler {
	return &StaffHandler{staff: staff, availability: availability, timeOff: timeOff}
}

func (h *StaffHandler) CreateStaffHandler(c echo.Context) error {
	var req StaffRequest
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid request body", err)
	}
	s, err := req.toStaff()
	if err != nil {
		return serviceutils.ResponseFromError(c, "Invalid staff member", err)
	}
	if err := h.staff.Create(c.Request().Context(), s); err != nil {
		return serviceutils.ResponseFromError(c, "Failed to create staff member", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusCreated, "Staff member created successfully", s)
}

func (h *StaffHandler) UpdateStaffHandler(c echo.Context) error {
	var req StaffRequest
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid request body", err)
	}
	s, err := req.toStaff()
	if err != nil {
		return serviceutils.ResponseFromError(c, "Invalid staff member", err)
	}
	s.ID = c.Param("id")
	updated, err := h.staff.Update(c.Request().Context(), s)
	if err != nil {
		return serviceutils.ResponseFromError(c, "Failed to update staff member", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Staff member updated successfully", updated)
}

func (h *StaffHandler) GetStaffHandler(c echo.Context) error {
	s, err := h.staff.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return serviceutils.ResponseFromError(c, "Staff member not found", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Staff member retrieved successfully", s)
}

func (h *StaffHandler) ListStaffHandler(c echo.Context) error {
	filter := domain.StaffFilter{Department: domain.Department(c.QueryParam("department"))}
	var err error
	if filter.Limit, err = intQuery(c, "limit"); err != nil {
		return serviceutils.ResponseFromError(c, "Invalid limit", err)
	}
	if filter.Offset, err = intQuery(c, "offset"); err != nil {
		return serviceutils.ResponseFromError(c, "Invalid offset", err)
	}
	staff, err := h.staff.List(c.Request().Context(), filter)
	if err != nil {
		return serviceutils.ResponseFromError(c, "Failed to list staff", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Staff listed successfully", staff)
}

func (h *StaffHandler) SearchStaffHandler(c echo.Context) error {
	staff, err := h.staff.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return serviceutils.ResponseFromError(c, "Failed to search staff", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Search completed successfully", staff)
}

func (h *StaffHandler) GetAvailabilityHandler(c echo.Context) error {
	days, err := h.availability.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return serviceutils.ResponseFromError(c, "Failed to load availability", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Availability retrieved successfully", days)
}

func (h *StaffHandler) SetAvailabilityHandler(c echo.Context) error {
	var req AvailabilityRequest
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid request body", err)
	}
	a, err := h.availability.Set(c.Request().Context(), c.Param("id"), c.Param("day"), domain.Availability{
		IsAvailable:    req.IsAvailable,
		PreferredShift: req.PreferredShift,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		Notes:          req.Notes,
	})
	if err != nil {
		return serviceutils.ResponseFromError(c, "Failed to update availability", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Availability updated successfully", a)
}

func (h *StaffHandler) ListTimeOffHandler(c echo.Context) error {
	reqs, err := h.timeOff.List(c.Request().Context(), c.Param("id"))
	if err != nil {
		return serviceutils.ResponseFromError(c, "Failed to list time off", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Time off listed successfully", reqs)
}

func (h *StaffHandler) CreateTimeOffHandler(c echo.Context) error {
	var req TimeOffRequest
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid request body", err)
	}
	r, err := req.toTimeOff(c.Param("id"))
	if err != nil {
		return serviceutils.ResponseFromError(c, "Invalid time off request", err)
	}
	if err := h.timeOff.Create(c.Request().Context(), r); err != nil {
		return serviceutils.ResponseFromError(c, "Failed to create time off request", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusCreated, "Time off requested successfully", r)
}

func (h *StaffHandler) UpdateTimeOffStatusHandler(c echo.Context) error {
	var req StatusRequest
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid request body", err)
	}
	id := c.Param("id")
	if err := h.timeOff.UpdateStatus(c.Request().Context(), middleware.RoleFrom(c), id, domain.TimeOffStatus(req.Status)); err != nil {
		return serviceutils.ResponseFromError(c, "Failed to update time off status", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Time off status updated successfully", map[string]string{
		"id":     id,
		"status": req.Status,
	})
}

func (h *StaffHandler) DeleteTimeOffHandler(c echo.Context) error {
	if err := h.timeOff.Delete(c.Request().Context(), middleware.RoleFrom(c), c.Param("id")); err != nil {
		return serviceutils.ResponseFromError(c, "Failed to delete time off request", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Time off request deleted successfully", nil)
}

func intQuery(c echo.Context, name string) (int, error) {
	v := c.QueryParam(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, domain.NewValidationError(name, "must be a non-negative number")
	}
	return n, nil
}
