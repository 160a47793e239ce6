package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/locvowork/hotel_scheduler/apigateway/internal/domain"
	"github.com/locvowork/hotel_scheduler/apigateway/internal/schedule"
	"github.com/locvowork/hotel_scheduler/apigateway/internal/service"
	"github.com/locvowork/hotel_scheduler/apigateway/internal/service/serviceutils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ScheduleHandler struct {
	svc    *service.ScheduleService
	export *service.ExportService
}

func NewScheduleHandler(svc *service.ScheduleService, export *service.ExportService) *ScheduleHandler {
	return &ScheduleHandler{svc: svc, export: export}
}

func (h *ScheduleHandler) ListTemplatesHandler(c echo.Context) error {
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Templates listed successfully", h.svc.Templates())
}

func (h *ScheduleHandler) PreviewTemplateHandler(c echo.Context) error {
	shift := domain.ShiftMorning
	if v := c.QueryParam("shift"); v != "" {
		var err error
		if shift, err = domain.ParseShiftType(v); err != nil {
			return serviceutils.ResponseFromError(c, "Invalid shift", err)
		}
	}
	pattern, err := h.svc.PreviewTemplate(schedule.TemplateID(c.Param("id")), shift)
	if err != nil {
		return serviceutils.ResponseFromError(c, "Failed to preview template", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Template preview generated successfully", pattern)
}

func (h *ScheduleHandler) GetWeekHandler(c echo.Context) error {
	week, err := weekFromQuery(c)
	if err != nil {
		return serviceutils.ResponseFromError(c, "Invalid week", err)
	}
	view, err := h.svc.GetWeek(c.Request().Context(), week)
	if err != nil {
		return serviceutils.ResponseFromError(c, "Failed to load schedule", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Schedule loaded successfully", view)
}

func (h *ScheduleHandler) MoveHandler(c echo.Context) error {
	var req MoveRequest
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid request body", err)
	}
	move, err := req.toMove()
	if err != nil {
		return serviceutils.ResponseFromError(c, "Invalid move", err)
	}
	view, err := h.svc.Move(c.Request().Context(), req.week(), move)
	if err != nil {
		return serviceutils.ResponseFromError(c, "Failed to move shift", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Shift assigned successfully", view)
}

func (h *ScheduleHandler) ApplyTemplateHandler(c echo.Context) error {
	var req ApplyTemplateRequest
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid request body", err)
	}
	shift, err := domain.ParseShiftType(req.Shift)
	if err != nil {
		return serviceutils.ResponseFromError(c, "Invalid shift", err)
	}
	view, err := h.svc.ApplyTemplate(c.Request().Context(), req.week(), req.StaffID, schedule.TemplateID(req.TemplateID), shift)
	if err != nil {
		return serviceutils.ResponseFromError(c, "Failed to apply template", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Template applied successfully", view)
}

func (h *ScheduleHandler) UnassignHandler(c echo.Context) error {
	var req SlotRequest
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid request body", err)
	}
	day, err := domain.ParseWeekday(req.Day)
	if err != nil {
		return serviceutils.ResponseFromError(c, "Invalid day", err)
	}
	shift, err := domain.ParseShiftType(req.Shift)
	if err != nil {
		return serviceutils.ResponseFromError(c, "Invalid shift", err)
	}
	view, err := h.svc.Unassign(c.Request().Context(), req.week(), req.StaffID, day, shift)
	if err != nil {
		return serviceutils.ResponseFromError(c, "Failed to remove shift", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Shift removed successfully", view)
}

func (h *ScheduleHandler) ExportHandler(c echo.Context) error {
	week, err := weekFromQuery(c)
	if err != nil {
		return serviceutils.ResponseFromError(c, "Invalid week", err)
	}
	data, err := h.export.WeekWorkbook(c.Request().Context(), week)
	if err != nil {
		return serviceutils.ResponseFromError(c, "Failed to export schedule", err)
	}

	filename := fmt.Sprintf("schedule_%d_week_%02d.xlsx", week.Year, week.Number)
	c.Response().Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Response().Header().Set("Content-Length", strconv.Itoa(len(data)))
	return c.Blob(http.StatusOK, xlsxContentType, data)
}
