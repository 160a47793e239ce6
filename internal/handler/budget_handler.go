package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/locvowork/hotel_scheduler/apigateway/internal/domain"
	"github.com/locvowork/hotel_scheduler/apigateway/internal/middleware"
	"github.com/locvowork/hotel_scheduler/apigateway/internal/service"
	"github.com/locvowork/hotel_scheduler/apigateway/internal/service/serviceutils"
)

// BudgetHandler serves the budget and report pages.
type BudgetHandler struct {
	budget *service.BudgetService
	report *service.ReportService
}

func NewBudgetHandler(budget *service.BudgetService, report *service.ReportService) *BudgetHandler {
	return &BudgetHandler{budget: budget, report: report}
}

func (h *BudgetHandler) GetBudgetHandler(c echo.Context) error {
	week, err := weekFromQuery(c)
	if err != nil {
		return serviceutils.ResponseFromError(c, "Invalid week", err)
	}
	report, err := h.budget.Report(c.Request().Context(), week)
	if err != nil {
		return serviceutils.ResponseFromError(c, "Failed to build budget report", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Budget retrieved successfully", report)
}

func (h *BudgetHandler) SetBudgetHandler(c echo.Context) error {
	var req BudgetRequest
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid request body", err)
	}
	b := &domain.Budget{
		Department:   domain.Department(req.Department),
		WeeklyBudget: req.WeeklyBudget,
		Month:        req.Month,
		Year:         req.Year,
	}
	if err := h.budget.Set(c.Request().Context(), middleware.RoleFrom(c), b); err != nil {
		return serviceutils.ResponseFromError(c, "Failed to set budget", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Budget updated successfully", b)
}

func (h *BudgetHandler) GetReportHandler(c echo.Context) error {
	week, err := weekFromQuery(c)
	if err != nil {
		return serviceutils.ResponseFromError(c, "Invalid week", err)
	}
	report, err := h.report.Weekly(c.Request().Context(), week)
	if err != nil {
		return serviceutils.ResponseFromError(c, "Failed to build report", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Report generated successfully", report)
}
