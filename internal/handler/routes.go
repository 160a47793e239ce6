package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/locvowork/hotel_scheduler/apigateway/internal/middleware"
)

// RegisterRoutes mounts the scheduling API on g.
func RegisterRoutes(g *echo.Group, sh *ScheduleHandler, st *StaffHandler, bh *BudgetHandler) {
	g.GET("/templates", sh.ListTemplatesHandler)
	g.GET("/templates/:id/preview", sh.PreviewTemplateHandler)

	sched := g.Group("/schedule")
	sched.GET("", sh.GetWeekHandler)
	sched.POST("/move", sh.MoveHandler)
	sched.POST("/apply-template", sh.ApplyTemplateHandler)
	sched.DELETE("/slot", sh.UnassignHandler)
	sched.GET("/export", sh.ExportHandler)

	staff := g.Group("/staff")
	staff.POST("", st.CreateStaffHandler)
	staff.GET("", st.ListStaffHandler)
	staff.GET("/search", st.SearchStaffHandler)
	staff.GET("/:id", st.GetStaffHandler)
	staff.PUT("/:id", st.UpdateStaffHandler)
	staff.GET("/:id/availability", st.GetAvailabilityHandler)
	staff.PUT("/:id/availability/:day", st.SetAvailabilityHandler)
	staff.GET("/:id/time-off", st.ListTimeOffHandler)
	staff.POST("/:id/time-off", st.CreateTimeOffHandler)

	g.PUT("/time-off/:id/status", st.UpdateTimeOffStatusHandler, middleware.RequireManager())
	g.DELETE("/time-off/:id", st.DeleteTimeOffHandler, middleware.RequireManager())

	g.GET("/budget", bh.GetBudgetHandler)
	g.PUT("/budget", bh.SetBudgetHandler, middleware.RequireManager())
	g.GET("/reports", bh.GetReportHandler)
}
