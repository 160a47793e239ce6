package middleware

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/locvowork/hotel_scheduler/apigateway/internal/logger"
)

// RequestLogger tags every request with an id, attaches a request-scoped
// logger to its context and logs the outcome.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			id := req.Header.Get(echo.HeaderXRequestID)
			if id == "" {
				id = uuid.NewString()
			}
			c.Response().Header().Set(echo.HeaderXRequestID, id)

			ctx := logger.WithLogger(req.Context(), map[string]interface{}{
				"request_id": id,
				"method":     req.Method,
				"path":       c.Path(),
			})
			c.SetRequest(req.WithContext(ctx))

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			logger.InfoLog(ctx, "%d %s in %v", c.Response().Status, req.URL.RequestURI(), time.Since(start))
			return nil
		}
	}
}
