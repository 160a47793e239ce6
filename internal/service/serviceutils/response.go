package serviceutils

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/locvowork/hotel_scheduler/apigateway/internal/domain"
	"github.com/locvowork/hotel_scheduler/apigateway/internal/logger"
	"github.com/locvowork/hotel_scheduler/apigateway/internal/schedule"
)

// APIResponse is the envelope every endpoint answers with.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

func ResponseSuccess(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, APIResponse{
		Success: true,
		Data:    data,
		Message: message,
	})
}

func ResponseError(c echo.Context, status int, message string, err error) error {
	resp := APIResponse{Success: false, Message: message}
	if err != nil {
		resp.Error = err.Error()
	}

	ctx := c.Request().Context()
	switch {
	case status < http.StatusInternalServerError:
		logger.WarnLog(ctx, "%s: %v", message, err)
	case err != nil:
		logger.ErrorLog(ctx, "%s: %v", message, err)
	default:
		logger.ErrorLog(ctx, "%s", message)
	}
	return c.JSON(status, resp)
}

// ResponseFromError answers with the status StatusFromError picks for err.
func ResponseFromError(c echo.Context, message string, err error) error {
	return ResponseError(c, StatusFromError(err), message, err)
}

// StatusFromError maps domain and store errors onto HTTP status codes. A failed
// backing write is a 502 whatever the driver error it wraps.
func StatusFromError(err error) int {
	var writeErr *schedule.WriteError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &writeErr):
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
