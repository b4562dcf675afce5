package http

import (
	"errors"
	"net/http"

	"workshop/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidState),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as a JSON error body. Server-side failures are logged with
// their cause and answered with a generic message.
func (s *Server) fail(c echo.Context, err error) error {
	code := statusOf(err)
	body := errorResponse{Code: code, Message: err.Error()}

	var stateErr *errs.InvalidStateError
	if errors.As(err, &stateErr) {
		body.Expected = stateErr.Expected
		body.Actual = stateErr.Actual
	}

	req := c.Request()
	switch code {
	case http.StatusInternalServerError:
		body.Message = "Internal server error"
		s.logger.ErrorContext(req.Context(), "request failed",
			"method", req.Method, "route", c.Path(), "status", code, "error", err)
	case http.StatusServiceUnavailable:
		body.Message = "Service temporarily unavailable, retry later"
		s.logger.ErrorContext(req.Context(), "request failed",
			"method", req.Method, "route", c.Path(), "status", code, "error", err)
	default:
		s.logger.WarnContext(req.Context(), "request rejected",
			"method", req.Method, "route", c.Path(), "status", code, "error", err)
	}
	return c.JSON(code, body)
}

func (s *Server) badRequest(c echo.Context, message string) error {
	s.logger.WarnContext(c.Request().Context(), "request rejected",
		"method", c.Request().Method, "route", c.Path(), "status", http.StatusBadRequest, "error", message)
	return c.JSON(http.StatusBadRequest, errorResponse{Code: http.StatusBadRequest, Message: message})
}
