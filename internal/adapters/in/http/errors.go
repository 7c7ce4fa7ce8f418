package http

import (
	"errors"
	"log/slog"
	"net/http"

	"orders/internal/generated/servers"
	"orders/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// fail maps an application error to its response. Anything outside the known
// classes is logged and answered with a generic 500.
func (s *Server) fail(ctx echo.Context, err error) error {
	code, message := classify(err)
	if code == http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "request failed",
			"method", ctx.Request().Method,
			"path", ctx.Path(),
			"error", err,
		)
	}
	return ctx.JSON(code, servers.Error{Code: code, Message: message})
}

func classify(err error) (int, string) {
	switch {
	case errs.IsValidation(err):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, errs.ErrAuthorization):
		return http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, "Not found"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// ErrorHandler renders errors that escaped the handlers (routing, binding,
// request validation) in the API error shape.
func ErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		if ctx.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := "Internal server error"
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			if m, ok := he.Message.(string); ok {
				message = m
			} else {
				message = http.StatusText(code)
			}
		}
		if code >= http.StatusInternalServerError {
			logger.ErrorContext(ctx.Request().Context(), "unhandled error", "path", ctx.Path(), "error", err)
		}

		if writeErr := ctx.JSON(code, servers.Error{Code: code, Message: message}); writeErr != nil {
			logger.ErrorContext(ctx.Request().Context(), "write error response", "error", writeErr)
		}
	}
}
