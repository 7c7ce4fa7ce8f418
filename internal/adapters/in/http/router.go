// Package http exposes the order API over HTTP with echo.
package http

import (
	"log/slog"
	"net/http"
	"strings"

	"orders/internal/core/ports"
	"orders/internal/generated/docs"
	"orders/internal/generated/servers"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// NewRouter assembles the echo instance serving the order API, its document
// and the Swagger UI.
func NewRouter(server servers.ServerInterface, authenticator ports.Authenticator, logger *slog.Logger) (*echo.Echo, error) {
	if logger == nil {
		logger = slog.Default()
	}

	swagger, err := servers.GetSwagger()
	if err != nil {
		return nil, err
	}
	validate, err := ValidateRequests(swagger)
	if err != nil {
		return nil, err
	}
	if err = docs.Register(); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler(logger)

	e.Use(middleware.RequestID())
	e.Use(RequestLogger(logger))
	e.Use(middleware.Recover())
	e.Use(Authenticate(authenticator, isPublic))
	e.Use(validate)

	servers.RegisterHandlers(e, server)

	e.GET("/openapi.json", func(ctx echo.Context) error {
		return ctx.JSON(http.StatusOK, swagger)
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, nil
}

// Instrument wraps the router with OpenTelemetry server spans.
func Instrument(e *echo.Echo) http.Handler {
	return otelhttp.NewHandler(e, "orders-api")
}

func isPublic(ctx echo.Context) bool {
	return !strings.HasPrefix(ctx.Path(), "/orders")
}
