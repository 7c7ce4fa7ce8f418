package http

import (
	"errors"
	"log/slog"
	"net/http"

	"orders/internal/core/ports"
	"orders/internal/generated/servers"
	"orders/internal/pkg/errs"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	legacyrouter "github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Authenticate resolves the bearer token of every request that is not skipped
// and stores the principal for the handlers.
func Authenticate(authenticator ports.Authenticator, skipper middleware.Skipper) echo.MiddlewareFunc {
	if skipper == nil {
		skipper = middleware.DefaultSkipper
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if skipper(ctx) {
				return next(ctx)
			}

			token, err := bearerToken(ctx.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return unauthorized(ctx)
			}

			principal, err := authenticator.Authenticate(ctx.Request().Context(), token)
			if err != nil {
				if !errors.Is(err, errs.ErrAuthorization) {
					return err
				}
				return unauthorized(ctx)
			}

			ctx.Set(principalKey, principal)
			return next(ctx)
		}
	}
}

func unauthorized(ctx echo.Context) error {
	ctx.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	return ctx.JSON(http.StatusUnauthorized, servers.Error{
		Code:    http.StatusUnauthorized,
		Message: "Unauthorized",
	})
}

// ValidateRequests rejects requests that do not match the API document.
// Routes the document does not describe pass through.
func ValidateRequests(swagger *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := legacyrouter.NewRouter(swagger)
	if err != nil {
		return nil, err
	}

	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			req := ctx.Request()
			route, pathParams, err := router.FindRoute(req)
			if err != nil {
				return next(ctx)
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if err = openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return ctx.JSON(http.StatusBadRequest, servers.Error{
					Code:    http.StatusBadRequest,
					Message: validationMessage(err),
				})
			}

			return next(ctx)
		}
	}, nil
}

func validationMessage(err error) string {
	var reqErr *openapi3filter.RequestError
	if errors.As(err, &reqErr) {
		if reqErr.Parameter != nil {
			return "invalid parameter " + reqErr.Parameter.Name + ": " + reqErr.Reason
		}
		if reqErr.RequestBody != nil && reqErr.Err != nil {
			return "invalid request body: " + reqErr.Err.Error()
		}
	}
	return "invalid request"
}

// RequestLogger logs one line per request through logger.
func RequestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(ctx echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
			}
			level := slog.LevelInfo
			if v.Error != nil {
				level = slog.LevelError
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			logger.LogAttrs(ctx.Request().Context(), level, "request", attrs...)
			return nil
		},
	})
}
