package http

import (
	"context"
	"errors"
	"strings"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const principalKey = "principal"

type identityClaims struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	jwt.RegisteredClaims
}

// JWTAuthenticator verifies HS256 identity tokens. The subject claim is the
// tenant id; the token must carry a verified email.
type JWTAuthenticator struct {
	secret []byte
	parser *jwt.Parser
}

func NewJWTAuthenticator(secret, issuer string) (*JWTAuthenticator, error) {
	if secret == "" {
		return nil, errs.NewValueIsRequiredError("AUTH_JWT_SECRET")
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}

	return &JWTAuthenticator{
		secret: []byte(secret),
		parser: jwt.NewParser(opts...),
	}, nil
}

func (a *JWTAuthenticator) Authenticate(_ context.Context, token string) (kernel.Principal, error) {
	if token == "" {
		return kernel.Principal{}, errs.NewAuthorizationError("missing bearer token")
	}

	claims := &identityClaims{}
	if _, err := a.parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}); err != nil {
		return kernel.Principal{}, errs.NewAuthorizationErrorWithCause("invalid token", err)
	}

	if !claims.EmailVerified {
		return kernel.Principal{}, errs.NewAuthorizationError("email is not verified")
	}

	tenant, err := kernel.NewTenantID(claims.Subject)
	if err != nil {
		return kernel.Principal{}, errs.NewAuthorizationErrorWithCause("token has no subject", err)
	}

	principal, err := kernel.NewPrincipal(tenant, claims.Email)
	if err != nil {
		return kernel.Principal{}, errs.NewAuthorizationErrorWithCause("token has no usable email", err)
	}

	return principal, nil
}

// PrincipalFrom returns the principal stored by the authentication middleware.
func PrincipalFrom(ctx echo.Context) (kernel.Principal, error) {
	principal, ok := ctx.Get(principalKey).(kernel.Principal)
	if !ok {
		return kernel.Principal{}, errs.NewAuthorizationError("request is not authenticated")
	}
	return principal, nil
}

func bearerToken(header string) (string, error) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", errors.New("authorization header is not a bearer token")
	}
	return strings.TrimSpace(token), nil
}
