package ports

import (
	"context"

	"orders/internal/core/domain/model/kernel"
)

// Authenticator resolves a bearer token into the calling tenant.
// It fails with errs.ErrAuthorization when the token cannot be verified
// or carries no verified email.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (kernel.Principal, error)
}
