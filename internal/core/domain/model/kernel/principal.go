package kernel

import (
	"errors"
	"net/mail"
	"strings"

	"orders/internal/pkg/errs"
)

// Principal is an authenticated caller: the tenant it acts for and its verified email.
type Principal struct {
	tenantID TenantID
	email    string
}

// NewPrincipal validates the identity handed over by the authenticator.
func NewPrincipal(tenantID TenantID, email string) (Principal, error) {
	email = strings.TrimSpace(email)
	var emailErr error
	if email == "" {
		emailErr = errs.NewValueIsRequiredError("email")
	} else if _, err := mail.ParseAddress(email); err != nil {
		emailErr = errs.NewValueIsInvalidErrorWithCause("email", err)
	}

	if err := errors.Join(tenantID.Validate(), emailErr); err != nil {
		return Principal{}, err
	}
	return Principal{tenantID: tenantID, email: email}, nil
}

func (p Principal) TenantID() TenantID {
	return p.tenantID
}

func (p Principal) Email() string {
	return p.email
}

func (p Principal) Validate() error {
	return p.tenantID.Validate()
}
