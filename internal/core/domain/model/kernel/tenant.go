package kernel

import (
	"fmt"
	"strings"

	"orders/internal/pkg/errs"
)

// maxTenantIDLength bounds identifiers issued by the identity provider.
const maxTenantIDLength = 128

// TenantID identifies the customer that owns a set of orders. It is the
// partition half of every OrderKey and the scope of every order query.
type TenantID struct {
	value string
}

// NewTenantID validates and wraps an identity-provider subject.
func NewTenantID(value string) (TenantID, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return TenantID{}, errs.NewValueIsRequiredError("tenantId")
	}
	if len(value) > maxTenantIDLength {
		return TenantID{}, errs.NewValueIsOutOfRangeError("tenantId length", len(value), 1, maxTenantIDLength)
	}
	return TenantID{value: value}, nil
}

// MustNewTenantID is NewTenantID for values known to be valid (tests, constants).
func MustNewTenantID(value string) TenantID {
	t, err := NewTenantID(value)
	if err != nil {
		panic(fmt.Sprintf("kernel: invalid tenant id %q: %v", value, err))
	}
	return t
}

func (t TenantID) String() string {
	return t.value
}

func (t TenantID) IsEqual(other TenantID) bool {
	return t.value == other.value
}

// Validate rejects the zero value.
func (t TenantID) Validate() error {
	if t.value == "" {
		return errs.NewValueIsRequiredError("tenantId")
	}
	return nil
}
