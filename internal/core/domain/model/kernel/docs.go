// Package kernel provides the shared domain primitives of the order service.
//
// The package includes:
//   - UUID: a value object for identifiers, time-ordered so newer orders sort later
//   - TenantID: the identifier of the authenticated customer that owns orders
//   - OrderKey: the composite (tenant, order) key every order store operation is addressed by
//   - Principal: an authenticated caller (tenant plus verified email)
//
// All primitives are immutable and reject their zero value in Validate.
package kernel
