// Package order provides the Order aggregate and its value objects.
//
// The package includes:
//   - Order: the aggregate root holding identity, pricing, delivery metadata and status
//   - Status: the lifecycle PENDING_PAYMENT -> PROCESSING -> PAID | FAILED -> NOTIFIED
//   - CutType: the fixed product catalog
//   - Pricing: subtotal and total derived with exact decimal arithmetic
//
// Key business rules:
//   - Pricing is computed once, at submission, and is immutable afterwards
//   - Status never regresses; PAID and FAILED exclude each other
//   - Orders are addressed by kernel.OrderKey (tenant + order id)
package order
