// Package errs provides standardized error types for the order service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes error types for the failure classes the service distinguishes:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: bad input (validation)
//   - ObjectNotFoundError: an addressed record does not exist
//   - AuthorizationError: the caller has no verified identity
//   - StorageError: the order store could not complete an operation
//   - ExecutionFailureError: a workflow step could not complete its attempt
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so errors.Is works on the class
//
// A declined payment is deliberately absent: it is a business outcome, not an error.
package errs
