package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValueIsRequired   = errors.New("value is required")
	ErrValueIsInvalid    = errors.New("value is invalid")
	ErrValueIsOutOfRange = errors.New("value is out of range")
	ErrObjectNotFound    = errors.New("object not found")
	ErrAuthorization     = errors.New("authorization failed")
	ErrStorage           = errors.New("storage failure")
	ErrExecutionFailure  = errors.New("execution failure")
)

// IsValidation reports whether err belongs to the validation class:
// a user-correctable input problem that must not cause any side effect.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValueIsRequired) ||
		errors.Is(err, ErrValueIsInvalid) ||
		errors.Is(err, ErrValueIsOutOfRange)
}

// ValueIsRequiredError is returned when a mandatory value is missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName), e.Cause)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ValueIsInvalidError is returned when a value is present but not acceptable.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName), e.Cause)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError is returned when a value falls outside [Min, Max].
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v",
		ErrValueIsInvalid, sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max))
	return withCause(msg, e.Cause)
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ObjectNotFoundError is returned when a record addressed by its identity does not exist.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %v)", ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// AuthorizationError is returned when a request carries no verified tenant identity.
type AuthorizationError struct {
	Reason string
	Cause  error
}

func NewAuthorizationError(reason string) *AuthorizationError {
	return &AuthorizationError{Reason: reason}
}

func NewAuthorizationErrorWithCause(reason string, cause error) *AuthorizationError {
	return &AuthorizationError{Reason: reason, Cause: cause}
}

func (e *AuthorizationError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrAuthorization, e.Reason), e.Cause)
}

func (e *AuthorizationError) Unwrap() error {
	return ErrAuthorization
}

// StorageError is returned when the order store fails an operation.
// No partial write is implied: the operation either happened or it did not.
type StorageError struct {
	Operation string
	Cause     error
}

func NewStorageError(operation string) *StorageError {
	return &StorageError{Operation: operation}
}

func NewStorageErrorWithCause(operation string, cause error) *StorageError {
	return &StorageError{Operation: operation, Cause: cause}
}

func (e *StorageError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrStorage, e.Operation), e.Cause)
}

func (e *StorageError) Unwrap() error {
	return ErrStorage
}

// ExecutionFailureError signals that a workflow step could not complete its attempt.
// It is the only failure class the workflow retry policy acts on.
type ExecutionFailureError struct {
	Step  string
	Cause error
}

func NewExecutionFailureError(step string) *ExecutionFailureError {
	return &ExecutionFailureError{Step: step}
}

func NewExecutionFailureErrorWithCause(step string, cause error) *ExecutionFailureError {
	return &ExecutionFailureError{Step: step, Cause: cause}
}

func (e *ExecutionFailureError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrExecutionFailure, e.Step), e.Cause)
}

func (e *ExecutionFailureError) Unwrap() error {
	return ErrExecutionFailure
}

func withCause(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (cause: %v)", msg, cause)
}

func sanitize(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
}
