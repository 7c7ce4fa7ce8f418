package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"orders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("userId", "123")

		assert.Equal(t, "userId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("userId", "123", cause)

		assert.Equal(t, "userId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: userId, ID is: 123 (cause: database connection failed)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("Error with different ID types", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderId", 456)
		assert.Equal(t, "object not found: %!s(int=456)", err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("email")

		assert.Equal(t, "email", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: email", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("invalid format")
		err := errs.NewValueIsInvalidErrorWithCause("email", cause)

		assert.Equal(t, "email", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: email (cause: invalid format)", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("age", 150, 0, 120)

		assert.Equal(t, "age", err.ParamName)
		assert.Equal(t, 150, err.Value)
		assert.Equal(t, 0, err.Min)
		assert.Equal(t, 120, err.Max)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: 150 is age, min value is 0, max value is 120", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("NewValueIsOutOfRangeErrorWithCause", func(t *testing.T) {
		cause := errors.New("validation failed")
		err := errs.NewValueIsOutOfRangeErrorWithCause("score", -5, 0, 100, cause)

		assert.Equal(t, "score", err.ParamName)
		assert.Equal(t, -5, err.Value)
		assert.Equal(t, 0, err.Min)
		assert.Equal(t, 100, err.Max)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"value is invalid: -5 is score, min value is 0, max value is 100 (cause: validation failed)",
			err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("sanitize function with newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("NewValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("username")

		assert.Equal(t, "username", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is required: username", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})

	t.Run("NewValueIsRequiredErrorWithCause", func(t *testing.T) {
		cause := errors.New("missing required field")
		err := errs.NewValueIsRequiredErrorWithCause("username", cause)

		assert.Equal(t, "username", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is required: username (cause: missing required field)", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})
}

func TestAuthorizationError(t *testing.T) {
	t.Run("NewAuthorizationError", func(t *testing.T) {
		err := errs.NewAuthorizationError("missing bearer token")

		assert.Equal(t, "missing bearer token", err.Reason)
		require.NoError(t, err.Cause)
		assert.Equal(t, "authorization failed: missing bearer token", err.Error())
		assert.Equal(t, errs.ErrAuthorization, err.Unwrap())
	})

	t.Run("NewAuthorizationErrorWithCause", func(t *testing.T) {
		cause := errors.New("token is expired")
		err := errs.NewAuthorizationErrorWithCause("invalid token", cause)

		assert.Equal(t, "authorization failed: invalid token (cause: token is expired)", err.Error())
		require.ErrorIs(t, err, errs.ErrAuthorization)
	})
}

func TestStorageError(t *testing.T) {
	t.Run("NewStorageError", func(t *testing.T) {
		err := errs.NewStorageError("add order")

		assert.Equal(t, "add order", err.Operation)
		assert.Equal(t, "storage failure: add order", err.Error())
		assert.Equal(t, errs.ErrStorage, err.Unwrap())
	})

	t.Run("NewStorageErrorWithCause", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := errs.NewStorageErrorWithCause("add order", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "storage failure: add order (cause: connection refused)", err.Error())
	})
}

func TestExecutionFailureError(t *testing.T) {
	t.Run("NewExecutionFailureError", func(t *testing.T) {
		err := errs.NewExecutionFailureError("charge")

		assert.Equal(t, "charge", err.Step)
		assert.Equal(t, "execution failure: charge", err.Error())
		assert.Equal(t, errs.ErrExecutionFailure, err.Unwrap())
	})

	t.Run("NewExecutionFailureErrorWithCause", func(t *testing.T) {
		cause := errors.New("gateway timeout")
		err := errs.NewExecutionFailureErrorWithCause("charge", cause)

		assert.Equal(t, "execution failure: charge (cause: gateway timeout)", err.Error())
		require.ErrorIs(t, err, errs.ErrExecutionFailure)
	})
}

func TestIsValidation(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected bool
	}{
		{"required", errs.NewValueIsRequiredError("weight"), true},
		{"invalid", errs.NewValueIsInvalidError("cutType"), true},
		{"out of range", errs.NewValueIsOutOfRangeError("quantity", 0, 1, 100), true},
		{"joined", errors.Join(errs.NewValueIsInvalidError("a"), errs.NewValueIsRequiredError("b")), true},
		{"wrapped", fmt.Errorf("submit: %w", errs.NewValueIsInvalidError("weight")), true},
		{"not found", errs.NewObjectNotFoundError("order", "1"), false},
		{"storage", errs.NewStorageError("add order"), false},
		{"plain", errors.New("boom"), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, errs.IsValidation(tc.err))
		})
	}
}

func TestSentinelErrors(t *testing.T) {
	t.Run("sentinel errors are defined", func(t *testing.T) {
		require.Error(t, errs.ErrObjectNotFound)
		require.Error(t, errs.ErrValueIsInvalid)
		require.Error(t, errs.ErrValueIsOutOfRange)
		require.Error(t, errs.ErrValueIsRequired)
		require.Error(t, errs.ErrAuthorization)
		require.Error(t, errs.ErrStorage)
		require.Error(t, errs.ErrExecutionFailure)
	})

	t.Run("error messages match expectations", func(t *testing.T) {
		assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
		assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
		assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
		assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
		assert.Equal(t, "authorization failed", errs.ErrAuthorization.Error())
		assert.Equal(t, "storage failure", errs.ErrStorage.Error())
		assert.Equal(t, "execution failure", errs.ErrExecutionFailure.Error())
	})
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	t.Run("errors.Is works with custom errors", func(t *testing.T) {
		objectNotFoundErr := errs.NewObjectNotFoundError("userId", "123")
		require.ErrorIs(t, objectNotFoundErr, errs.ErrObjectNotFound)

		valueInvalidErr := errs.NewValueIsInvalidError("email")
		require.ErrorIs(t, valueInvalidErr, errs.ErrValueIsInvalid)

		valueOutOfRangeErr := errs.NewValueIsOutOfRangeError("age", 150, 0, 120)
		require.ErrorIs(t, valueOutOfRangeErr, errs.ErrValueIsOutOfRange)

		valueRequiredErr := errs.NewValueIsRequiredError("username")
		require.ErrorIs(t, valueRequiredErr, errs.ErrValueIsRequired)

		storageErr := errs.NewStorageErrorWithCause("update status", errors.New("test"))
		require.ErrorIs(t, storageErr, errs.ErrStorage)
	})
}
