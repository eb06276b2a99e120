package errs_test

import (
	"errors"
	"testing"

	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("dispatchId", "run-1")

		assert.Equal(t, "dispatchId", err.ParamName)
		assert.Equal(t, "run-1", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: run-1", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("dispatchId", "run-1", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: dispatchId, ID is: run-1 (cause: database connection failed)",
			err.Error())
	})
}

func TestObjectAlreadyExistsError(t *testing.T) {
	t.Run("NewObjectAlreadyExistsError", func(t *testing.T) {
		err := errs.NewObjectAlreadyExistsError("dispatchId", "run-1")

		assert.Equal(t, "object already exists: run-1", err.Error())
		require.ErrorIs(t, err, errs.ErrObjectAlreadyExists)
	})

	t.Run("NewObjectAlreadyExistsErrorWithCause", func(t *testing.T) {
		cause := errors.New("duplicate key value")
		err := errs.NewObjectAlreadyExistsErrorWithCause("dispatchId", "run-1", cause)

		assert.Equal(t,
			"object already exists: param is: dispatchId, ID is: run-1 (cause: duplicate key value)",
			err.Error())
		require.ErrorIs(t, err, errs.ErrObjectAlreadyExists)
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("region")

		assert.Equal(t, "region", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: region", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("not a string")
		err := errs.NewValueIsInvalidErrorWithCause("region", cause)

		assert.Equal(t, "value is invalid: region (cause: not a string)", err.Error())
	})

	t.Run("newlines are flattened", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("order\nid")

		assert.Equal(t, "value is invalid: order id", err.Error())
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("NewValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("customer_name")

		assert.Equal(t, "value is required: customer_name", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})

	t.Run("NewValueIsRequiredErrorWithCause", func(t *testing.T) {
		cause := errors.New("missing required field")
		err := errs.NewValueIsRequiredErrorWithCause("customer_name", cause)

		assert.Equal(t, "value is required: customer_name (cause: missing required field)", err.Error())
	})
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	require.ErrorIs(t, errs.NewObjectNotFoundError("id", "1"), errs.ErrObjectNotFound)
	require.ErrorIs(t, errs.NewObjectAlreadyExistsError("id", "1"), errs.ErrObjectAlreadyExists)
	require.ErrorIs(t, errs.NewValueIsInvalidError("x"), errs.ErrValueIsInvalid)
	require.ErrorIs(t, errs.NewValueIsRequiredError("x"), errs.ErrValueIsRequired)
}
