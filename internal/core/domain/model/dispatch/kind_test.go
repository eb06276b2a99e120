package dispatch_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"dispatch/internal/core/domain/model/dispatch"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	t.Run("nil error has unknown kind", func(t *testing.T) {
		assert.Equal(t, dispatch.KindUnknown, dispatch.KindOf(nil))
	})

	t.Run("plain error is internal", func(t *testing.T) {
		assert.Equal(t, dispatch.KindInternal, dispatch.KindOf(errors.New("boom")))
	})

	t.Run("kind survives wrapping", func(t *testing.T) {
		err := fmt.Errorf("stage: %w", dispatch.NewError(dispatch.KindTransient, "submit_order", context.DeadlineExceeded))

		assert.Equal(t, dispatch.KindTransient, dispatch.KindOf(err))
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestKind_Retriable(t *testing.T) {
	assert.True(t, dispatch.KindTransient.Retriable())

	for _, k := range []dispatch.Kind{
		dispatch.KindValidation,
		dispatch.KindUnknownRegion,
		dispatch.KindNoAlternateWarehouse,
		dispatch.KindDuplicateRejected,
		dispatch.KindInternal,
	} {
		assert.False(t, k.Retriable(), k.String())
	}
}

func TestError_Error(t *testing.T) {
	err := dispatch.NewError(dispatch.KindUnknownRegion, "assign_warehouse", errors.New(`unknown region "SG"`))

	assert.Equal(t, `assign_warehouse failed (unknown_region): unknown region "SG"`, err.Error())
}
