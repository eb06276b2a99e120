package dispatch_test

import (
	"testing"

	"dispatch/internal/core/domain/model/dispatch"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_String(t *testing.T) {
	expected := map[dispatch.Status]string{
		dispatch.StatusReceived:          "received",
		dispatch.StatusValidated:         "validated",
		dispatch.StatusWarehouseAssigned: "warehouse_assigned",
		dispatch.StatusSubmitted:         "submitted",
		dispatch.StatusDuplicateRejected: "duplicate_rejected",
		dispatch.StatusFailed:            "failed",
		dispatch.StatusAborted:           "aborted",
		dispatch.StatusUnknown:           "unknown",
		dispatch.Status(99):              "unknown",
	}

	for status, name := range expected {
		assert.Equal(t, name, status.String())
	}
}

func TestParseStatus(t *testing.T) {
	for _, s := range dispatch.Statuses() {
		parsed, err := dispatch.ParseStatus(s.String())

		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := dispatch.ParseStatus("completed")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestStatus_Validate(t *testing.T) {
	for _, s := range dispatch.Statuses() {
		require.NoError(t, s.Validate())
	}

	require.ErrorIs(t, dispatch.StatusUnknown.Validate(), errs.ErrValueIsInvalid)
}

func TestStatus_IsFinal(t *testing.T) {
	assert.False(t, dispatch.StatusReceived.IsFinal())
	assert.False(t, dispatch.StatusValidated.IsFinal())
	assert.False(t, dispatch.StatusWarehouseAssigned.IsFinal())
	assert.True(t, dispatch.StatusSubmitted.IsFinal())
	assert.True(t, dispatch.StatusDuplicateRejected.IsFinal())
	assert.True(t, dispatch.StatusFailed.IsFinal())
	assert.True(t, dispatch.StatusAborted.IsFinal())
}

func TestStatus_CanTransitionTo(t *testing.T) {
	testCases := []struct {
		from, to dispatch.Status
		allowed  bool
	}{
		{dispatch.StatusReceived, dispatch.StatusValidated, true},
		{dispatch.StatusReceived, dispatch.StatusAborted, true},
		{dispatch.StatusReceived, dispatch.StatusWarehouseAssigned, false},
		{dispatch.StatusValidated, dispatch.StatusWarehouseAssigned, true},
		{dispatch.StatusValidated, dispatch.StatusSubmitted, false},
		{dispatch.StatusWarehouseAssigned, dispatch.StatusSubmitted, true},
		{dispatch.StatusWarehouseAssigned, dispatch.StatusDuplicateRejected, true},
		{dispatch.StatusWarehouseAssigned, dispatch.StatusFailed, true},
		{dispatch.StatusSubmitted, dispatch.StatusFailed, false},
		{dispatch.StatusFailed, dispatch.StatusSubmitted, false},
	}

	for _, tc := range testCases {
		t.Run(tc.from.String()+"_to_"+tc.to.String(), func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to))
		})
	}
}
