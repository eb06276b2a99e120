package commands_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/dispatch"
	"dispatch/internal/core/domain/model/submission"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newSubmitHandler(client *MockWarehouseClient, metrics *MockDispatchMetrics) commands.SubmitOrderCommandHandler {
	return commands.NewSubmitOrderCommandHandler(
		newRegistry(),
		services.NewOrderSubmitter(client, time.Second),
		metrics,
		discardLogger,
	)
}

func TestNewSubmitOrderCommand_Validation(t *testing.T) {
	_, err := commands.NewSubmitOrderCommand(newOrder("o1", "HCM"), "")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	cmd, err := commands.NewSubmitOrderCommand(newOrder("o1", "HCM"), "HN")
	require.NoError(t, err)
	assert.Equal(t, "HN", cmd.WarehouseID())
	assert.Equal(t, "o1", cmd.Order().ID())
}

func TestSubmitOrderCommandHandler_Handle(t *testing.T) {
	tests := []struct {
		name     string
		resp     ports.WarehouseResponse
		sendErr  error
		wantKind submission.Kind
		errKind  dispatch.Kind
	}{
		{
			name:     "success",
			resp:     ports.WarehouseResponse{StatusCode: http.StatusCreated, Body: json.RawMessage(`{"order_id":"o1"}`)},
			wantKind: submission.Success,
			errKind:  dispatch.KindUnknown,
		},
		{
			name: "duplicate",
			resp: ports.WarehouseResponse{
				StatusCode: http.StatusInternalServerError,
				ErrorCode:  services.DuplicateOrderErrorCode,
			},
			wantKind: submission.DuplicateRejected,
			errKind:  dispatch.KindDuplicateRejected,
		},
		{
			name:     "transient",
			sendErr:  errors.New("connection refused"),
			wantKind: submission.TransientFailure,
			errKind:  dispatch.KindTransient,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(MockWarehouseClient)
			client.On("SendOrder", mock.Anything, "HN", "o1").Return(tt.resp, tt.sendErr).Once()
			metrics := new(MockDispatchMetrics)
			metrics.On("ObserveSubmission", "HN", tt.wantKind).Once()

			cmd, err := commands.NewSubmitOrderCommand(newOrder("o1", "HCM"), "HN")
			require.NoError(t, err)

			outcome, err := newSubmitHandler(client, metrics).Handle(t.Context(), cmd)

			assert.Equal(t, tt.wantKind, outcome.Kind())
			assert.Equal(t, tt.errKind, dispatch.KindOf(err))
			client.AssertExpectations(t)
			metrics.AssertExpectations(t)
		})
	}
}

func TestSubmitOrderCommandHandler_Handle_UnknownWarehouse(t *testing.T) {
	client := new(MockWarehouseClient)
	cmd, err := commands.NewSubmitOrderCommand(newOrder("o1", "HCM"), "XYZ")
	require.NoError(t, err)

	_, err = newSubmitHandler(client, new(MockDispatchMetrics)).Handle(t.Context(), cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Equal(t, dispatch.KindInternal, dispatch.KindOf(err))
	client.AssertNotCalled(t, "SendOrder", mock.Anything, mock.Anything, mock.Anything)
}
