package http

import (
	"context"
	"errors"
	"net/http"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/dispatch"
	"dispatch/internal/core/domain/model/warehouse"
	"dispatch/internal/generated/servers"
	"dispatch/internal/orchestrator"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// DispatchStarter starts dispatch runs in the background.
type DispatchStarter interface {
	Start(ctx context.Context, req orchestrator.TriggerRequest) (*dispatch.Run, error)
}

type DispatchRunGetter interface {
	Handle(ctx context.Context, query queries.GetDispatchRunQuery) (queries.DispatchRunView, error)
}

type DispatchRunLister interface {
	Handle(ctx context.Context, query queries.ListDispatchRunsQuery) ([]queries.DispatchRunView, error)
}

// Server implements servers.ServerInterface on top of the orchestrator and
// the dispatch run queries.
type Server struct {
	starter  DispatchStarter
	getRun   DispatchRunGetter
	listRuns DispatchRunLister
	registry warehouse.Registry
}

func NewServer(
	starter DispatchStarter,
	getRun DispatchRunGetter,
	listRuns DispatchRunLister,
	registry warehouse.Registry,
) *Server {
	return &Server{
		starter:  starter,
		getRun:   getRun,
		listRuns: listRuns,
		registry: registry,
	}
}

// TriggerDispatch handles POST /api/v1/dispatches. The pipeline keeps running
// after the response is sent.
func (s *Server) TriggerDispatch(ctx echo.Context) error {
	var body servers.TriggerDispatchRequest
	if err := ctx.Bind(&body); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid request body")
	}

	req := orchestrator.TriggerRequest{}
	if body.DispatchId != nil {
		req.DispatchID = *body.DispatchId
	}
	if body.Conf != nil {
		req.Conf = *body.Conf
	}

	run, err := s.starter.Start(ctx.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrObjectAlreadyExists):
			return errorResponse(ctx, http.StatusConflict, "Dispatch id is already used: "+req.DispatchID)
		case isClientError(err):
			return errorResponse(ctx, http.StatusBadRequest, "Invalid dispatch request: "+err.Error())
		default:
			return errorResponse(ctx, http.StatusInternalServerError, "Failed to start dispatch run")
		}
	}

	return ctx.JSON(http.StatusAccepted, servers.DispatchAccepted{
		DispatchId: run.ID(),
		Status:     run.Status().String(),
	})
}

// GetDispatch handles GET /api/v1/dispatches/{dispatchId}.
func (s *Server) GetDispatch(ctx echo.Context, dispatchId string) error {
	query, err := queries.NewGetDispatchRunQuery(dispatchId)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid dispatch id: "+err.Error())
	}

	view, err := s.getRun.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return errorResponse(ctx, http.StatusNotFound, "Dispatch run not found: "+dispatchId)
		}
		return errorResponse(ctx, http.StatusInternalServerError, "Failed to retrieve dispatch run")
	}

	return ctx.JSON(http.StatusOK, toDispatchRun(view))
}

// ListDispatches handles GET /api/v1/dispatches.
func (s *Server) ListDispatches(ctx echo.Context, params servers.ListDispatchesParams) error {
	status := dispatch.StatusUnknown
	if params.Status != nil {
		parsed, err := dispatch.ParseStatus(string(*params.Status))
		if err != nil {
			return errorResponse(ctx, http.StatusBadRequest, "Invalid status: "+err.Error())
		}
		status = parsed
	}

	limit := 0
	if params.Limit != nil {
		limit = *params.Limit
	}

	query, err := queries.NewListDispatchRunsQuery(status, limit)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid query: "+err.Error())
	}

	views, err := s.listRuns.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, http.StatusInternalServerError, "Failed to retrieve dispatch runs")
	}

	response := make([]servers.DispatchRun, len(views))
	for i, view := range views {
		response[i] = toDispatchRun(view)
	}

	return ctx.JSON(http.StatusOK, response)
}

// ListWarehouses handles GET /api/v1/warehouses.
func (s *Server) ListWarehouses(ctx echo.Context) error {
	nodes := s.registry.Nodes()

	response := make([]servers.Warehouse, len(nodes))
	for i, node := range nodes {
		response[i] = servers.Warehouse{
			Id:          node.ID(),
			BaseAddress: node.BaseAddress(),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func toDispatchRun(view queries.DispatchRunView) servers.DispatchRun {
	run := servers.DispatchRun{
		DispatchId:  view.ID,
		Status:      view.Status,
		WasFallback: view.WasFallback,
		Attempts:    view.Attempts,
		CreatedAt:   view.CreatedAt,
		UpdatedAt:   view.UpdatedAt,
	}

	if view.OrderID != "" {
		run.Order = &servers.Order{
			OrderId:      view.OrderID,
			CustomerName: view.CustomerName,
			Region:       view.Region,
			Timestamp:    view.Timestamp,
		}
	}
	if view.WarehouseID != "" {
		warehouseID := view.WarehouseID
		run.WarehouseId = &warehouseID
	}
	if view.LastError != "" {
		lastError := view.LastError
		run.LastError = &lastError
	}

	return run
}

func isClientError(err error) bool {
	return errors.Is(err, errs.ErrValueIsRequired) || errors.Is(err, errs.ErrValueIsInvalid)
}

func errorResponse(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, servers.Error{
		Code:    code,
		Message: message,
	})
}
