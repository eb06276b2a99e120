package servers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// List recent dispatch runs
	// (GET /api/v1/dispatches)
	ListDispatches(ctx echo.Context, params ListDispatchesParams) error
	// Start a dispatch run
	// (POST /api/v1/dispatches)
	TriggerDispatch(ctx echo.Context) error
	// Get one dispatch run
	// (GET /api/v1/dispatches/{dispatchId})
	GetDispatch(ctx echo.Context, dispatchId string) error
	// List registered warehouse nodes
	// (GET /api/v1/warehouses)
	ListWarehouses(ctx echo.Context) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// ListDispatches converts echo context to params.
func (w *ServerInterfaceWrapper) ListDispatches(ctx echo.Context) error {
	var err error

	ctx.Set(BasicAuthScopes, []string{})

	var params ListDispatchesParams

	err = runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &params.Status)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter status: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &params.Limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter limit: %s", err))
	}

	return w.Handler.ListDispatches(ctx, params)
}

// TriggerDispatch converts echo context to params.
func (w *ServerInterfaceWrapper) TriggerDispatch(ctx echo.Context) error {
	ctx.Set(BasicAuthScopes, []string{})

	return w.Handler.TriggerDispatch(ctx)
}

// GetDispatch converts echo context to params.
func (w *ServerInterfaceWrapper) GetDispatch(ctx echo.Context) error {
	var err error

	var dispatchId string
	err = runtime.BindStyledParameterWithOptions("simple", "dispatchId", ctx.Param("dispatchId"), &dispatchId,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter dispatchId: %s", err))
	}

	ctx.Set(BasicAuthScopes, []string{})

	return w.Handler.GetDispatch(ctx, dispatchId)
}

// ListWarehouses converts echo context to params.
func (w *ServerInterfaceWrapper) ListWarehouses(ctx echo.Context) error {
	ctx.Set(BasicAuthScopes, []string{})

	return w.Handler.ListWarehouses(ctx)
}

// EchoRouter is implemented by both echo.Echo and echo.Group.
type EchoRouter interface {
	CONNECT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	HEAD(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	OPTIONS(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	TRACE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers handlers, and prepends BaseURL to the
// paths, so that the paths can be served under a prefix.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.GET(baseURL+"/api/v1/dispatches", wrapper.ListDispatches)
	router.POST(baseURL+"/api/v1/dispatches", wrapper.TriggerDispatch)
	router.GET(baseURL+"/api/v1/dispatches/:dispatchId", wrapper.GetDispatch)
	router.GET(baseURL+"/api/v1/warehouses", wrapper.ListWarehouses)
}
