package http

import (
	"errors"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// newRequestValidator checks parameters and bodies of requests against the
// OpenAPI document. Requests for paths the document does not describe pass
// through untouched. Authentication is left to the basic auth middleware.
func newRequestValidator(spec *openapi3.T, skipper middleware.Skipper) (echo.MiddlewareFunc, error) {
	router, err := legacy.NewRouter(spec)
	if err != nil {
		return nil, err
	}

	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if skipper != nil && skipper(c) {
				return next(c)
			}

			req := c.Request()
			route, pathParams, findErr := router.FindRoute(req)
			if findErr != nil {
				var routeErr *routers.RouteError
				if errors.As(findErr, &routeErr) {
					return next(c)
				}
				return errorResponse(c, http.StatusBadRequest, findErr.Error())
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if validateErr := openapi3filter.ValidateRequest(req.Context(), input); validateErr != nil {
				return errorResponse(c, http.StatusBadRequest, validateErr.Error())
			}

			return next(c)
		}
	}, nil
}
