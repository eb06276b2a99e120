package servers

import (
	"context"

	"dispatch/api"

	"github.com/getkin/kin-openapi/openapi3"
)

// GetSwagger returns the parsed and validated OpenAPI document of the API.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(api.OpenAPISpec)
	if err != nil {
		return nil, err
	}

	if err = doc.Validate(context.Background()); err != nil {
		return nil, err
	}

	return doc, nil
}
