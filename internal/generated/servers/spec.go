package servers

//go:generate go run github.com/oapi-codegen/oapi-codegen/v2/cmd/oapi-codegen@v2.4.1 --config=cfg.yaml openapi.yaml

import (
	_ "embed"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var rawSpec []byte

// GetSwagger returns the OpenAPI document the server implements.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	swagger, err := loader.LoadFromData(rawSpec)
	if err != nil {
		return nil, fmt.Errorf("error loading Swagger: %w", err)
	}
	if err = swagger.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("error validating Swagger: %w", err)
	}
	return swagger, nil
}
