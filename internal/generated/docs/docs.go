// Package docs registers the API document with swag so that echo-swagger can serve it.
package docs

import (
	"fmt"
	"sync"

	"orders/internal/generated/servers"

	"github.com/swaggo/swag"
)

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Orders",
	Description:      "Order submission and order history for authenticated customers.",
	InfoInstanceName: "swagger",
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

var (
	registerOnce sync.Once
	registerErr  error
)

// Register publishes the OpenAPI document under SwaggerInfo's instance name.
func Register() error {
	registerOnce.Do(func() {
		swagger, loadErr := servers.GetSwagger()
		if loadErr != nil {
			registerErr = loadErr
			return
		}
		raw, marshalErr := swagger.MarshalJSON()
		if marshalErr != nil {
			registerErr = fmt.Errorf("encode api document: %w", marshalErr)
			return
		}

		SwaggerInfo.SwaggerTemplate = string(raw)
		swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
	})
	return registerErr
}
