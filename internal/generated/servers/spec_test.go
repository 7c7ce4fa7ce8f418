package servers_test

import (
	"os"
	"testing"

	"orders/internal/core/domain/model/order"
	"orders/internal/generated/servers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSwagger(t *testing.T) {
	swagger, err := servers.GetSwagger()
	require.NoError(t, err)

	orders := swagger.Paths.Find("/orders")
	require.NotNil(t, orders)
	assert.Equal(t, "SubmitOrder", orders.Post.OperationID)
	assert.Equal(t, "ListOrders", orders.Get.OperationID)

	cutTypes := swagger.Components.Schemas["CutType"].Value.Enum
	assert.Len(t, cutTypes, 6)
	assert.Contains(t, cutTypes, "CURRY_CUT")
}

func TestGetSwagger_DeliveryLimitsMatchOrderModel(t *testing.T) {
	swagger, err := servers.GetSwagger()
	require.NoError(t, err)

	props := swagger.Components.Schemas["NewOrder"].Value.Properties
	limits := map[string]int{
		"location":             order.MaxAddressLength,
		"postalCode":           order.MaxPostalCodeLength,
		"deliveryInstructions": order.MaxInstructionsLength,
	}
	for name, limit := range limits {
		require.Contains(t, props, name)
		require.NotNil(t, props[name].Value.MaxLength, name)
		assert.Equal(t, uint64(limit), *props[name].Value.MaxLength, name)
	}
}

func TestCodegenConfigTargetsGeneratedFile(t *testing.T) {
	cfg, err := os.ReadFile("cfg.yaml")
	require.NoError(t, err)

	assert.Contains(t, string(cfg), "package: servers")
	assert.Contains(t, string(cfg), "output: servers.gen.go")

	generated, err := os.ReadFile("servers.gen.go")
	require.NoError(t, err)
	assert.Contains(t, string(generated), "DO NOT EDIT")
}
