package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scottsawyer/commerce-printful/internal/domain"
)

func TestBuildLightPayloadOmitsOrderFields(t *testing.T) {
	env := newOrderEnv(t)
	builder := &payloadBuilder{repos: env.mem.repositories()}

	payload, err := builder.build(context.Background(), env.order, env.order.Shipments[0], false)
	require.NoError(t, err)
	require.NotNil(t, payload)

	assert.Empty(t, payload.Recipient.Name)
	assert.Empty(t, payload.Recipient.Company)
	assert.Equal(t, "printful_product", payload.ProductBundle)

	require.Len(t, payload.Items, 1)
	item := payload.Items[0]
	assert.Equal(t, "900", item.ExternalVariantID)
	assert.Equal(t, 2, item.Quantity)
	assert.Empty(t, item.Name)
	assert.Empty(t, item.RetailPrice)
	assert.Empty(t, item.SKU)
}

func TestBuildSkipsShipmentItemsMissingFromOrder(t *testing.T) {
	env := newOrderEnv(t)
	builder := &payloadBuilder{repos: env.mem.repositories()}

	shipment := env.order.Shipments[0]
	shipment.Items = append(shipment.Items, domain.ShipmentItem{OrderItemID: uuid.New(), Quantity: 1})

	payload, err := builder.build(context.Background(), env.order, shipment, true)
	require.NoError(t, err)
	require.NotNil(t, payload)
	assert.Len(t, payload.Items, 1)
}
