package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/scottsawyer/commerce-printful/internal/domain"
	"github.com/scottsawyer/commerce-printful/internal/printful"
)

func newWebhookProcessor(t *testing.T) (*WebhookProcessor, *mem) {
	t.Helper()
	m := newMem()
	return NewWebhookProcessor(m.repositories(), zaptest.NewLogger(t)), m
}

func TestSupportedEventTypes(t *testing.T) {
	processor, _ := newWebhookProcessor(t)

	assert.True(t, processor.Supported(printful.WebhookPackageShipped))
	assert.False(t, processor.Supported("order_created"))
	assert.False(t, processor.Supported(""))
}

func TestProcessRejectsUnknownEventType(t *testing.T) {
	processor, _ := newWebhookProcessor(t)

	err := processor.Process(context.Background(), printful.WebhookEvent{Type: "order_created"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "order_created")
}

func TestPackageShippedUpdatesTracking(t *testing.T) {
	processor, m := newWebhookProcessor(t)

	shipment := domain.Shipment{
		ID:             uuid.New(),
		ShippingMethod: PrintfulShippingMethod,
		Status:         domain.ShipmentStatusPending,
	}
	m.shipments[shipment.ID] = shipment

	shippedAt := time.Date(2024, 3, 9, 15, 4, 5, 0, time.UTC)
	err := processor.Process(context.Background(), printful.WebhookEvent{
		Type: printful.WebhookPackageShipped,
		Data: printful.WebhookData{
			Order: &printful.WebhookOrder{ID: 11, ExternalID: shipment.ID.String()},
			Shipment: &printful.WebhookShipment{
				Created:        shippedAt.Unix(),
				Carrier:        "USPS",
				Service:        "USPS Priority Mail",
				TrackingNumber: "9400110200881234567890",
			},
		},
	})
	require.NoError(t, err)

	require.Len(t, m.trackingUpdates, 1)
	update := m.trackingUpdates[0]
	assert.Equal(t, shipment.ID, update.ShipmentID)
	assert.Equal(t, "9400110200881234567890", update.TrackingNumber)
	assert.Equal(t, "USPS Priority Mail", update.Service)
	assert.True(t, update.ShippedAt.Equal(shippedAt))

	stored := m.shipments[shipment.ID]
	assert.Equal(t, domain.ShipmentStatusShipped, stored.Status)
}

func TestPackageShippedUnknownShipmentIgnored(t *testing.T) {
	processor, m := newWebhookProcessor(t)

	err := processor.Process(context.Background(), printful.WebhookEvent{
		Type: printful.WebhookPackageShipped,
		Data: printful.WebhookData{
			Order:    &printful.WebhookOrder{ExternalID: uuid.NewString()},
			Shipment: &printful.WebhookShipment{TrackingNumber: "X"},
		},
	})

	require.NoError(t, err)
	assert.Empty(t, m.trackingUpdates)
}

func TestPackageShippedInvalidReference(t *testing.T) {
	processor, _ := newWebhookProcessor(t)

	err := processor.Process(context.Background(), printful.WebhookEvent{
		Type: printful.WebhookPackageShipped,
		Data: printful.WebhookData{
			Order:    &printful.WebhookOrder{ExternalID: "not-a-shipment"},
			Shipment: &printful.WebhookShipment{},
		},
	})

	require.Error(t, err)
}

func TestPackageShippedMissingPayload(t *testing.T) {
	processor, _ := newWebhookProcessor(t)

	err := processor.Process(context.Background(), printful.WebhookEvent{
		Type: printful.WebhookPackageShipped,
	})

	require.Error(t, err)
}
