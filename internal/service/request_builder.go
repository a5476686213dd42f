package service

import (
	"context"
	"strings"

	"github.com/scottsawyer/commerce-printful/internal/domain"
	"github.com/scottsawyer/commerce-printful/internal/printful"
	"github.com/scottsawyer/commerce-printful/internal/repository"
)

// shipmentPayload is the recipient and item set derived from one shipment,
// shared by order creation (extended) and rate calculation (light).
type shipmentPayload struct {
	Recipient printful.Recipient
	Items     []printful.OrderItem
	// ProductBundle of the first purchased item, used to resolve which
	// Printful store's credentials govern this shipment. Mixing product
	// bundles within one shipment is not supported.
	ProductBundle string
}

// payloadBuilder assembles shipment payloads from local order data.
type payloadBuilder struct {
	repos *repository.Repositories
}

// build derives the payload from a shipment. It returns nil when the
// shipment has no shipping address; items without a Printful reference on
// the purchased variation are omitted (they are not fulfilled by
// Printful). With extended true, recipient name/company and per-item
// name, retail price and SKU are included as needed for order creation.
func (b *payloadBuilder) build(ctx context.Context, order *domain.Order, shipment domain.Shipment, extended bool) (*shipmentPayload, error) {
	if shipment.Address == nil {
		return nil, nil
	}

	address := shipment.Address
	payload := &shipmentPayload{
		Recipient: printful.Recipient{
			Address1:    address.Line1,
			City:        address.City,
			CountryCode: address.CountryCode,
			StateCode:   address.AdministrativeArea,
			Zip:         address.PostalCode,
		},
		Items: []printful.OrderItem{},
	}

	if extended {
		payload.Recipient.Name = strings.TrimSpace(address.GivenName + " " + address.FamilyName)
		payload.Recipient.Company = address.Organization
	}

	orderItems := make(map[string]domain.OrderItem, len(order.Items))
	for _, item := range order.Items {
		orderItems[item.ID.String()] = item
	}

	for _, shipmentItem := range shipment.Items {
		orderItem, ok := orderItems[shipmentItem.OrderItemID.String()]
		if !ok {
			continue
		}

		variation, err := b.repos.Variation.GetByID(ctx, orderItem.PurchasedVariationID)
		if err != nil {
			return nil, err
		}

		if payload.ProductBundle == "" {
			product, err := b.repos.Product.GetByID(ctx, variation.ProductID)
			if err != nil {
				return nil, err
			}
			payload.ProductBundle = product.Bundle
		}

		if variation.PrintfulReference == "" {
			continue
		}

		item := printful.OrderItem{
			ExternalVariantID: variation.PrintfulReference,
			Quantity:          orderItem.Quantity,
		}
		if extended {
			item.Name = variation.Title
			item.RetailPrice = orderItem.TotalPrice.Amount.StringFixed(2)
			item.SKU = variation.SKU
		}
		payload.Items = append(payload.Items, item)
	}

	return payload, nil
}
