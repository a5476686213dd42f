package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/scottsawyer/commerce-printful/internal/domain"
	"github.com/scottsawyer/commerce-printful/internal/service"
)

// OrderPaidRequest is the order payload delivered by the commerce
// platform's order-paid event hook.
type OrderPaidRequest struct {
	ID          string             `json:"id" binding:"required,uuid"`
	OrderNumber string             `json:"order_number" binding:"required"`
	Currency    string             `json:"currency" binding:"required"`
	Items       []OrderItemPayload `json:"items" binding:"required,min=1"`
	Shipments   []ShipmentPayload  `json:"shipments" binding:"required,min=1"`
}

type OrderItemPayload struct {
	ID                   string `json:"id" binding:"required,uuid"`
	PurchasedVariationID string `json:"purchased_variation_id" binding:"required,uuid"`
	Quantity             int    `json:"quantity" binding:"required,min=1"`
	TotalPrice           string `json:"total_price" binding:"required"`
}

type ShipmentPayload struct {
	ID              string                `json:"id" binding:"required,uuid"`
	ShippingMethod  string                `json:"shipping_method" binding:"required"`
	ShippingService string                `json:"shipping_service"`
	Address         *AddressPayload       `json:"address"`
	Items           []ShipmentItemPayload `json:"items"`
}

type ShipmentItemPayload struct {
	OrderItemID string `json:"order_item_id" binding:"required,uuid"`
	Quantity    int    `json:"quantity" binding:"required,min=1"`
}

type AddressPayload struct {
	Line1              string `json:"line1" binding:"required"`
	City               string `json:"city" binding:"required"`
	CountryCode        string `json:"country_code" binding:"required"`
	PostalCode         string `json:"postal_code" binding:"required"`
	AdministrativeArea string `json:"administrative_area"`
	GivenName          string `json:"given_name"`
	FamilyName         string `json:"family_name"`
	Organization       string `json:"organization"`
}

// RateRequest asks for shipping quotes for one shipment of an order
// during checkout.
type RateRequest struct {
	Order      OrderPaidRequest `json:"order" binding:"required"`
	ShipmentID string           `json:"shipment_id" binding:"required,uuid"`
	// Currency optionally requests quotes converted to this currency.
	Currency string `json:"currency"`
}

type RateResponse struct {
	ServiceID   string `json:"service_id"`
	ServiceName string `json:"service_name"`
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
}

// HandleOrderPaid handles POST /v1/orders/paid
func HandleOrderPaid(integrator *service.OrderIntegrator, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req OrderPaidRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		order, err := req.toDomain()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		// Per-shipment failures are logged and skipped; the hook is
		// acknowledged regardless so the platform doesn't retry paid
		// orders indefinitely.
		integrator.CreateOrder(c.Request.Context(), order)
		c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
	}
}

// HandleCalculateRates handles POST /v1/rates
func HandleCalculateRates(rates *service.ShippingRateService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		order, err := req.Order.toDomain()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		shipmentID := uuid.MustParse(req.ShipmentID)
		var shipment *domain.Shipment
		for i := range order.Shipments {
			if order.Shipments[i].ID == shipmentID {
				shipment = &order.Shipments[i]
				break
			}
		}
		if shipment == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "shipment not part of order"})
			return
		}

		quotes, err := rates.CalculateRates(c.Request.Context(), order, *shipment, req.Currency)
		if err != nil {
			logger.Error("Failed to calculate rates", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		response := make([]RateResponse, len(quotes))
		for i, quote := range quotes {
			response[i] = RateResponse{
				ServiceID:   quote.ServiceID,
				ServiceName: quote.ServiceName,
				Amount:      quote.Amount.Amount.StringFixed(2),
				Currency:    quote.Amount.Currency,
			}
		}

		c.JSON(http.StatusOK, gin.H{"rates": response})
	}
}

func (r OrderPaidRequest) toDomain() (*domain.Order, error) {
	order := &domain.Order{
		ID:          uuid.MustParse(r.ID),
		OrderNumber: r.OrderNumber,
		Currency:    r.Currency,
	}

	for _, item := range r.Items {
		price, err := domain.NewPrice(item.TotalPrice, r.Currency)
		if err != nil {
			return nil, err
		}
		order.Items = append(order.Items, domain.OrderItem{
			ID:                   uuid.MustParse(item.ID),
			PurchasedVariationID: uuid.MustParse(item.PurchasedVariationID),
			Quantity:             item.Quantity,
			TotalPrice:           price,
		})
	}

	for _, shipment := range r.Shipments {
		s := domain.Shipment{
			ID:              uuid.MustParse(shipment.ID),
			OrderID:         order.ID,
			ShippingMethod:  shipment.ShippingMethod,
			ShippingService: shipment.ShippingService,
			Status:          domain.ShipmentStatusPending,
		}
		if shipment.Address != nil {
			s.Address = &domain.Address{
				Line1:              shipment.Address.Line1,
				City:               shipment.Address.City,
				CountryCode:        shipment.Address.CountryCode,
				PostalCode:         shipment.Address.PostalCode,
				AdministrativeArea: shipment.Address.AdministrativeArea,
				GivenName:          shipment.Address.GivenName,
				FamilyName:         shipment.Address.FamilyName,
				Organization:       shipment.Address.Organization,
			}
		}
		for _, item := range shipment.Items {
			s.Items = append(s.Items, domain.ShipmentItem{
				OrderItemID: uuid.MustParse(item.OrderItemID),
				Quantity:    item.Quantity,
			})
		}
		order.Shipments = append(order.Shipments, s)
	}

	return order, nil
}
