package domain

import (
	"time"

	"github.com/google/uuid"
)

// Store represents a commerce store that synchronized products get assigned to.
type Store struct {
	ID              uuid.UUID
	Name            string
	DefaultCurrency string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Product represents a commerce product mirrored from the Printful catalog.
type Product struct {
	ID                uuid.UUID
	Bundle            string
	Title             string
	PrintfulReference string // Printful sync product external ID
	StoreID           uuid.UUID
	VariationIDs      []uuid.UUID
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Variation represents a purchasable product variation mirrored from a
// Printful sync variant.
type Variation struct {
	ID                uuid.UUID
	ProductID         uuid.UUID
	Bundle            string
	SKU               string
	Title             string
	Price             Price
	PrintfulReference string // Printful sync variant external ID
	// Attributes maps a variation field name to the assigned attribute
	// value (cardinality 1 per field).
	Attributes map[string]uuid.UUID
	ImagePath  *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// AttributeValue represents a single value of a product attribute
// vocabulary, e.g. attribute "color", name "Heather Grey".
type AttributeValue struct {
	ID        uuid.UUID
	Attribute string
	Name      string
	CreatedAt time.Time
}

// Address is a shipping profile address.
type Address struct {
	Line1              string
	City               string
	CountryCode        string
	PostalCode         string
	AdministrativeArea string
	GivenName          string
	FamilyName         string
	Organization       string
}

// Order represents a paid commerce order handed to the order integrator.
type Order struct {
	ID          uuid.UUID
	OrderNumber string
	Currency    string
	Items       []OrderItem
	Shipments   []Shipment
	PlacedAt    time.Time
}

// OrderItem is a single purchased line on an order.
type OrderItem struct {
	ID                   uuid.UUID
	PurchasedVariationID uuid.UUID
	Quantity             int
	TotalPrice           Price
}

// Shipment groups order items shipped together with one shipping method.
type Shipment struct {
	ID              uuid.UUID
	OrderID         uuid.UUID
	ShippingMethod  string
	ShippingService string
	Status          ShipmentStatus
	TrackingCode    *string
	ShippedAt       *time.Time
	// Address is nil when the shipment has no shipping profile yet.
	Address *Address
	Items   []ShipmentItem
}

// ShipmentItem references an order item included in a shipment.
type ShipmentItem struct {
	OrderItemID uuid.UUID
	Quantity    int
}

// RateQuote is a single shipping option returned by the rate adapter.
type RateQuote struct {
	ServiceID   string
	ServiceName string
	Amount      Price
}
