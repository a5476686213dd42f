package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/scottsawyer/commerce-printful/internal/domain"
)

// ProductRepository is the commerce product storage collaborator.
type ProductRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	// GetByPrintfulReference looks a product up by its external reference,
	// the idempotency key for create-vs-reuse decisions.
	GetByPrintfulReference(ctx context.Context, ref string) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) error
	Save(ctx context.Context, product *domain.Product) error
}

// VariationRepository is the product variation storage collaborator.
type VariationRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Variation, error)
	GetByPrintfulReference(ctx context.Context, ref string) (*domain.Variation, error)
	// GetBySKU is the secondary lookup for pre-existing data imported by
	// SKU before external references were recorded.
	GetBySKU(ctx context.Context, sku string) (*domain.Variation, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]*domain.Variation, error)
	Create(ctx context.Context, variation *domain.Variation) error
	Save(ctx context.Context, variation *domain.Variation) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// AttributeValueRepository stores product attribute values.
type AttributeValueRepository interface {
	GetByAttributeAndName(ctx context.Context, attribute, name string) (*domain.AttributeValue, error)
	Create(ctx context.Context, value *domain.AttributeValue) error
}

// StoreRepository looks up commerce stores.
type StoreRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Store, error)
}

// ShipmentRepository stores shipments; used by the webhook processor to
// record tracking data reported by Printful.
type ShipmentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Shipment, error)
	UpdateTracking(ctx context.Context, id uuid.UUID, trackingNumber, service string, shippedAt time.Time) error
}

// Repositories bundles all storage collaborators.
type Repositories struct {
	Product        ProductRepository
	Variation      VariationRepository
	AttributeValue AttributeValueRepository
	Store          StoreRepository
	Shipment       ShipmentRepository
}
