package service

import (
	"context"
	stderrors "errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/scottsawyer/commerce-printful/internal/domain"
	"github.com/scottsawyer/commerce-printful/internal/repository"
	pkgerrors "github.com/scottsawyer/commerce-printful/pkg/errors"
)

// mem is a shared in-memory backing store for the repository fakes.
type mem struct {
	mu                sync.Mutex
	products          map[uuid.UUID]domain.Product
	variations        map[uuid.UUID]domain.Variation
	attributeValues   map[string]domain.AttributeValue
	stores            map[uuid.UUID]domain.Store
	shipments         map[uuid.UUID]domain.Shipment
	deletedVariations []uuid.UUID
	trackingUpdates   []trackingUpdate
}

type trackingUpdate struct {
	ShipmentID     uuid.UUID
	TrackingNumber string
	Service        string
	ShippedAt      time.Time
}

func newMem() *mem {
	return &mem{
		products:        make(map[uuid.UUID]domain.Product),
		variations:      make(map[uuid.UUID]domain.Variation),
		attributeValues: make(map[string]domain.AttributeValue),
		stores:          make(map[uuid.UUID]domain.Store),
		shipments:       make(map[uuid.UUID]domain.Shipment),
	}
}

func (m *mem) repositories() *repository.Repositories {
	return &repository.Repositories{
		Product:        &memProducts{m},
		Variation:      &memVariations{m},
		AttributeValue: &memAttributeValues{m},
		Store:          &memStores{m},
		Shipment:       &memShipments{m},
	}
}

type memProducts struct{ m *mem }

func (r *memProducts) GetByID(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if product, ok := r.m.products[id]; ok {
		return &product, nil
	}
	return nil, &pkgerrors.ErrNotFound{Resource: "product", ID: id.String()}
}

func (r *memProducts) GetByPrintfulReference(_ context.Context, ref string) (*domain.Product, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, product := range r.m.products {
		if product.PrintfulReference == ref {
			product := product
			return &product, nil
		}
	}
	return nil, &pkgerrors.ErrNotFound{Resource: "product", ID: ref}
}

func (r *memProducts) Create(_ context.Context, product *domain.Product) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	r.m.products[product.ID] = *product
	return nil
}

func (r *memProducts) Save(_ context.Context, product *domain.Product) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.products[product.ID] = *product
	return nil
}

type memVariations struct{ m *mem }

func (r *memVariations) GetByID(_ context.Context, id uuid.UUID) (*domain.Variation, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if variation, ok := r.m.variations[id]; ok {
		return &variation, nil
	}
	return nil, &pkgerrors.ErrNotFound{Resource: "variation", ID: id.String()}
}

func (r *memVariations) GetByPrintfulReference(_ context.Context, ref string) (*domain.Variation, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, variation := range r.m.variations {
		if variation.PrintfulReference == ref {
			variation := variation
			return &variation, nil
		}
	}
	return nil, &pkgerrors.ErrNotFound{Resource: "variation", ID: ref}
}

func (r *memVariations) GetBySKU(_ context.Context, sku string) (*domain.Variation, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, variation := range r.m.variations {
		if variation.SKU == sku {
			variation := variation
			return &variation, nil
		}
	}
	return nil, &pkgerrors.ErrNotFound{Resource: "variation", ID: sku}
}

func (r *memVariations) ListByProduct(_ context.Context, productID uuid.UUID) ([]*domain.Variation, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*domain.Variation
	for _, variation := range r.m.variations {
		if variation.ProductID == productID {
			variation := variation
			out = append(out, &variation)
		}
	}
	return out, nil
}

func (r *memVariations) Create(_ context.Context, variation *domain.Variation) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if variation.ID == uuid.Nil {
		variation.ID = uuid.New()
	}
	r.m.variations[variation.ID] = *variation
	return nil
}

func (r *memVariations) Save(_ context.Context, variation *domain.Variation) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.variations[variation.ID] = *variation
	return nil
}

func (r *memVariations) Delete(_ context.Context, id uuid.UUID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	delete(r.m.variations, id)
	r.m.deletedVariations = append(r.m.deletedVariations, id)
	return nil
}

type memAttributeValues struct{ m *mem }

func (r *memAttributeValues) GetByAttributeAndName(_ context.Context, attribute, name string) (*domain.AttributeValue, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if value, ok := r.m.attributeValues[attribute+"/"+name]; ok {
		return &value, nil
	}
	return nil, &pkgerrors.ErrNotFound{Resource: "attribute value", ID: attribute + "/" + name}
}

func (r *memAttributeValues) Create(_ context.Context, value *domain.AttributeValue) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if value.ID == uuid.Nil {
		value.ID = uuid.New()
	}
	r.m.attributeValues[value.Attribute+"/"+value.Name] = *value
	return nil
}

type memStores struct{ m *mem }

func (r *memStores) GetByID(_ context.Context, id uuid.UUID) (*domain.Store, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if store, ok := r.m.stores[id]; ok {
		return &store, nil
	}
	return nil, &pkgerrors.ErrNotFound{Resource: "store", ID: id.String()}
}

type memShipments struct{ m *mem }

func (r *memShipments) GetByID(_ context.Context, id uuid.UUID) (*domain.Shipment, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if shipment, ok := r.m.shipments[id]; ok {
		return &shipment, nil
	}
	return nil, &pkgerrors.ErrNotFound{Resource: "shipment", ID: id.String()}
}

func (r *memShipments) UpdateTracking(_ context.Context, id uuid.UUID, trackingNumber, service string, shippedAt time.Time) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	shipment, ok := r.m.shipments[id]
	if !ok {
		return &pkgerrors.ErrNotFound{Resource: "shipment", ID: id.String()}
	}
	shipment.TrackingCode = &trackingNumber
	shipment.ShippingService = service
	shipment.ShippedAt = &shippedAt
	shipment.Status = domain.ShipmentStatusShipped
	r.m.shipments[id] = shipment
	r.m.trackingUpdates = append(r.m.trackingUpdates, trackingUpdate{
		ShipmentID:     id,
		TrackingNumber: trackingNumber,
		Service:        service,
		ShippedAt:      shippedAt,
	})
	return nil
}

// fakeAssets records fetches instead of downloading.
type fakeAssets struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (f *fakeAssets) FetchAndStore(_ context.Context, url, directory, filename string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, url)
	if f.err != nil {
		return "", f.err
	}
	return "public://" + directory + "/" + filename, nil
}

// fakeExchanger converts by a fixed multiplier.
type fakeExchanger struct {
	rate string
}

func (f fakeExchanger) Convert(_ context.Context, price domain.Price, currency string) (domain.Price, error) {
	factor, err := domain.NewPrice(f.rate, currency)
	if err != nil {
		return domain.Price{}, err
	}
	return domain.Price{Amount: price.Amount.Mul(factor.Amount), Currency: currency}, nil
}

// failingExchanger always errors.
type failingExchanger struct{}

func (failingExchanger) Convert(context.Context, domain.Price, string) (domain.Price, error) {
	return domain.Price{}, stderrors.New("no exchange rate")
}
