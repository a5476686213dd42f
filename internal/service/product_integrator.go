package service

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/scottsawyer/commerce-printful/internal/config"
	"github.com/scottsawyer/commerce-printful/internal/domain"
	"github.com/scottsawyer/commerce-printful/internal/printful"
	"github.com/scottsawyer/commerce-printful/internal/repository"
	pkgerrors "github.com/scottsawyer/commerce-printful/pkg/errors"
)

// syncPageSize is fixed at one product per step: each product fans out
// into many variant-level sub-requests, so a single product already bounds
// the work done per batch step.
const syncPageSize = 1

// ProductIntegrator reconciles the Printful catalog into local products
// and variations, one product per step, driven by an external batch
// runner holding the cursor.
type ProductIntegrator struct {
	client *printful.Client
	cfg    config.PrintfulConfig
	repos  *repository.Repositories
	mapper *AttributeMapper
	logger *zap.Logger
}

// NewProductIntegrator creates a new product integrator
func NewProductIntegrator(
	client *printful.Client,
	cfg config.PrintfulConfig,
	repos *repository.Repositories,
	mapper *AttributeMapper,
	logger *zap.Logger,
) *ProductIntegrator {
	return &ProductIntegrator{
		client: client,
		cfg:    cfg,
		repos:  repos,
		mapper: mapper,
		logger: logger,
	}
}

// SyncStep fetches and reconciles the remote product at the cursor's
// offset and returns the advanced cursor.
//
// A missing store configuration or a transport failure anywhere in the
// step aborts the run with the cursor unadvanced, so a retry resumes at
// the same product. API and mapping errors reconciling the fetched
// product are logged and that product is skipped; the cursor still
// advances so the run continues at the next offset. With update false,
// variations that already exist locally are left untouched.
func (s *ProductIntegrator) SyncStep(ctx context.Context, printfulStoreID string, update bool, cursor SyncCursor) (SyncCursor, error) {
	store, ok := s.cfg.StoreByID(printfulStoreID)
	if !ok {
		return cursor, &pkgerrors.ErrConfiguration{Message: fmt.Sprintf("unknown printful store %q", printfulStoreID)}
	}

	commerceStoreID, err := uuid.Parse(store.CommerceStoreID)
	if err != nil {
		return cursor, &pkgerrors.ErrConfiguration{Message: fmt.Sprintf("printful store %s has invalid commerce_store_id", store.ID)}
	}
	if _, err := s.repos.Store.GetByID(ctx, commerceStoreID); err != nil {
		return cursor, &pkgerrors.ErrConfiguration{Message: fmt.Sprintf("commerce store %s not found", store.CommerceStoreID)}
	}

	client := s.client.WithKey(store.APIKey)

	page, paging, err := client.SyncProducts(ctx, cursor.Offset, syncPageSize)
	if err != nil {
		return cursor, fmt.Errorf("printful API connection error: %w", err)
	}

	if !cursor.TotalKnown && paging != nil {
		cursor.Total = paging.Total
		cursor.TotalKnown = true
	}

	if len(page) == 0 {
		cursor.Offset = cursor.Total
		return cursor, nil
	}

	if err := s.syncOne(ctx, client, store, commerceStoreID, page[0], update); err != nil {
		// Connectivity loss aborts the run; retrying the step later picks
		// the same product up again.
		var transportErr *pkgerrors.ErrTransport
		if stderrors.As(err, &transportErr) {
			return cursor, fmt.Errorf("printful API connection error: %w", err)
		}
		s.logger.Error("Printful error",
			zap.String("printful_store", store.ID),
			zap.String("product", page[0].ExternalID),
			zap.Error(err),
		)
		cursor.Offset++
		return cursor, nil
	}

	cursor.Offset++
	cursor.Synced++
	s.logger.Info(cursor.Message(), zap.Float64("progress", cursor.Progress()))
	return cursor, nil
}

// syncOne reconciles a single remote product and its variants.
func (s *ProductIntegrator) syncOne(ctx context.Context, client *printful.Client, store config.PrintfulStore, commerceStoreID uuid.UUID, data printful.SyncProduct, update bool) error {
	product, err := s.SyncProduct(ctx, store, commerceStoreID, data)
	if err != nil {
		return err
	}
	return s.SyncProductVariants(ctx, client, store, product, update)
}

// SyncProduct looks up a local product by the remote external reference
// and creates one if absent.
func (s *ProductIntegrator) SyncProduct(ctx context.Context, store config.PrintfulStore, commerceStoreID uuid.UUID, data printful.SyncProduct) (*domain.Product, error) {
	product, err := s.repos.Product.GetByPrintfulReference(ctx, data.ExternalID)
	if err == nil {
		return product, nil
	}

	var notFound *pkgerrors.ErrNotFound
	if !stderrors.As(err, &notFound) {
		return nil, err
	}

	product = &domain.Product{
		Bundle:            store.ProductBundle,
		Title:             data.Name,
		PrintfulReference: data.ExternalID,
		StoreID:           commerceStoreID,
	}
	if err := s.repos.Product.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// SyncProductVariants fetches the product's full remote detail and
// reconciles every sync variant into a local variation, then deletes
// variations that disappeared remotely and persists the product's new
// variation list. Field-mapping failures do not stop the remaining
// variants; they are joined and surfaced after the product is persisted.
func (s *ProductIntegrator) SyncProductVariants(ctx context.Context, client *printful.Client, store config.PrintfulStore, product *domain.Product, update bool) error {
	if product.PrintfulReference == "" {
		return fmt.Errorf("product %s is not synchronized with Printful", product.ID)
	}

	oldVariations, err := s.repos.Variation.ListByProduct(ctx, product.ID)
	if err != nil {
		return err
	}

	detail, err := client.SyncProductDetail(ctx, product.PrintfulReference)
	if err != nil {
		return err
	}

	var mappingErrs []error
	kept := make(map[uuid.UUID]bool, len(detail.SyncVariants))
	variationIDs := make([]uuid.UUID, 0, len(detail.SyncVariants))
	for _, variant := range detail.SyncVariants {
		variation, err := s.SyncProductVariant(ctx, client, store, product, variant, update)
		if err != nil {
			if variation == nil {
				return err
			}
			// Variation was persisted with some fields unmapped.
			mappingErrs = append(mappingErrs, err)
		}
		kept[variation.ID] = true
		variationIDs = append(variationIDs, variation.ID)
	}

	// Delete obsolete, orphaned variations, if any.
	for _, old := range oldVariations {
		if !kept[old.ID] {
			if err := s.repos.Variation.Delete(ctx, old.ID); err != nil {
				return err
			}
		}
	}

	product.VariationIDs = variationIDs
	if err := s.repos.Product.Save(ctx, product); err != nil {
		return err
	}

	return stderrors.Join(mappingErrs...)
}

// SyncProductVariant reconciles one sync variant. Lookup is by external
// reference first, then by the derived SKU for data imported before
// references were recorded. An existing variation is returned as-is when
// update is false.
func (s *ProductIntegrator) SyncProductVariant(ctx context.Context, client *printful.Client, store config.PrintfulStore, product *domain.Product, variant printful.SyncVariant, update bool) (*domain.Variation, error) {
	sku := variant.SKU()

	variation, err := s.repos.Variation.GetByPrintfulReference(ctx, variant.ExternalID)
	if err != nil {
		var notFound *pkgerrors.ErrNotFound
		if !stderrors.As(err, &notFound) {
			return nil, err
		}
		// Migration path: try the deterministic SKU.
		variation, err = s.repos.Variation.GetBySKU(ctx, sku)
		if err != nil && !stderrors.As(err, &notFound) {
			return nil, err
		}
	}

	created := false
	if variation == nil {
		variation = &domain.Variation{
			Bundle: store.VariationBundle,
		}
		created = true
	} else if !update {
		return variation, nil
	}

	detail, err := client.ProductsVariant(ctx, variant.VariantID)
	if err != nil {
		return nil, err
	}

	price, err := domain.NewPrice(variant.RetailPrice, variant.Currency)
	if err != nil {
		return nil, err
	}

	variation.ProductID = product.ID
	variation.SKU = sku
	variation.Title = variant.Name
	variation.Price = price
	variation.PrintfulReference = variant.ExternalID

	mappingErr := s.mapper.Apply(ctx, variation, variant, detail.Variant, store.AttributeMap)

	if created {
		err = s.repos.Variation.Create(ctx, variation)
	} else {
		err = s.repos.Variation.Save(ctx, variation)
	}
	if err != nil {
		return nil, err
	}

	return variation, mappingErr
}
