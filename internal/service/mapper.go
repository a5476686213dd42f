package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/scottsawyer/commerce-printful/internal/config"
	"github.com/scottsawyer/commerce-printful/internal/domain"
	"github.com/scottsawyer/commerce-printful/internal/printful"
	"github.com/scottsawyer/commerce-printful/internal/repository"
	pkgerrors "github.com/scottsawyer/commerce-printful/pkg/errors"
)

// AssetFetcher downloads a remote asset and persists it, returning the
// recorded path.
type AssetFetcher interface {
	FetchAndStore(ctx context.Context, url, directory, filename string) (string, error)
}

// AttributeMapper applies a declarative attribute mapping to a variation,
// populating attribute fields and the preview image from Printful variant
// payloads.
type AttributeMapper struct {
	repos  *repository.Repositories
	assets AssetFetcher
	logger *zap.Logger
}

// NewAttributeMapper creates a new attribute mapper
func NewAttributeMapper(repos *repository.Repositories, assets AssetFetcher, logger *zap.Logger) *AttributeMapper {
	return &AttributeMapper{
		repos:  repos,
		assets: assets,
		logger: logger,
	}
}

// Apply maps each configured entry onto the variation. Application is
// all-or-nothing per field but not atomic across fields: a failed entry
// leaves its field at the prior value and the remaining entries are still
// applied. All field errors are joined into the returned error so callers
// can surface the partial failure.
func (m *AttributeMapper) Apply(
	ctx context.Context,
	variation *domain.Variation,
	variant printful.SyncVariant,
	params printful.VariantParameters,
	mapping []config.MappingEntry,
) error {
	var errs []error

	for _, entry := range mapping {
		var err error
		if entry.Source == "image" {
			err = m.applyImage(ctx, variation, variant, entry.Field)
		} else {
			err = m.applyAttribute(ctx, variation, params, entry.Source, entry.Field)
		}
		if err != nil {
			m.logger.Warn("Variation field mapping failed",
				zap.String("sku", variation.SKU),
				zap.String("source", entry.Source),
				zap.String("field", entry.Field),
				zap.Error(err),
			)
			errs = append(errs, fmt.Errorf("field %s: %w", entry.Field, err))
		}
	}

	return stderrors.Join(errs...)
}

// applyImage stores the variant's preview asset and attaches it to the
// image field. A variant with no asset tagged "preview" leaves the field
// untouched.
func (m *AttributeMapper) applyImage(ctx context.Context, variation *domain.Variation, variant printful.SyncVariant, fieldName string) error {
	var preview *printful.File
	for i := range variant.Files {
		if variant.Files[i].Type == "preview" {
			preview = &variant.Files[i]
			break
		}
	}
	if preview == nil {
		return nil
	}

	path, err := m.assets.FetchAndStore(ctx, preview.PreviewURL, fieldName, preview.Filename)
	if err != nil {
		return err
	}

	// Replace any previously attached image.
	variation.ImagePath = &path
	return nil
}

// applyAttribute assigns the mapped variant parameter as the field's sole
// attribute value, creating the value in its vocabulary if absent.
func (m *AttributeMapper) applyAttribute(ctx context.Context, variation *domain.Variation, params printful.VariantParameters, source, fieldName string) error {
	raw, ok := params.Get(source)
	if !ok {
		return fmt.Errorf("variant has no %q parameter", source)
	}

	// The vocabulary is the field name suffix after its first underscore,
	// e.g. attribute_color -> color.
	vocabulary := fieldName
	if idx := strings.Index(fieldName, "_"); idx >= 0 {
		vocabulary = fieldName[idx+1:]
	}

	value, err := m.repos.AttributeValue.GetByAttributeAndName(ctx, vocabulary, raw)
	if err != nil {
		var notFound *pkgerrors.ErrNotFound
		if !stderrors.As(err, &notFound) {
			return err
		}
		value = &domain.AttributeValue{
			Attribute: vocabulary,
			Name:      raw,
		}
		if err := m.repos.AttributeValue.Create(ctx, value); err != nil {
			return err
		}
	}

	if variation.Attributes == nil {
		variation.Attributes = make(map[string]uuid.UUID)
	}
	variation.Attributes[fieldName] = value.ID
	return nil
}
