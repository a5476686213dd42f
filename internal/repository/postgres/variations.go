package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/scottsawyer/commerce-printful/internal/domain"
	"github.com/scottsawyer/commerce-printful/pkg/errors"
)

type variationRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewVariationRepository creates a new variation repository
func NewVariationRepository(db *sql.DB, logger *zap.Logger) *variationRepository {
	return &variationRepository{
		db:     db,
		logger: logger,
	}
}

const variationColumns = `
	id, product_id, bundle, sku, title, price_amount, price_currency,
	printful_reference, attributes, image_path, created_at, updated_at
`

func (r *variationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Variation, error) {
	query := `SELECT ` + variationColumns + ` FROM variations WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id), id.String())
}

func (r *variationRepository) GetByPrintfulReference(ctx context.Context, ref string) (*domain.Variation, error) {
	query := `SELECT ` + variationColumns + ` FROM variations WHERE printful_reference = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, ref), ref)
}

func (r *variationRepository) GetBySKU(ctx context.Context, sku string) (*domain.Variation, error) {
	query := `SELECT ` + variationColumns + ` FROM variations WHERE sku = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, sku), sku)
}

func (r *variationRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*domain.Variation, error) {
	query := `SELECT ` + variationColumns + ` FROM variations WHERE product_id = $1 ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, productID)
	if err != nil {
		r.logger.Error("Failed to list variations", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var variations []*domain.Variation
	for rows.Next() {
		variation, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		variations = append(variations, variation)
	}

	return variations, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func (r *variationRepository) scanOne(row *sql.Row, id string) (*domain.Variation, error) {
	variation, err := r.scanRow(row)
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "variation", ID: id}
	}
	return variation, err
}

func (r *variationRepository) scanRow(row scanner) (*domain.Variation, error) {
	var variation domain.Variation
	var amount string
	var attributes []byte
	var imagePath sql.NullString

	err := row.Scan(
		&variation.ID,
		&variation.ProductID,
		&variation.Bundle,
		&variation.SKU,
		&variation.Title,
		&amount,
		&variation.Price.Currency,
		&variation.PrintfulReference,
		&attributes,
		&imagePath,
		&variation.CreatedAt,
		&variation.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	price, err := domain.NewPrice(amount, variation.Price.Currency)
	if err != nil {
		return nil, err
	}
	variation.Price = price

	if len(attributes) > 0 {
		if err := json.Unmarshal(attributes, &variation.Attributes); err != nil {
			return nil, err
		}
	}
	if imagePath.Valid {
		variation.ImagePath = &imagePath.String
	}

	return &variation, nil
}

func (r *variationRepository) Create(ctx context.Context, variation *domain.Variation) error {
	query := `
		INSERT INTO variations (` + variationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	now := time.Now()
	if variation.ID == uuid.Nil {
		variation.ID = uuid.New()
	}
	if variation.CreatedAt.IsZero() {
		variation.CreatedAt = now
	}
	if variation.UpdatedAt.IsZero() {
		variation.UpdatedAt = now
	}

	attributes, err := json.Marshal(variation.Attributes)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, query,
		variation.ID,
		variation.ProductID,
		variation.Bundle,
		variation.SKU,
		variation.Title,
		variation.Price.Amount.String(),
		variation.Price.Currency,
		variation.PrintfulReference,
		attributes,
		variation.ImagePath,
		variation.CreatedAt,
		variation.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to create variation", zap.Error(err))
		return err
	}

	return nil
}

func (r *variationRepository) Save(ctx context.Context, variation *domain.Variation) error {
	query := `
		UPDATE variations
		SET product_id = $2, bundle = $3, sku = $4, title = $5,
			price_amount = $6, price_currency = $7, printful_reference = $8,
			attributes = $9, image_path = $10, updated_at = $11
		WHERE id = $1
	`

	variation.UpdatedAt = time.Now()

	attributes, err := json.Marshal(variation.Attributes)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, query,
		variation.ID,
		variation.ProductID,
		variation.Bundle,
		variation.SKU,
		variation.Title,
		variation.Price.Amount.String(),
		variation.Price.Currency,
		variation.PrintfulReference,
		attributes,
		variation.ImagePath,
		variation.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to save variation", zap.Error(err))
		return err
	}

	return nil
}

func (r *variationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM variations WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete variation", zap.Error(err))
		return err
	}
	return nil
}
