package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/scottsawyer/commerce-printful/internal/domain"
	"github.com/scottsawyer/commerce-printful/pkg/errors"
)

type productRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *sql.DB, logger *zap.Logger) *productRepository {
	return &productRepository{
		db:     db,
		logger: logger,
	}
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := `
		SELECT id, bundle, title, printful_reference, store_id, created_at, updated_at
		FROM products
		WHERE id = $1
	`
	return r.scanOne(ctx, r.db.QueryRowContext(ctx, query, id), id.String())
}

func (r *productRepository) GetByPrintfulReference(ctx context.Context, ref string) (*domain.Product, error) {
	query := `
		SELECT id, bundle, title, printful_reference, store_id, created_at, updated_at
		FROM products
		WHERE printful_reference = $1
	`
	return r.scanOne(ctx, r.db.QueryRowContext(ctx, query, ref), ref)
}

func (r *productRepository) scanOne(ctx context.Context, row *sql.Row, id string) (*domain.Product, error) {
	var product domain.Product

	err := row.Scan(
		&product.ID,
		&product.Bundle,
		&product.Title,
		&product.PrintfulReference,
		&product.StoreID,
		&product.CreatedAt,
		&product.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "product", ID: id}
	}
	if err != nil {
		r.logger.Error("Failed to get product", zap.Error(err))
		return nil, err
	}

	if err := r.loadVariationIDs(ctx, &product); err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productRepository) loadVariationIDs(ctx context.Context, product *domain.Product) error {
	query := `
		SELECT id
		FROM variations
		WHERE product_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query, product.ID)
	if err != nil {
		r.logger.Error("Failed to load variation IDs", zap.Error(err))
		return err
	}
	defer rows.Close()

	product.VariationIDs = nil
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return err
		}
		product.VariationIDs = append(product.VariationIDs, id)
	}

	return rows.Err()
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (id, bundle, title, printful_reference, store_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	now := time.Now()
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	if product.UpdatedAt.IsZero() {
		product.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx, query,
		product.ID,
		product.Bundle,
		product.Title,
		product.PrintfulReference,
		product.StoreID,
		product.CreatedAt,
		product.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to create product", zap.Error(err))
		return err
	}

	return nil
}

func (r *productRepository) Save(ctx context.Context, product *domain.Product) error {
	query := `
		UPDATE products
		SET bundle = $2, title = $3, printful_reference = $4, store_id = $5, updated_at = $6
		WHERE id = $1
	`

	product.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		product.ID,
		product.Bundle,
		product.Title,
		product.PrintfulReference,
		product.StoreID,
		product.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to save product", zap.Error(err))
		return err
	}

	return nil
}
