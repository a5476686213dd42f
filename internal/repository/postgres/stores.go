package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/scottsawyer/commerce-printful/internal/domain"
	"github.com/scottsawyer/commerce-printful/pkg/errors"
)

type storeRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewStoreRepository creates a new commerce store repository
func NewStoreRepository(db *sql.DB, logger *zap.Logger) *storeRepository {
	return &storeRepository{
		db:     db,
		logger: logger,
	}
}

func (r *storeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Store, error) {
	query := `
		SELECT id, name, default_currency, created_at, updated_at
		FROM stores
		WHERE id = $1
	`

	var store domain.Store
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&store.ID,
		&store.Name,
		&store.DefaultCurrency,
		&store.CreatedAt,
		&store.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "store", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get store", zap.Error(err))
		return nil, err
	}

	return &store, nil
}
