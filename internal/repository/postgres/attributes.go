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

type attributeValueRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewAttributeValueRepository creates a new attribute value repository
func NewAttributeValueRepository(db *sql.DB, logger *zap.Logger) *attributeValueRepository {
	return &attributeValueRepository{
		db:     db,
		logger: logger,
	}
}

func (r *attributeValueRepository) GetByAttributeAndName(ctx context.Context, attribute, name string) (*domain.AttributeValue, error) {
	query := `
		SELECT id, attribute, name, created_at
		FROM attribute_values
		WHERE attribute = $1 AND name = $2
	`

	var value domain.AttributeValue
	err := r.db.QueryRowContext(ctx, query, attribute, name).Scan(
		&value.ID,
		&value.Attribute,
		&value.Name,
		&value.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "attribute value", ID: attribute + "/" + name}
	}
	if err != nil {
		r.logger.Error("Failed to get attribute value", zap.Error(err))
		return nil, err
	}

	return &value, nil
}

func (r *attributeValueRepository) Create(ctx context.Context, value *domain.AttributeValue) error {
	query := `
		INSERT INTO attribute_values (id, attribute, name, created_at)
		VALUES ($1, $2, $3, $4)
	`

	if value.ID == uuid.Nil {
		value.ID = uuid.New()
	}
	if value.CreatedAt.IsZero() {
		value.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, query,
		value.ID,
		value.Attribute,
		value.Name,
		value.CreatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to create attribute value", zap.Error(err))
		return err
	}

	return nil
}
