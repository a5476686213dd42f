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

type shipmentRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewShipmentRepository creates a new shipment repository
func NewShipmentRepository(db *sql.DB, logger *zap.Logger) *shipmentRepository {
	return &shipmentRepository{
		db:     db,
		logger: logger,
	}
}

func (r *shipmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Shipment, error) {
	query := `
		SELECT id, order_id, shipping_method, shipping_service, status,
			tracking_code, shipped_at
		FROM shipments
		WHERE id = $1
	`

	var shipment domain.Shipment
	var trackingCode sql.NullString
	var shippedAt sql.NullTime

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&shipment.ID,
		&shipment.OrderID,
		&shipment.ShippingMethod,
		&shipment.ShippingService,
		&shipment.Status,
		&trackingCode,
		&shippedAt,
	)

	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "shipment", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get shipment", zap.Error(err))
		return nil, err
	}

	if trackingCode.Valid {
		shipment.TrackingCode = &trackingCode.String
	}
	if shippedAt.Valid {
		shipment.ShippedAt = &shippedAt.Time
	}

	return &shipment, nil
}

func (r *shipmentRepository) UpdateTracking(ctx context.Context, id uuid.UUID, trackingNumber, service string, shippedAt time.Time) error {
	query := `
		UPDATE shipments
		SET tracking_code = $2, shipping_service = $3, shipped_at = $4, status = $5
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query,
		id,
		trackingNumber,
		service,
		shippedAt,
		domain.ShipmentStatusShipped,
	)

	if err != nil {
		r.logger.Error("Failed to update shipment tracking", zap.Error(err))
		return err
	}

	return nil
}
