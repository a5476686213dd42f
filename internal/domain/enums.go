package domain

// ShipmentStatus represents the fulfillment state of a shipment.
type ShipmentStatus string

const (
	ShipmentStatusPending  ShipmentStatus = "PENDING"
	ShipmentStatusReady    ShipmentStatus = "READY"
	ShipmentStatusShipped  ShipmentStatus = "SHIPPED"
	ShipmentStatusCanceled ShipmentStatus = "CANCELED"
)

// IsValid checks if the shipment status is valid
func (s ShipmentStatus) IsValid() bool {
	switch s {
	case ShipmentStatusPending,
		ShipmentStatusReady,
		ShipmentStatusShipped,
		ShipmentStatusCanceled:
		return true
	default:
		return false
	}
}

// CanTransitionTo checks if a status transition is valid
func (s ShipmentStatus) CanTransitionTo(newStatus ShipmentStatus) bool {
	switch s {
	case ShipmentStatusPending:
		return newStatus == ShipmentStatusReady ||
			newStatus == ShipmentStatusShipped ||
			newStatus == ShipmentStatusCanceled
	case ShipmentStatusReady:
		return newStatus == ShipmentStatusShipped ||
			newStatus == ShipmentStatusCanceled
	case ShipmentStatusShipped, ShipmentStatusCanceled:
		return false // Terminal states
	default:
		return false
	}
}
