package messaging

import (
	"time"

	"restaurant-orders/internal/models"
)

// OrderCreatedEvent is emitted after an order has been validated and
// stored.
type OrderCreatedEvent struct {
	OrderID         int                `json:"order_id"`
	CustomerName    string             `json:"customer_name"`
	Status          models.OrderStatus `json:"status"`
	TotalAmount     models.Money       `json:"total_amount"`
	TotalItemsCount int                `json:"total_items_count"`
	Timestamp       time.Time          `json:"timestamp"`
}

// OrderStatusChangedEvent is emitted after an order's status has been
// overwritten.
type OrderStatusChangedEvent struct {
	OrderID   int                `json:"order_id"`
	OldStatus models.OrderStatus `json:"old_status"`
	NewStatus models.OrderStatus `json:"new_status"`
	Timestamp time.Time          `json:"timestamp"`
}
