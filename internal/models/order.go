package models

import (
	"github.com/shopspring/decimal"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusReady     OrderStatus = "ready"
	StatusDelivered OrderStatus = "delivered"
)

// IsValid reports whether the status is a member of the status set
func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusReady, StatusDelivered:
		return true
	}
	return false
}

// DefaultDeliveryFee applies when an order does not specify one.
var DefaultDeliveryFee = Money{Decimal: decimal.New(299, -2)}

// Customer is the customer placing an order. It has no identity of its
// own and is embedded in the order.
type Customer struct {
	Name    string  `json:"name"`
	Phone   string  `json:"phone"`
	Address *string `json:"address,omitempty"`
}

// OrderItem is a single line in an order, referencing a menu item by id
// and denormalized name
type OrderItem struct {
	MenuItemID   int    `json:"menu_item_id"`
	MenuItemName string `json:"menu_item_name"`
	Quantity     int    `json:"quantity"`
	UnitPrice    Money  `json:"unit_price"`
}

// ItemTotal computes the line total as quantity times unit price.
func (i OrderItem) ItemTotal() Money {
	return i.UnitPrice.MulInt(i.Quantity)
}

// Order represents a customer order
type Order struct {
	ID                  int         `json:"id,omitempty"`
	Customer            Customer    `json:"customer"`
	Items               []OrderItem `json:"items"`
	Status              OrderStatus `json:"status"`
	DeliveryFee         Money       `json:"delivery_fee"`
	SpecialInstructions *string     `json:"special_instructions,omitempty"`
}

// ItemsTotal sums the line totals. Each line is computed independently
// and the exact decimal results are summed, so no rounding drift can
// accumulate across lines.
func (o *Order) ItemsTotal() Money {
	total := Money{Decimal: decimal.Zero}
	for _, item := range o.Items {
		total = total.Add(item.ItemTotal())
	}
	return total
}

// TotalAmount adds the delivery fee to the items total.
func (o *Order) TotalAmount() Money {
	return o.ItemsTotal().Add(o.DeliveryFee)
}

// TotalItemsCount sums the quantities across all lines.
func (o *Order) TotalItemsCount() int {
	count := 0
	for _, item := range o.Items {
		count += item.Quantity
	}
	return count
}

// CreateOrderRequest represents the request body for placing an order
type CreateOrderRequest struct {
	Customer            Customer    `json:"customer"`
	Items               []OrderItem `json:"items"`
	DeliveryFee         *Money      `json:"delivery_fee,omitempty"`
	SpecialInstructions *string     `json:"special_instructions,omitempty"`
}

// Order converts the request into a candidate order. The status always
// starts at pending and the delivery fee defaults when omitted; the id
// is assigned by the store on insert.
func (r *CreateOrderRequest) Order() Order {
	fee := DefaultDeliveryFee
	if r.DeliveryFee != nil {
		fee = *r.DeliveryFee
	}
	return Order{
		Customer:            r.Customer,
		Items:               r.Items,
		Status:              StatusPending,
		DeliveryFee:         fee,
		SpecialInstructions: r.SpecialInstructions,
	}
}

// OrderResponse is an order together with its derived totals
type OrderResponse struct {
	Order
	ItemsTotal      Money `json:"items_total"`
	TotalAmount     Money `json:"total_amount"`
	TotalItemsCount int   `json:"total_items_count"`
}

// NewOrderResponse builds the response view of a stored order.
func NewOrderResponse(order Order) OrderResponse {
	return OrderResponse{
		Order:           order,
		ItemsTotal:      order.ItemsTotal(),
		TotalAmount:     order.TotalAmount(),
		TotalItemsCount: order.TotalItemsCount(),
	}
}

// OrderSummaryResponse is the compact listing view of an order
type OrderSummaryResponse struct {
	ID              int         `json:"id"`
	CustomerName    string      `json:"customer_name"`
	Status          OrderStatus `json:"status"`
	TotalAmount     Money       `json:"total_amount"`
	TotalItemsCount int         `json:"total_items_count"`
}

// NewOrderSummaryResponse builds the summary view of a stored order.
func NewOrderSummaryResponse(order Order) OrderSummaryResponse {
	return OrderSummaryResponse{
		ID:              order.ID,
		CustomerName:    order.Customer.Name,
		Status:          order.Status,
		TotalAmount:     order.TotalAmount(),
		TotalItemsCount: order.TotalItemsCount(),
	}
}

// StatusUpdateRequest represents the request body for a status update
type StatusUpdateRequest struct {
	Status OrderStatus `json:"status"`
}
