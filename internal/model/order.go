package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order lifecycle statuses. New orders start as pending; this service never
// transitions them further.
const (
	OrderStatusPending   = "pending"
	PaymentStatusPending = "pending"
)

// GuestCustomer is the display name used when an order carries no customer reference.
const GuestCustomer = "guest"

// Order represents a committed customer order.
type Order struct {
	ID                uuid.UUID       `json:"order_id" db:"order_id"`
	OrderDate         time.Time       `json:"order_date" db:"order_date"`
	TotalAmount       decimal.Decimal `json:"total_amount" db:"total_amount"`
	Status            string          `json:"status" db:"status"`
	PaymentStatus     string          `json:"payment_status" db:"payment_status"`
	CustomerID        *int64          `json:"customer_id,omitempty" db:"customer_id"`
	ShippingAddressID *int64          `json:"shipping_address_id,omitempty" db:"shipping_address_id"`
}

// OrderItem is a single line of an order. UnitPrice is snapshotted at order
// time and does not change when the product price changes later.
type OrderItem struct {
	ID        uuid.UUID       `json:"-" db:"id"`
	OrderID   uuid.UUID       `json:"-" db:"order_id"`
	ProductID int64           `json:"product_id" db:"product_id"`
	Quantity  int             `json:"quantity" db:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price" db:"unit_price"`
}

// OrderRequest represents the request payload for placing an order.
// It deliberately carries no price fields: prices and the total are always
// re-derived server-side from the current catalog state.
type OrderRequest struct {
	Items             []OrderItemRequest `json:"items"`
	CustomerID        *int64             `json:"customer_id,omitempty"`
	ShippingAddressID *int64             `json:"shipping_address_id,omitempty"`
}

// OrderItemRequest is a single (product, quantity) pair in an order request.
type OrderItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// OrderSummary is one entry of the order history: the order annotated with
// its customer display name and nested line items.
type OrderSummary struct {
	ID            uuid.UUID          `json:"order_id"`
	OrderDate     time.Time          `json:"order_date"`
	TotalAmount   decimal.Decimal    `json:"total_amount"`
	Status        string             `json:"status"`
	PaymentStatus string             `json:"payment_status"`
	Customer      string             `json:"customer"`
	Items         []OrderSummaryItem `json:"items"`
}

// OrderSummaryItem is a history line item joined with the product name.
type OrderSummaryItem struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}
