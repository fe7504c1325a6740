package service

import (
	"context"

	"storefront/internal/model"
)

// ProductService defines operations for the product catalog.
type ProductService interface {
	// GetAll retrieves all products.
	GetAll(ctx context.Context) ([]model.Product, error)
}

// OrderService defines operations for order placement and history.
type OrderService interface {
	// PlaceOrder validates an order request against current catalog state
	// and atomically commits the order, its line items and the stock
	// decrements. On failure nothing is written.
	PlaceOrder(ctx context.Context, req *model.OrderRequest) (*model.Order, error)

	// ListOrders retrieves all orders, most recent first, with nested items.
	ListOrders(ctx context.Context) ([]model.OrderSummary, error)
}

// ContactService defines operations for the contact form.
type ContactService interface {
	// Submit validates and stores a contact message.
	Submit(ctx context.Context, contact *model.Contact) error
}
