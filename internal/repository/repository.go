package repository

import (
	"context"

	"storefront/internal/model"

	"github.com/jackc/pgx/v5"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// GetAll retrieves all products ordered by product id.
	GetAll(ctx context.Context) ([]model.Product, error)

	// GetForUpdate retrieves the products for the given ids within the
	// provided transaction, locking each row until the transaction ends.
	// Ids absent from the catalog are simply missing from the result map.
	GetForUpdate(ctx context.Context, tx pgx.Tx, ids []int64) (map[int64]model.Product, error)

	// DecrementStock reduces a product's stock by quantity within the
	// provided transaction. It fails if the remaining stock is insufficient.
	DecrementStock(ctx context.Context, tx pgx.Tx, productID int64, quantity int) error

	// Upsert inserts or updates the given products.
	Upsert(ctx context.Context, products []model.Product) error
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts multiple order items within the provided transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// ListOrders retrieves all orders, most recent first, each with its
	// customer display name and nested line items.
	ListOrders(ctx context.Context) ([]model.OrderSummary, error)
}

// ContactRepository defines the interface for contact form persistence.
type ContactRepository interface {
	// Insert stores a submitted contact message.
	Insert(ctx context.Context, contact *model.Contact) error
}
