package repository

import (
	"context"
	"testing"
	"time"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// insertOrder commits an order with the given items in one transaction.
func insertOrder(t *testing.T, repo OrderRepository, order *model.Order, items []model.OrderItem) {
	t.Helper()

	ctx := context.Background()

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)

	require.NoError(t, repo.CreateOrder(ctx, tx, order))
	require.NoError(t, repo.CreateOrderItems(ctx, tx, items))
	require.NoError(t, tx.Commit(ctx))
}

func TestOrderRepository_CreateOrder(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	logger := zerolog.Nop()
	repo := NewOrderRepository(pool, logger)
	ctx := context.Background()

	seedProducts(t, pool, testProducts())

	order := &model.Order{
		ID:            uuid.New(),
		OrderDate:     time.Now(),
		TotalAmount:   decimal.RequireFromString("1825.50"),
		Status:        model.OrderStatusPending,
		PaymentStatus: model.PaymentStatusPending,
	}
	items := []model.OrderItem{
		{ID: uuid.New(), OrderID: order.ID, ProductID: 1, Quantity: 2, UnitPrice: decimal.NewFromInt(900)},
		{ID: uuid.New(), OrderID: order.ID, ProductID: 2, Quantity: 1, UnitPrice: decimal.RequireFromString("25.50")},
	}

	insertOrder(t, repo, order, items)

	var count int
	require.NoError(t, pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM order_items WHERE order_id = $1", order.ID).Scan(&count))
	assert.Equal(t, 2, count)

	var total decimal.Decimal
	require.NoError(t, pool.QueryRow(ctx,
		"SELECT total_amount FROM orders WHERE order_id = $1", order.ID).Scan(&total))
	assert.Equal(t, "1825.50", total.StringFixed(2))
}

func TestOrderRepository_CreateOrderItems_FKViolation(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	logger := zerolog.Nop()
	repo := NewOrderRepository(pool, logger)
	ctx := context.Background()

	seedProducts(t, pool, testProducts())

	order := &model.Order{
		ID:            uuid.New(),
		OrderDate:     time.Now(),
		TotalAmount:   decimal.NewFromInt(900),
		Status:        model.OrderStatusPending,
		PaymentStatus: model.PaymentStatusPending,
	}
	items := []model.OrderItem{
		{ID: uuid.New(), OrderID: order.ID, ProductID: 999, Quantity: 1, UnitPrice: decimal.NewFromInt(900)},
	}

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)

	require.NoError(t, repo.CreateOrder(ctx, tx, order))

	err = repo.CreateOrderItems(ctx, tx, items)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create order item")
}

func TestOrderRepository_ListOrders(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	logger := zerolog.Nop()
	repo := NewOrderRepository(pool, logger)
	ctx := context.Background()

	seedProducts(t, pool, testProducts())

	t.Run("Empty history", func(t *testing.T) {
		orders, err := repo.ListOrders(ctx)

		require.NoError(t, err)
		assert.Empty(t, orders)
	})

	customerID := seedCustomer(t, pool, "Alice")

	older := &model.Order{
		ID:            uuid.New(),
		OrderDate:     time.Now().Add(-time.Hour),
		TotalAmount:   decimal.RequireFromString("1825.50"),
		Status:        model.OrderStatusPending,
		PaymentStatus: model.PaymentStatusPending,
		CustomerID:    &customerID,
	}
	insertOrder(t, repo, older, []model.OrderItem{
		{ID: uuid.New(), OrderID: older.ID, ProductID: 1, Quantity: 2, UnitPrice: decimal.NewFromInt(900)},
		{ID: uuid.New(), OrderID: older.ID, ProductID: 2, Quantity: 1, UnitPrice: decimal.RequireFromString("25.50")},
	})

	newer := &model.Order{
		ID:            uuid.New(),
		OrderDate:     time.Now(),
		TotalAmount:   decimal.RequireFromString("45.00"),
		Status:        model.OrderStatusPending,
		PaymentStatus: model.PaymentStatusPending,
	}
	insertOrder(t, repo, newer, []model.OrderItem{
		{ID: uuid.New(), OrderID: newer.ID, ProductID: 3, Quantity: 1, UnitPrice: decimal.RequireFromString("45.00")},
	})

	t.Run("Most recent first with grouped items", func(t *testing.T) {
		orders, err := repo.ListOrders(ctx)

		require.NoError(t, err)
		require.Len(t, orders, 2)

		assert.Equal(t, newer.ID, orders[0].ID)
		assert.Equal(t, older.ID, orders[1].ID)

		require.Len(t, orders[0].Items, 1)
		assert.Equal(t, int64(3), orders[0].Items[0].ProductID)
		assert.Equal(t, "Keyboard", orders[0].Items[0].Name)

		require.Len(t, orders[1].Items, 2)
		assert.Equal(t, int64(1), orders[1].Items[0].ProductID)
		assert.Equal(t, 2, orders[1].Items[0].Quantity)
		assert.Equal(t, "900.00", orders[1].Items[0].UnitPrice.StringFixed(2))
		assert.Equal(t, "1825.50", orders[1].TotalAmount.StringFixed(2))
	})

	t.Run("Customer name falls back to guest", func(t *testing.T) {
		orders, err := repo.ListOrders(ctx)

		require.NoError(t, err)
		require.Len(t, orders, 2)
		assert.Equal(t, model.GuestCustomer, orders[0].Customer)
		assert.Equal(t, "Alice", orders[1].Customer)
	})

	t.Run("Order without items has empty item list", func(t *testing.T) {
		empty := &model.Order{
			ID:            uuid.New(),
			OrderDate:     time.Now().Add(time.Minute),
			TotalAmount:   decimal.Zero,
			Status:        model.OrderStatusPending,
			PaymentStatus: model.PaymentStatusPending,
		}
		insertOrder(t, repo, empty, nil)

		orders, err := repo.ListOrders(ctx)

		require.NoError(t, err)
		require.Len(t, orders, 3)
		assert.Equal(t, empty.ID, orders[0].ID)
		assert.Empty(t, orders[0].Items)
	})
}
