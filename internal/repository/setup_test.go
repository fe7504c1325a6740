package repository

import (
	"context"
	"testing"
	"time"

	"storefront/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB creates a PostgreSQL testcontainer and returns a connection pool.
func setupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	createSchema(t, pool)

	cleanup := func() {
		pool.Close()
		_ = pgContainer.Terminate(ctx)
	}

	return pool, cleanup
}

// createSchema creates the necessary database schema for testing.
func createSchema(t *testing.T, pool *pgxpool.Pool) {
	ctx := context.Background()

	schema := `
		CREATE TABLE IF NOT EXISTS products (
			product_id BIGINT PRIMARY KEY,
			name TEXT NOT NULL,
			price NUMERIC(10,2) NOT NULL CHECK (price >= 0),
			stock_quantity INTEGER NOT NULL CHECK (stock_quantity >= 0)
		);

		CREATE TABLE IF NOT EXISTS customers (
			customer_id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS orders (
			order_id UUID PRIMARY KEY,
			order_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			total_amount NUMERIC(12,2) NOT NULL CHECK (total_amount >= 0),
			status TEXT NOT NULL,
			payment_status TEXT NOT NULL,
			customer_id BIGINT REFERENCES customers(customer_id),
			shipping_address_id BIGINT
		);

		CREATE TABLE IF NOT EXISTS order_items (
			id UUID PRIMARY KEY,
			order_id UUID NOT NULL REFERENCES orders(order_id) ON DELETE CASCADE,
			product_id BIGINT NOT NULL REFERENCES products(product_id),
			quantity INTEGER NOT NULL CHECK (quantity > 0),
			unit_price NUMERIC(10,2) NOT NULL CHECK (unit_price >= 0)
		);

		CREATE TABLE IF NOT EXISTS contacts (
			contact_id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			subject TEXT,
			message TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id);
		CREATE INDEX IF NOT EXISTS idx_orders_order_date ON orders(order_date DESC);
	`

	_, err := pool.Exec(ctx, schema)
	require.NoError(t, err)
}

// seedProducts inserts test products into the database.
func seedProducts(t *testing.T, pool *pgxpool.Pool, products []model.Product) {
	ctx := context.Background()

	query := `
		INSERT INTO products (product_id, name, price, stock_quantity)
		VALUES ($1, $2, $3, $4)
	`

	for _, p := range products {
		_, err := pool.Exec(ctx, query, p.ID, p.Name, p.Price, p.StockQuantity)
		require.NoError(t, err)
	}
}

// seedCustomer inserts a customer and returns its id.
func seedCustomer(t *testing.T, pool *pgxpool.Pool, name string) int64 {
	ctx := context.Background()

	var id int64
	err := pool.QueryRow(ctx,
		"INSERT INTO customers (name) VALUES ($1) RETURNING customer_id", name).Scan(&id)
	require.NoError(t, err)

	return id
}
