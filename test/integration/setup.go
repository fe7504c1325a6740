package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"storefront/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container and connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	createSchema(t, pool)

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// createSchema creates the database schema for testing.
func createSchema(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

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
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
}

// SeedProducts inserts test product data into the database.
func SeedProducts(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	products := []model.Product{
		{ID: 1, Name: "Laptop", Price: decimal.NewFromInt(900), StockQuantity: 700},
		{ID: 2, Name: "Mouse", Price: decimal.RequireFromString("25.50"), StockQuantity: 600},
		{ID: 3, Name: "Keyboard", Price: decimal.RequireFromString("45.00"), StockQuantity: 500},
		{ID: 4, Name: "Monitor", Price: decimal.RequireFromString("250.00"), StockQuantity: 1},
		{ID: 5, Name: "Headphones", Price: decimal.RequireFromString("80.00"), StockQuantity: 0},
	}

	for _, p := range products {
		_, err := pool.Exec(ctx,
			"INSERT INTO products (product_id, name, price, stock_quantity) VALUES ($1, $2, $3, $4)",
			p.ID, p.Name, p.Price, p.StockQuantity,
		)
		if err != nil {
			t.Fatalf("failed to seed product %d: %v", p.ID, err)
		}
	}
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"order_items", "orders", "contacts", "customers", "products"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}

// StockOf reads the current stock level of a product.
func StockOf(t *testing.T, pool *pgxpool.Pool, productID int64) int {
	t.Helper()

	var stock int
	err := pool.QueryRow(context.Background(),
		"SELECT stock_quantity FROM products WHERE product_id = $1", productID).Scan(&stock)
	if err != nil {
		t.Fatalf("failed to read stock for product %d: %v", productID, err)
	}
	return stock
}

// CountOrders returns the number of committed orders.
func CountOrders(t *testing.T, pool *pgxpool.Pool) int {
	t.Helper()

	var count int
	err := pool.QueryRow(context.Background(), "SELECT COUNT(*) FROM orders").Scan(&count)
	if err != nil {
		t.Fatalf("failed to count orders: %v", err)
	}
	return count
}
