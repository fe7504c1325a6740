package repository

import (
	"context"
	"fmt"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// CreateOrder inserts a new order within the provided transaction.
func (r *orderRepository) CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		INSERT INTO orders (order_id, order_date, total_amount, status, payment_status, customer_id, shipping_address_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := tx.Exec(ctx, query,
		order.ID,
		order.OrderDate,
		order.TotalAmount,
		order.Status,
		order.PaymentStatus,
		order.CustomerID,
		order.ShippingAddressID,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	r.logger.Debug().
		Str("order_id", order.ID.String()).
		Msg("order created successfully")

	return nil
}

// CreateOrderItems inserts multiple order items within the provided transaction.
func (r *orderRepository) CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	query := `
		INSERT INTO order_items (id, order_id, product_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5)
	`

	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(query, item.ID, item.OrderID, item.ProductID, item.Quantity, item.UnitPrice)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(items); i++ {
		_, err := results.Exec()
		if err != nil {
			r.logger.Error().
				Err(err).
				Str("order_id", items[i].OrderID.String()).
				Int64("product_id", items[i].ProductID).
				Msg("failed to create order item")
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}

	r.logger.Debug().
		Int("count", len(items)).
		Msg("order items created successfully")

	return nil
}

// ListOrders retrieves all orders, most recent first, each with its customer
// display name and nested line items. Items are grouped strictly by order id
// from the join, so an item can never appear under another order.
func (r *orderRepository) ListOrders(ctx context.Context) ([]model.OrderSummary, error) {
	query := `
		SELECT o.order_id, o.order_date, o.total_amount, o.status, o.payment_status,
		       COALESCE(c.name, 'guest') AS customer,
		       oi.product_id, p.name, oi.quantity, oi.unit_price
		FROM orders o
		LEFT JOIN customers c ON c.customer_id = o.customer_id
		LEFT JOIN order_items oi ON oi.order_id = o.order_id
		LEFT JOIN products p ON p.product_id = oi.product_id
		ORDER BY o.order_date DESC, o.order_id, oi.id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	summaries := make(map[uuid.UUID]*model.OrderSummary)
	var ordered []uuid.UUID

	for rows.Next() {
		var (
			summary   model.OrderSummary
			productID *int64
			name      *string
			quantity  *int
			unitPrice decimal.NullDecimal
		)

		err := rows.Scan(
			&summary.ID,
			&summary.OrderDate,
			&summary.TotalAmount,
			&summary.Status,
			&summary.PaymentStatus,
			&summary.Customer,
			&productID,
			&name,
			&quantity,
			&unitPrice,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}

		existing, ok := summaries[summary.ID]
		if !ok {
			summary.Items = []model.OrderSummaryItem{}
			summaries[summary.ID] = &summary
			ordered = append(ordered, summary.ID)
			existing = summaries[summary.ID]
		}

		// Orders without items produce a single row with NULL item columns.
		if productID == nil {
			continue
		}

		item := model.OrderSummaryItem{
			ProductID: *productID,
			Quantity:  *quantity,
			UnitPrice: unitPrice.Decimal,
		}
		if name != nil {
			item.Name = *name
		}
		existing.Items = append(existing.Items, item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order rows")
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	result := make([]model.OrderSummary, 0, len(ordered))
	for _, id := range ordered {
		result = append(result, *summaries[id])
	}

	return result, nil
}
