package repository

import (
	"context"
	"fmt"
	"slices"

	"storefront/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

// GetAll retrieves all products ordered by product id.
func (r *productRepository) GetAll(ctx context.Context) ([]model.Product, error) {
	query := `
		SELECT product_id, name, price, stock_quantity
		FROM products
		ORDER BY product_id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.StockQuantity)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// GetForUpdate retrieves the products for the given ids within the provided
// transaction, taking row-level locks. Ids are deduplicated and locked in
// ascending order so that two concurrent orders touching the same products
// acquire their locks in the same sequence.
func (r *productRepository) GetForUpdate(ctx context.Context, tx pgx.Tx, ids []int64) (map[int64]model.Product, error) {
	if len(ids) == 0 {
		return map[int64]model.Product{}, nil
	}

	lockIDs := lo.Uniq(ids)
	slices.Sort(lockIDs)

	query := `
		SELECT product_id, name, price, stock_quantity
		FROM products
		WHERE product_id = ANY($1)
		ORDER BY product_id
		FOR UPDATE
	`

	rows, err := tx.Query(ctx, query, lockIDs)
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(lockIDs)).Msg("failed to lock products")
		return nil, fmt.Errorf("failed to lock products: %w", err)
	}
	defer rows.Close()

	products := make(map[int64]model.Product, len(lockIDs))
	for rows.Next() {
		var p model.Product
		err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.StockQuantity)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products[p.ID] = p
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// DecrementStock reduces a product's stock by quantity within the provided
// transaction. The guard on stock_quantity keeps stock from ever going
// negative even if validation missed a case.
func (r *productRepository) DecrementStock(ctx context.Context, tx pgx.Tx, productID int64, quantity int) error {
	query := `
		UPDATE products
		SET stock_quantity = stock_quantity - $2
		WHERE product_id = $1 AND stock_quantity >= $2
	`

	tag, err := tx.Exec(ctx, query, productID, quantity)
	if err != nil {
		r.logger.Error().
			Err(err).
			Int64("product_id", productID).
			Int("quantity", quantity).
			Msg("failed to decrement stock")
		return fmt.Errorf("failed to decrement stock for product %d: %w", productID, err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Error().
			Int64("product_id", productID).
			Int("quantity", quantity).
			Msg("stock decrement rejected")
		return fmt.Errorf("stock decrement rejected for product %d", productID)
	}

	return nil
}

// Upsert inserts or updates the given products.
func (r *productRepository) Upsert(ctx context.Context, products []model.Product) error {
	if len(products) == 0 {
		return nil
	}

	query := `
		INSERT INTO products (product_id, name, price, stock_quantity)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (product_id) DO UPDATE
		SET name = EXCLUDED.name,
		    price = EXCLUDED.price,
		    stock_quantity = EXCLUDED.stock_quantity
	`

	batch := &pgx.Batch{}
	for _, p := range products {
		batch.Queue(query, p.ID, p.Name, p.Price, p.StockQuantity)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(products); i++ {
		_, err := results.Exec()
		if err != nil {
			r.logger.Error().
				Err(err).
				Int64("product_id", products[i].ID).
				Msg("failed to upsert product")
			return fmt.Errorf("failed to upsert product %d: %w", products[i].ID, err)
		}
	}

	r.logger.Debug().
		Int("count", len(products)).
		Msg("products upserted successfully")

	return nil
}
