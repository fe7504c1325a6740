package service

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		logger:      logger.With().Str("service", "order").Logger(),
	}
}

// PlaceOrder validates an order request against current catalog state and
// atomically commits the order, its line items and the stock decrements.
//
// The referenced product rows are read with row-level locks inside the same
// transaction that writes the decrements, so two concurrent orders for the
// same product serialize on the lock and cannot both sell the last unit.
//
// Duplicate product ids across request lines are kept as independent line
// items rather than merged; each line is validated against the stock
// remaining after the lines before it. Prices come exclusively from the
// locked read; the request carries none.
//
// There is no idempotency key: a client that retries after a timeout can
// place the same order twice. Known gap.
func (s *orderService) PlaceOrder(ctx context.Context, req *model.OrderRequest) (_ *model.Order, err error) {
	if req == nil || len(req.Items) == 0 {
		return nil, model.ErrEmptyOrder
	}

	productIDs := lo.Map(req.Items, func(item model.OrderItemRequest, _ int) int64 {
		return item.ProductID
	})

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	products, err := s.productRepo.GetForUpdate(ctx, tx, productIDs)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to read products for order")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	order := &model.Order{
		ID:                uuid.New(),
		OrderDate:         time.Now(),
		TotalAmount:       decimal.Zero,
		Status:            model.OrderStatusPending,
		PaymentStatus:     model.PaymentStatusPending,
		CustomerID:        req.CustomerID,
		ShippingAddressID: req.ShippingAddressID,
	}

	// Validate sequentially in request order; the first offending item
	// determines the reported error.
	remaining := make(map[int64]int, len(products))
	for id, p := range products {
		remaining[id] = p.StockQuantity
	}

	orderItems := make([]model.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		product, ok := products[item.ProductID]
		if !ok {
			s.logger.Warn().
				Int64("product_id", item.ProductID).
				Msg("order references unknown product")
			return nil, model.NewProductNotFoundError(item.ProductID)
		}

		if item.Quantity <= 0 {
			s.logger.Warn().
				Int64("product_id", item.ProductID).
				Int("quantity", item.Quantity).
				Msg("invalid quantity")
			return nil, model.NewInvalidQuantityError(item.ProductID, item.Quantity)
		}

		if item.Quantity > remaining[item.ProductID] {
			s.logger.Warn().
				Int64("product_id", item.ProductID).
				Int("available", remaining[item.ProductID]).
				Int("requested", item.Quantity).
				Msg("insufficient stock")
			return nil, model.NewInsufficientStockError(item.ProductID, remaining[item.ProductID], item.Quantity)
		}
		remaining[item.ProductID] -= item.Quantity

		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		order.TotalAmount = order.TotalAmount.Add(lineTotal)

		orderItems = append(orderItems, model.OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: product.Price,
		})
	}

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create order")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	if err = s.orderRepo.CreateOrderItems(ctx, tx, orderItems); err != nil {
		s.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Int("item_count", len(orderItems)).
			Msg("failed to create order items")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	for _, item := range orderItems {
		if err = s.productRepo.DecrementStock(ctx, tx, item.ProductID, item.Quantity); err != nil {
			s.logger.Error().
				Err(err).
				Str("order_id", order.ID.String()).
				Int64("product_id", item.ProductID).
				Msg("failed to decrement stock")
			return nil, fmt.Errorf("failed to place order: %w", err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("total_amount", order.TotalAmount.StringFixed(2)).
		Int("item_count", len(orderItems)).
		Msg("order placed successfully")

	return order, nil
}

// ListOrders retrieves all orders, most recent first, with nested items.
func (s *orderService) ListOrders(ctx context.Context) ([]model.OrderSummary, error) {
	summaries, err := s.orderRepo.ListOrders(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	s.logger.Debug().
		Int("count", len(summaries)).
		Msg("retrieved order history")

	return summaries, nil
}
