// Package cart models the client-side shopping cart: an advisory list of
// candidate line items assembled before submission. The server never trusts
// it; in particular the unit prices held here are display hints only.
package cart

import (
	"encoding/json"
	"fmt"

	"storefront/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Item is one cart line. UnitPrice is the price seen at the time the item
// was added and is used for local display totals only.
type Item struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Cart holds the unsubmitted line items in insertion order.
type Cart struct {
	items []Item
}

// New creates an empty cart.
func New() *Cart {
	return &Cart{}
}

// Add puts quantity units of the product into the cart. Adding a product
// already in the cart merges into the existing line.
func (c *Cart) Add(p model.Product, quantity int) {
	if quantity <= 0 {
		return
	}

	for i := range c.items {
		if c.items[i].ProductID == p.ID {
			c.items[i].Quantity += quantity
			return
		}
	}

	c.items = append(c.items, Item{
		ProductID: p.ID,
		Name:      p.Name,
		Quantity:  quantity,
		UnitPrice: p.Price,
	})
}

// UpdateQuantity adjusts a line's quantity by delta. The line is removed
// when the quantity drops to zero or below. Unknown products are ignored.
func (c *Cart) UpdateQuantity(productID int64, delta int) {
	for i := range c.items {
		if c.items[i].ProductID != productID {
			continue
		}
		c.items[i].Quantity += delta
		if c.items[i].Quantity <= 0 {
			c.items = append(c.items[:i], c.items[i+1:]...)
		}
		return
	}
}

// Remove deletes the line for the given product, if present.
func (c *Cart) Remove(productID int64) {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// Items returns a copy of the cart lines in insertion order.
func (c *Cart) Items() []Item {
	items := make([]Item, len(c.items))
	copy(items, c.items)
	return items
}

// ItemCount returns the total number of units across all lines.
func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}

// Total returns the display total computed from the locally held prices.
// The authoritative total always comes from the server response.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// Clear empties the cart, typically after a successful submission.
func (c *Cart) Clear() {
	c.items = nil
}

// OrderRequest converts the cart into a server submission. Only product ids
// and quantities cross the boundary; prices stay behind.
func (c *Cart) OrderRequest() *model.OrderRequest {
	req := &model.OrderRequest{
		Items: make([]model.OrderItemRequest, 0, len(c.items)),
	}
	for _, item := range c.items {
		req.Items = append(req.Items, model.OrderItemRequest{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	return req
}

// Load reads the cart stored under key. A missing or corrupt value degrades
// to an empty cart rather than propagating a parse failure.
func Load(store Store, key string, logger zerolog.Logger) *Cart {
	data, ok, err := store.Get(key)
	if err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("failed to read cart, starting empty")
		return New()
	}
	if !ok {
		return New()
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("corrupt cart data, starting empty")
		return New()
	}

	return &Cart{items: items}
}

// Save writes the cart under key.
func (c *Cart) Save(store Store, key string) error {
	data, err := json.Marshal(c.items)
	if err != nil {
		return fmt.Errorf("failed to serialize cart: %w", err)
	}

	if err := store.Set(key, data); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}

	return nil
}
